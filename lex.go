package calc

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Token is a single number or operator in an expression.
type Token struct {
	// Text is the literal text of the token. After Negate, a number's text
	// may begin with "-".
	Text string
	// Kind is the type of the token.
	Kind TokenKind
	// Pos is the column of the first rune of the token, counting from 1.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// TokenKind is the type of a token.
type TokenKind int8

const (
	TokenNone TokenKind = iota
	// TokenNum is a run of digits and decimal points.
	TokenNum
	// TokenOp is one of the runes in Operators.
	TokenOp
	// TokenNeg marks a unary minus. It only appears in the output of Tokenize;
	// Negate folds it into the following number.
	TokenNeg
)

func (k TokenKind) String() string {
	switch k {
	case TokenNone:
		return "None"
	case TokenNum:
		return "Num"
	case TokenOp:
		return "Op"
	case TokenNeg:
		return "Neg"
	default:
		return "TokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators,
// including grouping parentheses.
const Operators = "+-*/()"

func byteidcs(s string) []string {
	v := make([]string, len(s))
	for i, r := range s {
		v[i] = string(r)
	}
	return v
}

var operstrs = byteidcs(Operators)

type lexer struct {
	src io.RuneScanner
	buf strings.Builder
	col int
	// last is the most recently scanned token. It decides whether a - is
	// unary or binary.
	last Token
	eof  bool
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.col++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.col--
}

// next scans the next token from the input. Runes that cannot begin a token
// are skipped. At the end of the input, the result is an empty token with
// io.EOF.
func (l *lexer) next() (Token, error) {
	if l.eof {
		return Token{}, io.EOF
	}
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				l.eof = true
			}
			return Token{}, err
		}
		tok := Token{Pos: l.col}
		switch {
		case r == '-' && l.unary():
			tok.Text = "-"
			tok.Kind = TokenNeg
		case '0' <= r && r <= '9', r == '.':
			l.buf.WriteRune(r)
			if err := l.scanNum(); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			tok.Kind = TokenNum
		default:
			k := strings.IndexRune(Operators, r)
			if k < 0 {
				continue
			}
			tok.Text = operstrs[k]
			tok.Kind = TokenOp
		}
		l.last = tok
		return tok, nil
	}
}

// unary returns whether a - at the current position is a negation.
func (l *lexer) unary() bool {
	switch l.last.Kind {
	case TokenNone:
		return true
	case TokenOp:
		return l.last.Text != ")"
	default:
		return false
	}
}

// scanNum scans the rest of a number. Decimal points are not checked here;
// "1.2.3" is a single token that fails when it is parsed.
func (l *lexer) scanNum() error {
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if r != '.' && (r < '0' || '9' < r) {
			l.unreadRune()
			return nil
		}
		l.buf.WriteRune(r)
	}
}

// Tokenize scans src into numbers, operators, and negation markers. The only
// errors are those returned by src other than io.EOF.
func Tokenize(src io.RuneScanner) ([]Token, error) {
	l := lex(src)
	var toks []Token
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return toks, nil
			}
			return toks, err
		}
		toks = append(toks, tok)
	}
}

// TokenizeString is a shortcut to tokenize a string.
func TokenizeString(src string) []Token {
	// strings.Reader never fails.
	toks, _ := Tokenize(strings.NewReader(src))
	return toks
}
