package calc

import "strings"

// role is the side of a precedence comparison an operator is on.
type role int8

const (
	// incoming is the operator currently being read.
	incoming role = iota
	// resting is the operator on top of the working stack.
	resting
)

// ranks holds the incoming and resting precedence of each operator. Giving
// the two sides different ranks makes + - * / left-associative, lets ( sit
// under anything, and lets ) flush everything down to its (.
var ranks = map[string][2]int{
	"(": {5, 0},
	")": {0, -1},
	"+": {1, 2},
	"-": {1, 2},
	"*": {3, 4},
	"/": {3, 4},
}

// rank returns the precedence of op on the given side of a comparison.
func rank(op string, side role) int {
	if r, ok := ranks[op]; ok {
		return r[side]
	}
	return -2
}

// Postfix reorders a negated token sequence from infix to postfix order. The
// result contains only numbers and the operators + - * /. Unbalanced
// parentheses produce a *BracketError. Panics if toks contains a negation
// marker or an unknown operator.
func Postfix(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	// The working stack starts with a ( that is closed by a ) after the last
	// token, so the loop flushes everything without special handling.
	stack := make([]Token, 1, len(toks)/2+1)
	stack[0] = Token{Text: "(", Kind: TokenOp}
	end := Token{Text: ")", Kind: TokenOp}
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		end.Pos = last.Pos + len([]rune(last.Text))
	}
	for i := 0; i <= len(toks); i++ {
		tok := end
		if i < len(toks) {
			tok = toks[i]
		}
		switch tok.Kind {
		case TokenNum:
			out = append(out, tok)
			continue
		case TokenOp:
			if !strings.Contains(Operators, tok.Text) || len(tok.Text) != 1 {
				panic("calc: unknown operator " + tok.String())
			}
		default:
			panic("calc: unexpected token " + tok.String() + " in Postfix (missing Negate?)")
		}
		matched := false
		for len(stack) > 0 && rank(stack[len(stack)-1].Text, resting) >= rank(tok.Text, incoming) {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if top.Text != "(" {
				out = append(out, top)
				continue
			}
			// Only ) ranks low enough to pop a (.
			final := i == len(toks)
			switch {
			case final && len(stack) > 0:
				// The closing sentinel met an open bracket from the input.
				return nil, &BracketError{Col: top.Pos, Left: "("}
			case !final && len(stack) == 0:
				// A close bracket from the input met the opening sentinel.
				return nil, &BracketError{Col: tok.Pos, Right: ")"}
			}
			matched = true
			break
		}
		if !matched {
			stack = append(stack, tok)
		}
	}
	return out, nil
}
