package calc

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestLex(t *testing.T) {
	cases := []struct {
		src    string
		tokens []Token
	}{
		// spaces and junk
		{"", nil},
		{" \t \r\n ", nil},
		{"??", nil},
		{"abc", nil},
		// numbers
		{"0", []Token{{Text: "0", Kind: TokenNum, Pos: 1}}},
		{"9876543210", []Token{{Text: "9876543210", Kind: TokenNum, Pos: 1}}},
		{"1 0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "0", Kind: TokenNum, Pos: 3}}},
		{"1.0", []Token{{Text: "1.0", Kind: TokenNum, Pos: 1}}},
		{".5", []Token{{Text: ".5", Kind: TokenNum, Pos: 1}}},
		{"1.1.1", []Token{{Text: "1.1.1", Kind: TokenNum, Pos: 1}}},
		{".", []Token{{Text: ".", Kind: TokenNum, Pos: 1}}},
		{"1a2", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "2", Kind: TokenNum, Pos: 3}}},
		// operators
		{"1+0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "+", Kind: TokenOp, Pos: 2}, {Text: "0", Kind: TokenNum, Pos: 3}}},
		{"1*0", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "*", Kind: TokenOp, Pos: 2}, {Text: "0", Kind: TokenNum, Pos: 3}}},
		{"(1)", []Token{{Text: "(", Kind: TokenOp, Pos: 1}, {Text: "1", Kind: TokenNum, Pos: 2}, {Text: ")", Kind: TokenOp, Pos: 3}}},
		{"++", []Token{{Text: "+", Kind: TokenOp, Pos: 1}, {Text: "+", Kind: TokenOp, Pos: 2}}},
		{"π/2", []Token{{Text: "/", Kind: TokenOp, Pos: 2}, {Text: "2", Kind: TokenNum, Pos: 3}}},
		// negation
		{"-1", []Token{{Text: "-", Kind: TokenNeg, Pos: 1}, {Text: "1", Kind: TokenNum, Pos: 2}}},
		{"1-1", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "-", Kind: TokenOp, Pos: 2}, {Text: "1", Kind: TokenNum, Pos: 3}}},
		{"3*-2", []Token{{Text: "3", Kind: TokenNum, Pos: 1}, {Text: "*", Kind: TokenOp, Pos: 2}, {Text: "-", Kind: TokenNeg, Pos: 3}, {Text: "2", Kind: TokenNum, Pos: 4}}},
		{"(-2", []Token{{Text: "(", Kind: TokenOp, Pos: 1}, {Text: "-", Kind: TokenNeg, Pos: 2}, {Text: "2", Kind: TokenNum, Pos: 3}}},
		{")-2", []Token{{Text: ")", Kind: TokenOp, Pos: 1}, {Text: "-", Kind: TokenOp, Pos: 2}, {Text: "2", Kind: TokenNum, Pos: 3}}},
		{"1 - -2", []Token{{Text: "1", Kind: TokenNum, Pos: 1}, {Text: "-", Kind: TokenOp, Pos: 3}, {Text: "-", Kind: TokenNeg, Pos: 5}, {Text: "2", Kind: TokenNum, Pos: 6}}},
		{"--1", []Token{{Text: "-", Kind: TokenNeg, Pos: 1}, {Text: "-", Kind: TokenOp, Pos: 2}, {Text: "1", Kind: TokenNum, Pos: 3}}},
		{" -1", []Token{{Text: "-", Kind: TokenNeg, Pos: 2}, {Text: "1", Kind: TokenNum, Pos: 3}}},
	}

	for _, c := range cases {
		got := TokenizeString(c.src)
		if len(got) != len(c.tokens) {
			t.Errorf("scanning %q: want %v, got %v", c.src, c.tokens, got)
			continue
		}
		for i, want := range c.tokens {
			if got[i] != want {
				t.Errorf("scanning %q: token %d: want %v, got %v", c.src, i, want, got[i])
			}
		}
	}
}

type failingReader struct {
	*strings.Reader
}

var errRead = errors.New("read failed")

func (r failingReader) ReadRune() (rune, int, error) {
	c, sz, err := r.Reader.ReadRune()
	if err == io.EOF {
		return 0, 0, errRead
	}
	return c, sz, err
}

func TestLexReadError(t *testing.T) {
	toks, err := Tokenize(failingReader{strings.NewReader("1+2")})
	if !errors.Is(err, errRead) {
		t.Errorf("wrong error: want %v, got %v", errRead, err)
	}
	if len(toks) != 2 {
		t.Errorf("wrong tokens before error: %v", toks)
	}
}
