package calc

// Negate folds each negation marker into the number that follows it. The
// result contains no TokenNeg tokens and does not share memory with toks.
func Negate(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Kind != TokenNeg {
			out = append(out, tok)
			continue
		}
		if i+1 == len(toks) {
			return nil, &NegationError{Col: tok.Pos}
		}
		n := toks[i+1]
		if n.Kind != TokenNum {
			return nil, &NegationError{Col: tok.Pos, Next: n.Text}
		}
		out = append(out, Token{Text: "-" + n.Text, Kind: TokenNum, Pos: tok.Pos})
		i++
	}
	return out, nil
}
