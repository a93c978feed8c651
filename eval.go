package calc

import (
	"io"
	"strings"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently.
type Context struct {
	stack   []operand
	backend Backend
	prec    uint
	divprec int32
}

// operand is an entry on the evaluation stack. Values stay as text between
// operations so that the stack does not depend on the backend.
type operand struct {
	text string
	pos  int
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	precopt    uint
	divprecopt int32
	backendopt struct {
		b Backend
	}
)

func (precopt) ctxOption()    {}
func (divprecopt) ctxOption() {}
func (backendopt) ctxOption() {}

// Prec sets the precision in bits of the float backend.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// DivPrec sets the number of decimal places kept by quotients in the decimal
// backend.
func DivPrec(places int32) ContextOption {
	return divprecopt(places)
}

// WithBackend sets the backend used to parse and compute numbers. Prec and
// DivPrec do not change a backend set this way.
func WithBackend(b Backend) ContextOption {
	return backendopt{b}
}

// NewContext creates a new evaluation context. The default backend is
// FloatBackend(DefaultPrec).
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{prec: DefaultPrec, divprec: DefaultDivPrec}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. If the
// context uses one of the builtin backends and no WithBackend option is
// given, the clone uses the same kind of backend with the new precisions.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack:   make([]operand, 0, cap(ctx.stack)),
		backend: ctx.backend,
		prec:    ctx.prec,
		divprec: ctx.divprec,
	}
	custom := false
	for _, opt := range opts {
		switch opt := opt.(type) {
		case nil:
			continue
		case precopt:
			n.prec = uint(opt)
		case divprecopt:
			n.divprec = int32(opt)
		case backendopt:
			n.backend = opt.b
			custom = true
		default:
			panic("calc: unknown option type")
		}
	}
	if !custom {
		switch n.backend.(type) {
		case nil, floatBackend:
			n.backend = FloatBackend(n.prec)
		case decimalBackend:
			n.backend = DecimalBackend(n.divprec)
		}
	}
	return &n
}

// Backend returns the backend the context computes with.
func (ctx *Context) Backend() Backend {
	return ctx.backend
}

// Eval evaluates a compiled expression and returns its result.
func (ctx *Context) Eval(e *Expr) (Num, error) {
	ctx.stack = ctx.stack[:0]
	for _, tok := range e.postfix {
		if tok.Kind == TokenNum {
			ctx.push(operand{tok.Text, tok.Pos})
			continue
		}
		if len(ctx.stack) < 2 {
			return nil, &OperandError{Col: tok.Pos, Op: tok.Text, Have: len(ctx.stack)}
		}
		r := ctx.pop()
		l := ctx.pop()
		x, err := ctx.parse(l)
		if err != nil {
			return nil, err
		}
		y, err := ctx.parse(r)
		if err != nil {
			return nil, err
		}
		var z Num
		switch tok.Text {
		case "+":
			z = x.Add(y)
		case "-":
			z = x.Sub(y)
		case "*":
			z = x.Mul(y)
		case "/":
			z, err = x.Quo(y)
			if err != nil {
				return nil, &ZeroDivisionError{Col: tok.Pos, Dividend: l.text}
			}
		default:
			panic("calc: invalid operator " + tok.String() + " in postfix expression")
		}
		ctx.push(operand{z.String(), l.pos})
	}
	switch len(ctx.stack) {
	case 0:
		return nil, &EmptyExpressionError{Col: e.end}
	case 1:
		return ctx.parse(ctx.pop())
	default:
		return nil, &OperandError{Col: ctx.stack[1].pos, Extra: len(ctx.stack) - 1}
	}
}

// push adds an operand to the top of the stack.
func (ctx *Context) push(v operand) {
	ctx.stack = append(ctx.stack, v)
}

// pop removes the top from the stack and returns it.
func (ctx *Context) pop() operand {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// parse converts an operand to a number with the context's backend.
func (ctx *Context) parse(v operand) (Num, error) {
	x, err := ctx.backend.Parse(v.text)
	if err != nil {
		return nil, &NumberError{Col: v.pos, Text: v.text, Err: err}
	}
	return x, nil
}

// Expr is a compiled expression in postfix order.
type Expr struct {
	postfix []Token
	// end is the column after the last token, for errors about the whole
	// expression.
	end int
}

// Compile tokenizes an expression, resolves negations, and reorders it into
// postfix form. Errors in number syntax and operand counts are not detected
// until the expression is evaluated.
func Compile(src io.RuneScanner) (*Expr, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, err
	}
	toks, err = Negate(toks)
	if err != nil {
		return nil, err
	}
	end := 1
	if len(toks) > 0 {
		last := toks[len(toks)-1]
		end = last.Pos + len([]rune(last.Text))
	}
	post, err := Postfix(toks)
	if err != nil {
		return nil, err
	}
	return &Expr{postfix: post, end: end}, nil
}

// CompileString is a shortcut to compile a string expression.
func CompileString(src string) (*Expr, error) {
	return Compile(strings.NewReader(src))
}

// Eval evaluates the expression in ctx. It is the same as ctx.Eval(e).
func (e *Expr) Eval(ctx *Context) (Num, error) {
	return ctx.Eval(e)
}

// Tokens returns a copy of the expression's tokens in postfix order.
func (e *Expr) Tokens() []Token {
	return append([]Token(nil), e.postfix...)
}

// String renders the expression in postfix order with tokens separated by
// spaces.
func (e *Expr) String() string {
	var b strings.Builder
	for i, tok := range e.postfix {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// Eval is a shortcut to compile an expression and evaluate it in a new
// context.
func Eval(src io.RuneScanner, opts ...ContextOption) (Num, error) {
	e, err := Compile(src)
	if err != nil {
		return nil, err
	}
	return NewContext(opts...).Eval(e)
}

// EvalString is a shortcut to compile and evaluate a string expression.
func EvalString(src string, opts ...ContextOption) (Num, error) {
	return Eval(strings.NewReader(src), opts...)
}
