package calc

import (
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Num is an arbitrary-precision number. Arithmetic methods return new values
// and never modify their operands. The operand of an arithmetic method must
// come from the same Backend as the receiver.
type Num interface {
	Add(y Num) Num
	Sub(y Num) Num
	Mul(y Num) Num
	// Quo returns the quotient, or an error wrapping ErrZeroDivision if y is
	// zero.
	Quo(y Num) (Num, error)
	// Sign returns -1, 0, or +1.
	Sign() int
	// String renders the number in plain decimal notation, without an
	// exponent, such that parsing the result with the same Backend gives the
	// same value.
	String() string
	// Fixed renders the number with exactly places digits after the decimal
	// point.
	Fixed(places int) string
}

// Backend parses text into numbers of one representation.
type Backend interface {
	// Name identifies the backend, e.g. "float".
	Name() string
	// Parse parses a decimal number with an optional leading minus sign.
	Parse(s string) (Num, error)
}

// DefaultPrec is the precision in bits of the float backend when none is
// given.
const DefaultPrec = 64

// DefaultDivPrec is the number of decimal places kept by quotients in the
// decimal backend when none is given.
const DefaultDivPrec = 16

// BackendByName returns the backend with the given name, "float" or
// "decimal". prec applies to the former and divprec to the latter.
func BackendByName(name string, prec uint, divprec int32) (Backend, error) {
	switch name {
	case "", "float":
		return FloatBackend(prec), nil
	case "decimal":
		return DecimalBackend(divprec), nil
	default:
		return nil, errors.New("calc: unknown backend " + name)
	}
}

// FloatBackend returns a backend of big.Float values with prec bits of
// mantissa. A zero prec means DefaultPrec.
func FloatBackend(prec uint) Backend {
	if prec == 0 {
		prec = DefaultPrec
	}
	return floatBackend{prec}
}

type floatBackend struct {
	prec uint
}

func (floatBackend) Name() string {
	return "float"
}

func (b floatBackend) Parse(s string) (Num, error) {
	x, _, err := new(big.Float).SetPrec(b.prec).Parse(s, 10)
	if err != nil {
		return nil, err
	}
	return floatNum{x}, nil
}

type floatNum struct {
	x *big.Float
}

// op returns a fresh result value and the operand as a big.Float.
func (f floatNum) op(y Num) (*big.Float, *big.Float) {
	g, ok := y.(floatNum)
	if !ok {
		panic("calc: mixed backends: float with " + y.String())
	}
	return new(big.Float).SetPrec(f.x.Prec()), g.x
}

func (f floatNum) Add(y Num) Num {
	r, g := f.op(y)
	return floatNum{r.Add(f.x, g)}
}

func (f floatNum) Sub(y Num) Num {
	r, g := f.op(y)
	return floatNum{r.Sub(f.x, g)}
}

func (f floatNum) Mul(y Num) Num {
	r, g := f.op(y)
	return floatNum{r.Mul(f.x, g)}
}

func (f floatNum) Quo(y Num) (Num, error) {
	r, g := f.op(y)
	if g.Sign() == 0 {
		return nil, ErrZeroDivision
	}
	return floatNum{r.Quo(f.x, g)}, nil
}

func (f floatNum) Sign() int {
	return f.x.Sign()
}

func (f floatNum) String() string {
	// 'f' with negative precision is the fewest digits that parse back to x.
	return f.x.Text('f', -1)
}

func (f floatNum) Fixed(places int) string {
	return f.x.Text('f', places)
}

// DecimalBackend returns a backend of exact decimal values. Quotients are
// rounded to divprec decimal places; a non-positive divprec means
// DefaultDivPrec.
func DecimalBackend(divprec int32) Backend {
	if divprec <= 0 {
		divprec = DefaultDivPrec
	}
	return decimalBackend{divprec}
}

type decimalBackend struct {
	divprec int32
}

func (decimalBackend) Name() string {
	return "decimal"
}

func (b decimalBackend) Parse(s string) (Num, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, err
	}
	return decimalNum{d, b.divprec}, nil
}

type decimalNum struct {
	d       decimal.Decimal
	divprec int32
}

func (n decimalNum) operand(y Num) decimal.Decimal {
	m, ok := y.(decimalNum)
	if !ok {
		panic("calc: mixed backends: decimal with " + y.String())
	}
	return m.d
}

func (n decimalNum) Add(y Num) Num {
	return decimalNum{n.d.Add(n.operand(y)), n.divprec}
}

func (n decimalNum) Sub(y Num) Num {
	return decimalNum{n.d.Sub(n.operand(y)), n.divprec}
}

func (n decimalNum) Mul(y Num) Num {
	return decimalNum{n.d.Mul(n.operand(y)), n.divprec}
}

func (n decimalNum) Quo(y Num) (Num, error) {
	m := n.operand(y)
	if m.IsZero() {
		return nil, ErrZeroDivision
	}
	return decimalNum{n.d.DivRound(m, n.divprec), n.divprec}, nil
}

func (n decimalNum) Sign() int {
	return n.d.Sign()
}

func (n decimalNum) String() string {
	return n.d.String()
}

func (n decimalNum) Fixed(places int) string {
	return n.d.StringFixed(int32(places))
}
