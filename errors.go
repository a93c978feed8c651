package calc

import (
	"errors"
	"strconv"
)

// ErrZeroDivision is the error that ZeroDivisionError unwraps to. Num.Quo
// implementations return it for a zero divisor.
var ErrZeroDivision = errors.New("division by zero")

// NegationError is an error indicating a unary minus that is not followed by
// a number, e.g. "-(1)" or a trailing "-". It implements InputError.
type NegationError struct {
	// Col is the position of the minus sign.
	Col int
	// Next is the text of the token following the minus sign, or the empty
	// string if the minus ends the expression.
	Next string
}

func (err *NegationError) Error() string {
	if err.Next == "" {
		return errpos(err.Col, "negation with no number")
	}
	return errpos(err.Col, "cannot negate "+strconv.Quote(err.Next))
}

func (err *NegationError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the unmatched opening bracket, if any.
	Left string
	// Right is the unmatched closing bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// OperandError is an error indicating that operators and operands do not
// pair up: an operator found fewer than two values to work on, or values
// were left over with no operator to combine them. It implements InputError.
type OperandError struct {
	// Col is the position of the operator, or of the first extra operand.
	Col int
	// Op is the operator that was short of operands. It is empty if the
	// error is for extra operands.
	Op string
	// Have is the number of operands that were available to Op.
	Have int
	// Extra is the number of operands left over at the end.
	Extra int
}

func (err *OperandError) Error() string {
	if err.Op == "" {
		return errpos(err.Col, strconv.Itoa(err.Extra)+" operand(s) with no operator")
	}
	return errpos(err.Col, "operator "+strconv.Quote(err.Op)+" needs 2 operands, have "+strconv.Itoa(err.Have))
}

func (err *OperandError) Pos() int {
	return err.Col
}

// ZeroDivisionError is an error indicating a division by zero. It
// implements InputError and unwraps to ErrZeroDivision.
type ZeroDivisionError struct {
	// Col is the position of the / operator.
	Col int
	// Dividend is the text of the left operand.
	Dividend string
}

func (err *ZeroDivisionError) Error() string {
	return errpos(err.Col, "division by zero: "+err.Dividend+" / 0")
}

func (err *ZeroDivisionError) Pos() int {
	return err.Col
}

func (err *ZeroDivisionError) Unwrap() error {
	return ErrZeroDivision
}

// NumberError is an error indicating a number token that the arithmetic
// backend cannot parse, e.g. "1.2.3". It implements InputError.
type NumberError struct {
	// Col is the position of the number.
	Col int
	// Text is the text of the number.
	Text string
	// Err is the error from the backend.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// EmptyExpressionError is an error indicating that an expression contains
// no numbers at all.
type EmptyExpressionError struct {
	// Col is the position of the end of the expression.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

// IsInvalid returns whether err is or wraps an InputError, meaning the
// expression was bad rather than the machinery around it.
func IsInvalid(err error) bool {
	var e InputError
	return errors.As(err, &e)
}

var (
	_ InputError = (*NegationError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*ZeroDivisionError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
