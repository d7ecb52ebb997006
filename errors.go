package intexpr

import "strconv"

// ResidualError is an error indicating that evaluation stopped before the end
// of the input. It implements InputError.
type ResidualError struct {
	// Col is the position at which evaluation stopped.
	Col int
	// Rest is the input that was not consumed.
	Rest string
}

func (err *ResidualError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Rest))
}

func (err *ResidualError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating that the input ended where an
// operand was expected. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the end of input.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no expression at end")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// BracketError is an error indicating an open bracket with no close bracket
// before the end of the input. It implements InputError.
type BracketError struct {
	// Col is the position of the open bracket.
	Col int
}

func (err *BracketError) Error() string {
	return errpos(err.Col, "open bracket ( with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// DivideError is an error indicating a division or modulo by zero. It
// implements InputError.
type DivideError struct {
	// Col is the position of the operator.
	Col int
	// Op is the operator, either / or \.
	Op string
}

func (err *DivideError) Error() string {
	if err.Op == `\` {
		return errpos(err.Col, "modulo by zero")
	}
	return errpos(err.Col, "division by zero")
}

func (err *DivideError) Pos() int {
	return err.Col
}

// DepthError is an error indicating an expression nested more deeply than the
// evaluator allows. It implements InputError.
type DepthError struct {
	// Col is the position at which the limit was exceeded.
	Col int
	// Limit is the maximum depth.
	Limit int
}

func (err *DepthError) Error() string {
	return errpos(err.Col, "expression nested deeper than "+strconv.Itoa(err.Limit))
}

func (err *DepthError) Pos() int {
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
	// including the character that caused the error.
	Pos() int
}

var (
	_ InputError = (*ResidualError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*DivideError)(nil)
	_ InputError = (*DepthError)(nil)
)
