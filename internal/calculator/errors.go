package calculator

import (
	"strconv"
)

// MalformedNumeralError is returned when a run of digits and dots cannot be
// read as a number, e.g. "1.2.3".
type MalformedNumeralError struct {
	// Pos is the rune offset where the numeral starts.
	Pos int
	// Text is the numeral as written.
	Text string
}

func (err *MalformedNumeralError) Error() string {
	return strconv.Itoa(err.Pos) + ": malformed numeral " + strconv.Quote(err.Text)
}

// FactorialError is returned when ! is applied to a value that is not a
// non-negative integer.
type FactorialError struct {
	Operand float64
}

func (err *FactorialError) Error() string {
	return "factorial of " + strconv.FormatFloat(err.Operand, 'g', -1, 64) + " is undefined"
}
