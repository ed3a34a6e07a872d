package mathexpr

import "strconv"

// NumberError is an error indicating a word that looks like a number but does
// not parse as one. It implements InputError and unwraps to the error from the
// Arith's Parse.
type NumberError struct {
	// Col is the position of the word.
	Col int
	// Text is the word that failed to parse.
	Text string
	// Err is the parse error.
	Err error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "failed to parse "+strconv.Quote(err.Text)+" as number: "+err.Err.Error())
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

func (err *NumberError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
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

// ExpressionError is an error indicating that operands and operators do not
// alternate: two operands in a row, an operator where an operand belongs, or
// an empty group. It implements InputError.
type ExpressionError struct {
	// Col is the position of the unexpected token, or of the end of the group
	// if Token is empty.
	Col int
	// Token is the unexpected token. It is empty if the expression or group
	// ended where an operand was expected.
	Token string
	// Want is what the parser expected instead, "operand" or "operator".
	Want string
}

func (err *ExpressionError) Error() string {
	if err.Token == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "expected "+err.Want+" at end of expression")
	}
	return errpos(err.Col, "expected "+err.Want+", found "+strconv.Quote(err.Token))
}

func (err *ExpressionError) Pos() int {
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

var (
	_ InputError = (*NumberError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*ExpressionError)(nil)
)
