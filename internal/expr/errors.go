package expr

import (
	"errors"
	"fmt"
)

// Evaluation errors. Callers match them with errors.Is; the concrete error
// returned by Scan and Eval is a *SyntaxError carrying the offset.
var (
	ErrEmpty          = errors.New("empty expression")
	ErrUnexpectedChar = errors.New("unexpected character")
	ErrBadNumber      = errors.New("malformed number")
	ErrUnbalanced     = errors.New("unbalanced parentheses")
	ErrMissingOperand = errors.New("missing operand")
	ErrTrailing       = errors.New("unexpected input after expression")
	ErrDivideByZero   = errors.New("division by zero")
	ErrNotFinite      = errors.New("result is not a finite number")
	ErrTooDeep        = errors.New("expression nested too deeply")
)

// SyntaxError reports where in the source an evaluation failed
type SyntaxError struct {
	Pos int // Byte offset into the source
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%v at offset %d", e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func errAt(pos int, err error) error {
	return &SyntaxError{Pos: pos, Err: err}
}
