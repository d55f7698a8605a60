package calc

import "errors"

var (
	// ErrEvaluation is returned by Evaluate and ApplyFunction whenever the
	// input does not produce a finite number. The controller has already
	// switched to the error display when it is returned.
	ErrEvaluation = errors.New("evaluation error")

	// ErrNotFinite wraps results that are NaN or infinite
	ErrNotFinite = errors.New("result is not finite")

	// ErrInvalidOperand is returned when a memory or paste operand cannot be
	// parsed. A rejected memory operation leaves the register unchanged; a
	// rejected paste keeps whatever was typed before the bad character.
	ErrInvalidOperand = errors.New("invalid operand")

	// ErrInvalidInput is returned for keystrokes that are not digits or operators
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownFunction is returned for scientific function names the controller doesn't know
	ErrUnknownFunction = errors.New("unknown function")

	// ErrUnknownEntry is returned when a history entry ID doesn't exist
	ErrUnknownEntry = errors.New("unknown history entry")
)
