package thermo

import (
	"errors"
	"fmt"
)

// Property resolution failures. PropertyError wraps one of these.
var (
	// ErrOutOfRange indicates a state outside the fluid's valid temperature,
	// pressure or volume window.
	ErrOutOfRange = errors.New("thermo: state outside valid range")

	// ErrTwoPhase indicates a state inside the vapour-liquid dome.
	ErrTwoPhase = errors.New("thermo: state inside two-phase region")

	// ErrNoSolution indicates the equation of state could not be inverted.
	ErrNoSolution = errors.New("thermo: no solution for state")

	// ErrUnknownFluid indicates a fluid name missing from the catalog.
	ErrUnknownFluid = errors.New("thermo: unknown fluid")

	// ErrUnknownModel indicates an unsupported property model name.
	ErrUnknownModel = errors.New("thermo: unknown property model")
)

// PropertyError reports a state the provider refused to resolve.
type PropertyError struct {
	Fluid  string
	Known  Known
	Reason string
	Err    error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s: %s at %s: %s", e.Err, e.Fluid, e.Known, e.Reason)
}

func (e *PropertyError) Unwrap() error {
	return e.Err
}

func propertyError(fluid string, known Known, sentinel error, format string, args ...any) *PropertyError {
	return &PropertyError{
		Fluid:  fluid,
		Known:  known,
		Reason: fmt.Sprintf(format, args...),
		Err:    sentinel,
	}
}
