package process

import "fmt"

// InvalidParameterError reports a request field rejected before any
// computation.
type InvalidParameterError struct {
	Field  string
	Reason string
	Err    error
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s: %s", e.Field, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// UnsupportedProcessError reports a process kind outside the closed set.
type UnsupportedProcessError struct {
	Kind string
}

func (e *UnsupportedProcessError) Error() string {
	return fmt.Sprintf("unsupported process %q: expected one of %v", e.Kind, Kinds())
}

func invalid(field, format string, args ...any) *InvalidParameterError {
	return &InvalidParameterError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
