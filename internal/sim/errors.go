package sim

import (
	"errors"
	"fmt"
)

// Domain errors for run starts. Every failure leaves the driver as it was.
var (
	// ErrInputFormat indicates text that does not parse as a number.
	ErrInputFormat = errors.New("sim: value is not a valid number")

	// ErrInvalidParameter indicates a number outside its valid range.
	ErrInvalidParameter = errors.New("sim: parameter out of valid bounds")

	// ErrMissingData indicates a run that cannot be set up from the values given.
	ErrMissingData = errors.New("sim: missing data")

	// ErrUnreachable indicates a target the body moves away from.
	ErrUnreachable = errors.New("sim: target not reachable")

	// ErrNotRunning indicates a tick source attached to a stopped driver.
	ErrNotRunning = errors.New("sim: driver is not running")
)

// ParamError reports which input was rejected and why.
type ParamError struct {
	Field   string
	Reason  string
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

func invalid(field, reason string) error {
	return &ParamError{Field: field, Reason: reason, Wrapped: ErrInvalidParameter}
}
