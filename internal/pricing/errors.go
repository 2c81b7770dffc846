package pricing

import (
	"errors"
	"fmt"
)

// Error kinds reported by the engine. Every failure wraps exactly one of these.
var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidInput         = errors.New("invalid input")
	ErrDivisionByZero       = errors.New("division by zero")
	ErrUnknownReference     = errors.New("unknown reference")
	ErrUnsatisfiableMargin  = errors.New("unsatisfiable margin configuration")
)

// ErrInvalidCapacity is an ErrInvalidInput raised for non-positive capacity factors.
var ErrInvalidCapacity = fmt.Errorf("invalid capacity: %w", ErrInvalidInput)

// ErrorKind returns a stable snake_case code for err, suitable for API payloads
// and metric labels. It returns "" for nil and "internal" for foreign errors.
func ErrorKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidConfiguration):
		return "invalid_configuration"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrUnknownReference):
		return "unknown_reference"
	case errors.Is(err, ErrUnsatisfiableMargin):
		return "unsatisfiable_margin_configuration"
	default:
		return "internal"
	}
}
