package model

import (
	"errors"
	"fmt"
)

// Error taxonomy for a risk evaluation. Every failure returned by the engine
// wraps exactly one of these, so callers can branch with errors.Is.
var (
	ErrInputOutOfRange             = errors.New("input out of range")
	ErrInvalidRelationalConstraint = errors.New("invalid relational constraint")
	ErrDivisionByZeroInLGD         = errors.New("division by zero in LGD")
	ErrEstimatorUnavailable        = errors.New("estimator unavailable")
)

// FieldError describes a single rejected applicant field.
type FieldError struct {
	Field  string
	Value  any
	Reason string
	Kind   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Unwrap exposes the taxonomy sentinel.
func (e *FieldError) Unwrap() error {
	return e.Kind
}

// FieldErrors extracts every FieldError from err, descending through
// wrapped and joined errors.
func FieldErrors(err error) []*FieldError {
	switch e := err.(type) {
	case nil:
		return nil
	case *FieldError:
		return []*FieldError{e}
	case interface{ Unwrap() []error }:
		var out []*FieldError
		for _, inner := range e.Unwrap() {
			out = append(out, FieldErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return FieldErrors(e.Unwrap())
	default:
		return nil
	}
}

// ErrorCode maps an error to its stable wire code. Unknown errors map to "INTERNAL".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrInputOutOfRange):
		return "INPUT_OUT_OF_RANGE"
	case errors.Is(err, ErrInvalidRelationalConstraint):
		return "INVALID_RELATIONAL_CONSTRAINT"
	case errors.Is(err, ErrDivisionByZeroInLGD):
		return "DIVISION_BY_ZERO_IN_LGD"
	case errors.Is(err, ErrEstimatorUnavailable):
		return "ESTIMATOR_UNAVAILABLE"
	default:
		return "INTERNAL"
	}
}
