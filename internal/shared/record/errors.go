package record

import (
	"errors"
	"fmt"
)

// Validation errors. Every one of them wraps ErrValidation so callers can tell
// "bad input" apart from storage or connection failures with errors.Is.
var (
	// ErrValidation is the kind shared by all input validation failures.
	ErrValidation = errors.New("validation error")

	// ErrEmptyInput is returned when the provider payload is empty.
	ErrEmptyInput = fmt.Errorf("%w: input cannot be empty", ErrValidation)

	// ErrNoPersistableFields is returned when nothing is left after filtering
	// against the live schema.
	ErrNoPersistableFields = fmt.Errorf("%w: no valid data to insert after filtering", ErrValidation)

	// ErrMissingColumns is returned when required input columns are absent.
	ErrMissingColumns = fmt.Errorf("%w: missing required columns", ErrValidation)

	// ErrMissingNaturalKey is returned when a natural-key column has no value
	// or is not part of the target schema.
	ErrMissingNaturalKey = fmt.Errorf("%w: missing natural key", ErrValidation)

	// ErrInvalidOptionClass is returned for option classes other than puts/calls.
	ErrInvalidOptionClass = fmt.Errorf("%w: invalid option class", ErrValidation)
)

// Coercion errors.
var (
	// ErrCoercion is returned when a value cannot be converted to the storage type.
	ErrCoercion = errors.New("cannot coerce value")

	// ErrUnsupportedDate is returned for date inputs of an unsupported shape.
	ErrUnsupportedDate = errors.New("unsupported date value")
)

// ErrNoData marks "the provider returned nothing" conditions. Callers log them
// as warnings and return an empty result instead of failing.
var ErrNoData = errors.New("no data")
