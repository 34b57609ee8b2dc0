/*
errors.go - Centralized error types for the report engine

PURPOSE:
  All validation error kinds in one place. The four sentinels form the
  fail-fast taxonomy raised before any aggregation begins; unresolved
  references during the join pass are warnings, never errors.

ERROR CATEGORIES:
  1. InvalidStructure - an input collection was never provided (nil slice)
  2. EmptyInput       - an input collection is present but empty
  3. InvalidOptions   - the options record is absent
  4. MissingStrategy  - a calculation strategy is not set

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, report.ErrEmptyInput) { ... }

  or detect the whole taxonomy at once:

    if report.IsInputError(err) { // respond 400 }

SEE ALSO:
  - validate.go: Raises these errors
  - warnings.go: The non-fatal side-channel for unresolved references
*/
package report

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidStructure is returned when one of the three input
	// collections was never provided.
	ErrInvalidStructure = errors.New("input collection is not a sequence")

	// ErrEmptyInput is returned when an input collection is present but
	// holds no records.
	ErrEmptyInput = errors.New("input collection is empty")

	// ErrInvalidOptions is returned when the options record is absent.
	ErrInvalidOptions = errors.New("options missing or malformed")

	// ErrMissingStrategy is returned when the revenue or bonus strategy
	// is not set.
	ErrMissingStrategy = errors.New("calculation strategy not provided")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// InputError names the offending field and wraps the taxonomy sentinel.
type InputError struct {
	Field string
	Err   error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsInputError returns true if the error belongs to the fail-fast
// validation taxonomy (i.e. the caller supplied bad input, not the engine).
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidStructure) ||
		errors.Is(err, ErrEmptyInput) ||
		errors.Is(err, ErrInvalidOptions) ||
		errors.Is(err, ErrMissingStrategy)
}
