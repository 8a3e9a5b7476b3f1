// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Error kinds. Every failure surfaced to a caller wraps exactly one of
// these sentinels so transport layers can map it without string matching.
var (
	// ErrValidation marks malformed or out-of-range input. No state change.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a reference to an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvariant marks an operation that would corrupt ledger
	// consistency, such as editing a transfer leg directly.
	ErrInvariant = errors.New("invariant violation")

	// ErrStorage marks an I/O failure during persistence. The operation
	// is aborted and prior state preserved.
	ErrStorage = errors.New("storage failure")
)

// Validationf builds a validation error with a formatted detail message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf builds a not-found error with a formatted detail message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Invariantf builds an invariant-violation error with a formatted detail message.
func Invariantf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvariant, fmt.Sprintf(format, args...))
}

// Storagef wraps an underlying I/O error as a storage failure.
func Storagef(err error, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, fmt.Sprintf(format, args...), err)
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsInvariant reports whether err is an invariant violation.
func IsInvariant(err error) bool { return errors.Is(err, ErrInvariant) }
