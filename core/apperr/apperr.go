package apperr

import (
	"errors"
	"fmt"
)

// Sentinel errors for the inventory engine. Handlers map these to HTTP codes.
var (
	// ErrNotFound means the referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict means the write lost to a concurrent mutation (stale version).
	ErrConflict = errors.New("conflict")
	// ErrAlreadyApproved means a procurement was approved before.
	ErrAlreadyApproved = errors.New("procurement already approved")
)

// ValidationError reports malformed or missing operator input.
// Surfaced as a field-level message; the operation is never attempted.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

// Validation builds a ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// InsufficientStockError means a debit would drive a stock balance negative.
// Policy: such debits are rejected, never clamped or allowed through.
type InsufficientStockError struct {
	Material  string
	Requested float64
	Available float64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock of %s: requested %.3f, available %.3f",
		e.Material, e.Requested, e.Available)
}

// IsInsufficientStock reports whether err is an InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var ise *InsufficientStockError
	return errors.As(err, &ise)
}
