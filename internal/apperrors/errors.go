// Package apperrors defines the error taxonomy shared by all services.
// Every failure a caller can provoke maps to one of these types, and the
// HTTP layer translates each type to a specific status code. No service
// error surfaces as a generic 500.
package apperrors

import "fmt"

// ValidationError reports malformed or logically invalid input: missing
// fields, non-positive amounts, quantities that would go negative,
// unknown referenced locations.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// NotFoundf builds a NotFoundError from a format string.
func NotFoundf(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a duplicate creation: a BOM for an existing
// product barcode, or a location/category name collision.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError reports that a BOM component lacks the stock a
// composite operation requires. It names the first insufficient component
// and is raised before any deduction takes place.
type InsufficientStockError struct {
	Component string
	Required  int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for component %s: need %d, have %d",
		e.Component, e.Required, e.Available)
}
