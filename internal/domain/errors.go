// Package domain contains the chart model, the rules that classify it, and
// the business-level errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/CLI output by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates malformed or out-of-range input.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable indicates a required dependency is unavailable.
	ErrUnavailable = errors.New("unavailable")

	// ErrNotInitialized indicates the ephemeris provider is not ready yet.
	ErrNotInitialized = errors.New("ephemeris not initialized")

	// ErrCalculation indicates an ephemeris call failed while building a chart.
	ErrCalculation = errors.New("chart calculation failed")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// NotInitializedError is returned when a chart is requested before the
// ephemeris provider finished its one-time initialization.
type NotInitializedError struct {
	Provider string
	Reason   string
	Cause    error
}

// Error implements the error interface.
func (e *NotInitializedError) Error() string {
	msg := fmt.Sprintf("ephemeris %q not initialized", e.Provider)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *NotInitializedError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNotInitialized}
	}

	return []error{ErrNotInitialized, e.Cause}
}

// NewNotInitializedError creates a not-initialized error.
func NewNotInitializedError(provider, reason string, cause error) error {
	return &NotInitializedError{Provider: provider, Reason: reason, Cause: cause}
}

// Calculation stages reported by CalculationError.
const (
	StageJulianDay = "julian_day"
	StageHouses    = "houses"
	StageBody      = "body"
	StageVerify    = "verify"
)

// CalculationError aborts a chart. Subject names the body or cusp being
// computed when the provider failed.
type CalculationError struct {
	Stage   string
	Subject string
	Cause   error
}

// Error implements the error interface.
func (e *CalculationError) Error() string {
	var msg string
	if e.Subject != "" {
		msg = fmt.Sprintf("chart calculation failed at %s (%s)", e.Stage, e.Subject)
	} else {
		msg = "chart calculation failed at " + e.Stage
	}

	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}

	return msg
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *CalculationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrCalculation}
	}

	return []error{ErrCalculation, e.Cause}
}

// NewCalculationError creates a calculation error for a stage and subject.
func NewCalculationError(stage, subject string, cause error) error {
	return &CalculationError{Stage: stage, Subject: subject, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// IsNotInitialized checks if an error is a not-initialized error.
func IsNotInitialized(err error) bool {
	return errors.Is(err, ErrNotInitialized)
}

// IsCalculation checks if an error is a calculation error.
func IsCalculation(err error) bool {
	return errors.Is(err, ErrCalculation)
}
