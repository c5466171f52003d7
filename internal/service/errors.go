package service

import (
	"errors"
	"fmt"
	"strings"

	"notary-ally/internal/records"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an external service call fails.
	ErrExternalService = errors.New("external service error")

	// ErrMissingCredential is returned before any lookup when no API key is configured.
	ErrMissingCredential = errors.New("API key is not configured")
	// ErrCountyUndetermined is returned when the lookup answer is empty.
	ErrCountyUndetermined = errors.New("failed to determine county from the response")
	// ErrInvalidDistance is returned when the lookup answer is not a number.
	ErrInvalidDistance = errors.New("could not parse a valid distance from the response")

	// ErrCalculationInProgress is returned when a distance calculation is already running.
	ErrCalculationInProgress = errors.New("a calculation is already in progress")
)

// Messages shown to users when a lookup fails.
const (
	CountyLookupMessage   = "Could not determine county. Please try again."
	DistanceLookupMessage = "Could not calculate mileage. Please check locations and try again."
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with ErrInvalidInput.
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// LookupError is a failed county or distance lookup. Message is safe to show
// to users; Err keeps the cause for errors.Is and logging.
type LookupError struct {
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// checkRecord runs the struct validation for rec and reports the first
// failing field.
func checkRecord(rec any) error {
	fieldErrs := records.Validate(rec)
	if len(fieldErrs) == 0 {
		return nil
	}
	fe := fieldErrs[0]
	return &ValidationError{Field: fe.Field, Message: tagMessage(fe.Tag)}
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "notarization_type":
		names := make([]string, len(records.NotarizationTypes))
		for i, t := range records.NotarizationTypes {
			names[i] = string(t)
		}
		return "must be one of " + strings.Join(names, ", ")
	default:
		return "is invalid"
	}
}
