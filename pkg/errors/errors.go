package errors

import (
	"errors"
	"fmt"
)

// Domain error types for business logic

var (
	// ErrInvalidInput indicates client-supplied data failed validation.
	// Always accompanied by a field-level error list
	ErrInvalidInput = errors.New("invalid input")

	// ErrModelNotLoaded indicates a predictor was invoked before its
	// model bundle was loaded, or after a failed load
	ErrModelNotLoaded = errors.New("model not loaded")

	// ErrInvalidModelOutput indicates the post-prediction consistency
	// check failed. Points at a model/feature-contract mismatch and
	// should alert operators
	ErrInvalidModelOutput = errors.New("invalid model output")

	// ErrPredictionFailed indicates an unexpected numeric failure
	// during inference
	ErrPredictionFailed = errors.New("prediction failed")

	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("resource not found")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")

	// ErrUnavailable indicates a service is unavailable
	ErrUnavailable = errors.New("service unavailable")
)

// InputError carries the field-level error list produced by the validator.
// It always unwraps to ErrInvalidInput
type InputError struct {
	Details []string
}

// Error implements the error interface
func (e *InputError) Error() string {
	if len(e.Details) == 0 {
		return ErrInvalidInput.Error()
	}
	return fmt.Sprintf("%s: %v", ErrInvalidInput.Error(), e.Details)
}

// Unwrap returns ErrInvalidInput so callers can match with errors.Is
func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

// NewInputError creates an InputError from validator details
func NewInputError(details []string) *InputError {
	return &InputError{Details: details}
}

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New creates a new error from a message
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
