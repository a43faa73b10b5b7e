package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError represents a validation error on a single field
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// ValidationErrors collects every field that failed validation, in field order
type ValidationErrors []*ValidationError

func (e ValidationErrors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return strings.Join(parts, "; ")
}

// First returns the first failing field, or nil for an empty list
func (e ValidationErrors) First() *ValidationError {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// StorageError represents a failed write against a configured storage backend
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("storage: %s failed", e.Op)
	}
	return fmt.Sprintf("storage: %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Configuration Errors
var (
	ErrStorageNotConfigured = &ConfigurationError{Message: "database not configured"}
	ErrUnknownDBDriver      = &ConfigurationError{Message: "unsupported DB_DRIVER"}
)

// Request Errors
var (
	ErrBodyTooLarge    = errors.New("request body too large")
	ErrInvalidResponse = errors.New("invalid response payload")
)

// Helper Functions

// IsValidation checks if an error is a ValidationError or ValidationErrors
func IsValidation(err error) bool {
	var validationErr *ValidationError
	var validationErrs ValidationErrors
	return errors.As(err, &validationErr) || errors.As(err, &validationErrs)
}

// IsConfiguration checks if an error is a ConfigurationError
func IsConfiguration(err error) bool {
	var configErr *ConfigurationError
	return errors.As(err, &configErr)
}

// IsStorage checks if an error is a StorageError
func IsStorage(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr)
}

// AsValidationErrors flattens err into a ValidationErrors list.
// It returns false when err carries no validation failure.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var validationErrs ValidationErrors
	if errors.As(err, &validationErrs) {
		return validationErrs, true
	}
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return ValidationErrors{validationErr}, true
	}
	return nil, false
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewConfigurationError creates a new ConfigurationError
func NewConfigurationError(message string) error {
	return &ConfigurationError{Message: message}
}

// NewStorageError wraps err as a StorageError for the named operation
func NewStorageError(op string, err error) error {
	return &StorageError{Op: op, Err: err}
}
