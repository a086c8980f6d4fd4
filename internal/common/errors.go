package common

import (
	"errors"
	"fmt"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes carried by AppError.
const (
	CodeConfig           = "CONFIG_ERROR"
	CodeExtractionFailed = "EXTRACTION_FAILED"
	CodeExport           = "EXPORT_ERROR"
)

// Common application errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDatabase         = errors.New("database error")
	ErrValidation       = errors.New("validation failed")
	ErrExtractionFailed = errors.New("no text could be extracted")
	ErrExport           = errors.New("export failed")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ExtractionFailed reports a document whose text could not be read by any backend.
// The result matches ErrExtractionFailed and, when given, cause.
func ExtractionFailed(path string, cause error) *AppError {
	err := ErrExtractionFailed
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrExtractionFailed, cause)
	}
	return NewAppError(CodeExtractionFailed, path, err)
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsExtractionFailure reports whether err came from a failed text extraction.
func IsExtractionFailure(err error) bool {
	return errors.Is(err, ErrExtractionFailed)
}
