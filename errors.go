package go_aditum

import (
	"errors"
	"fmt"

	"github.com/stremovskyy/go-aditum/schema"
)

// Validation failure codes.
const (
	CodeRequiredFieldMissing = schema.CodeRequired
	CodeOutOfRange           = schema.CodeOutOfRange
	CodeInvalidFormat        = schema.CodeInvalidFormat
	CodeInvalidChecksum      = schema.CodeInvalidChecksum
	CodePrecisionViolation   = schema.CodePrecision
)

// Processor error codes.
const (
	CodeNotInitialized = "NOT_INITIALIZED"
	CodeInvalidConfig  = "INVALID_CONFIG"
	CodeInitError      = "INIT_ERROR"
	CodeProcessError   = "PROCESS_ERROR"
	CodeCancelled      = "CANCELLED"
	CodeCancelError    = "CANCEL_ERROR"
	CodeStatusError    = "STATUS_ERROR"
)

var (
	ErrNotInitialized = &ProcessorError{Code: CodeNotInitialized, Message: "SDK not initialized. Call Initialize() first."}
	ErrCancelled      = &ProcessorError{Code: CodeCancelled, Message: "Payment was cancelled by user"}
)

// ValidationError indicates that a request is missing required fields or contains invalid data.
// Fields keeps every failing field in schema order.
type ValidationError struct {
	Fields []FieldError
}

type FieldError struct {
	Field   string
	Code    schema.Code
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation error"
	}
	if len(e.Fields) == 1 {
		fe := e.Fields[0]
		if fe.Field == "" {
			return fmt.Sprintf("validation error: %s", fe.Message)
		}
		return fmt.Sprintf("validation error: %s: %s", fe.Field, fe.Message)
	}
	return fmt.Sprintf("validation error: %d fields", len(e.Fields))
}

func (e *ValidationError) Add(field string, code schema.Code, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code, Message: message})
}

func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// Has reports whether field failed with code.
func (e *ValidationError) Has(field string, code schema.Code) bool {
	if e == nil {
		return false
	}
	for _, fe := range e.Fields {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}

// IsValidationError checks whether err is a *ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func newValidationError(issues schema.Issues) error {
	if len(issues) == 0 {
		return nil
	}
	ve := &ValidationError{Fields: make([]FieldError, 0, len(issues))}
	for _, is := range issues {
		ve.Add(is.Path, is.Code, is.Message)
	}
	return ve
}

// ProcessorError is a failure reported by, or on the way to, the payment processor.
type ProcessorError struct {
	Code    string
	Message string
	OrderID string
	Err     error
}

func (e *ProcessorError) Error() string {
	if e == nil {
		return "aditum processor error"
	}
	if e.Message == "" {
		return fmt.Sprintf("aditum: %s", e.Code)
	}
	return fmt.Sprintf("aditum: %s: %s", e.Code, e.Message)
}

func (e *ProcessorError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is matches any *ProcessorError with the same code, so
// errors.Is(err, ErrCancelled) works on copies.
func (e *ProcessorError) Is(target error) bool {
	t, ok := target.(*ProcessorError)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// asProcessorError returns a private copy of the *ProcessorError in err's
// chain, or wraps err with code.
func asProcessorError(err error, code string) *ProcessorError {
	var pe *ProcessorError
	if errors.As(err, &pe) {
		cp := *pe
		return &cp
	}
	return &ProcessorError{Code: code, Message: err.Error(), Err: err}
}
