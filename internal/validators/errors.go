package validators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnsupportedType is returned when a validator receives a value it does not know.
	ErrUnsupportedType = errors.New("unsupported type for validation")

	// ErrValidationFailed matches every ValidationErrors value through errors.Is.
	ErrValidationFailed = errors.New("validation failed")
)

// FieldError attributes a single failed rule to a field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error renders the field error as "<field> <message>".
func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationErrors is an ordered list of field errors.
// A nil or empty list is never returned as an error; use Err to convert.
type ValidationErrors []FieldError

// Error implements error.
func (v ValidationErrors) Error() string {
	if len(v) == 1 {
		return "the form contains 1 error: " + v[0].Error()
	}

	msgs := make([]string, 0, len(v))
	for _, e := range v {
		msgs = append(msgs, e.Error())
	}
	return fmt.Sprintf("the form contains %d errors: %s", len(v), strings.Join(msgs, "; "))
}

// Is makes every ValidationErrors match ErrValidationFailed.
func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

// Count returns the number of field errors.
func (v ValidationErrors) Count() int {
	return len(v)
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// Err returns v as an error, or nil when v is empty.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// NewFieldError builds a single-field ValidationErrors.
func NewFieldError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

// AsValidationErrors extracts ValidationErrors from an error chain.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var v ValidationErrors
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
