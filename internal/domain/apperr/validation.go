package apperr

import "strings"

// ValidationError carries every field-level failure found in an input, not
// just the first one.
type ValidationError struct {
	Fields []FieldMessage
}

type FieldMessage struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidation() *ValidationError { return &ValidationError{} }

func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldMessage{Field: field, Message: message})
	return e
}

func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
