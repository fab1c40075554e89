package consult

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a consultation id does not resolve to a
// stored record. It is a lookup failure, never a validation failure.
var ErrNotFound = errors.New("consultation not found")

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice."
	msgInvalidDate   = "Enter a valid date."
	msgFutureDOB     = "Date of birth cannot be in the future."
	msgInvalidTime   = "Enter a valid date/time."
	msgInvalidNumber = "Enter a valid number."
	msgAgeOrDOB      = "Please provide either Age or Date of Birth."
	msgOtherReason   = `Please specify the "Other" reason.`
)

// ValidationError carries field-level and form-level messages for one
// section submission. The offending record is never modified.
type ValidationError struct {
	Fields map[string][]string `json:"fields,omitempty"`
	Form   []string            `json:"form,omitempty"`
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) addField(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

func (e *ValidationError) addForm(msg string) {
	e.Form = append(e.Form, msg)
}

func (e *ValidationError) empty() bool {
	return len(e.Fields) == 0 && len(e.Form) == 0
}

// orNil returns nil when no messages were recorded, so validators can
// return the error slot directly.
func (e *ValidationError) orNil() *ValidationError {
	if e.empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	var parts []string
	for field, msgs := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(msgs, "; ")))
	}
	parts = append(parts, e.Form...)
	return "validation failed: " + strings.Join(parts, "; ")
}
