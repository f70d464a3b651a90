package validation

import (
	"fmt"
	"strings"
)

const (
	MsgEndpointIDRequired      = "Endpoint ID is required"
	MsgMethodRequired          = "Method is required"
	MsgMethodUnsupported       = "Method must be one of GET, POST, PUT, DELETE"
	MsgDescriptionRequired     = "Description is required"
	MsgInvalidURL              = "Please enter a valid URL"
	MsgPromptExampleRequired   = "Prompt example is required"
	MsgResponseExampleRequired = "Response example is required"
	MsgInvalidJSON             = "Invalid JSON format. Please check your response example."
	MsgCreatorRequired         = "Creator name is required"
	MsgInputRequired           = "Input is required"
	MsgExpectedOutputRequired  = "Expected output is required"
	MsgIDRequired              = "ID is required"
	MsgCreatedAtRequired       = "Created date is required"
)

const (
	FieldEndpointID      = "endpointId"
	FieldMethod          = "method"
	FieldDescription     = "description"
	FieldURL             = "url"
	FieldPromptExample   = "promptExample"
	FieldResponseExample = "responseExample"
	FieldCreator         = "creator"
	FieldInput           = "input"
	FieldExpectedOutput  = "expectedOutput"
	FieldID              = "id"
	FieldCreatedAt       = "createdAt"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the set of field errors for one rejected submission, in rule order.
type Errors struct {
	Fields []FieldError
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *Errors) add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

func (e *Errors) merge(prefix string, other *Errors) {
	for _, f := range other.Fields {
		e.add(prefix+"."+f.Field, f.Message)
	}
}

// Message returns the first message attached to field.
func (e *Errors) Message(field string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message, true
		}
	}
	return "", false
}

// Map flattens the errors to field -> first message.
func (e *Errors) Map() map[string]string {
	m := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if _, ok := m[f.Field]; !ok {
			m[f.Field] = f.Message
		}
	}
	return m
}

func (e *Errors) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// BatchError reports the rejected entries of a multi-submission import.
type BatchError struct {
	Errors []IndexedError
}

type IndexedError struct {
	Index int
	Err   *Errors
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("batch validation failed: %d invalid entries", len(e.Errors))
}
