// Package apperrors defines the error kinds handlers translate into HTTP
// responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// FieldError is a single field-level validation message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a field message and returns the receiver for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// Has reports whether field has at least one message.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// Validation builds a ValidationError with one message.
func Validation(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}

// Missing builds a ValidationError naming every missing required field.
func Missing(fields ...string) *ValidationError {
	e := &ValidationError{}
	for _, f := range fields {
		e.Add(f, f+" is required")
	}
	return e
}

// NotFoundError means an id (or slug) did not resolve.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return e.Resource + " not found"
}

// NotFound builds a NotFoundError for resource.
func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// UploadError wraps an asset store failure for a form field.
type UploadError struct {
	Field string
	Err   error
}

func (e *UploadError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("upload failed: %v", e.Err)
	}
	return fmt.Sprintf("upload of %s failed: %v", e.Field, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// ConnectionError means the document store is unreachable.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("database unavailable: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthError means the session is missing, invalid or expired, or the login
// credentials were rejected.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "unauthorized"
	}
	return e.Reason
}

// Status maps err onto an HTTP status code. Unknown errors are 500.
func Status(err error) int {
	var (
		verr *ValidationError
		nerr *NotFoundError
		uerr *UploadError
		cerr *ConnectionError
		aerr *AuthError
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &verr):
		return http.StatusBadRequest
	case errors.As(err, &nerr):
		return http.StatusNotFound
	case errors.As(err, &aerr):
		return http.StatusUnauthorized
	case errors.As(err, &uerr), errors.As(err, &cerr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Message is the client-facing text for err. Internal errors are not echoed.
func Message(err error) string {
	var (
		verr *ValidationError
		nerr *NotFoundError
		uerr *UploadError
		cerr *ConnectionError
		aerr *AuthError
	)
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.As(err, &nerr):
		return nerr.Error()
	case errors.As(err, &aerr):
		return aerr.Error()
	case errors.As(err, &uerr):
		if uerr.Field != "" {
			return "failed to upload " + uerr.Field
		}
		return "file upload failed"
	case errors.As(err, &cerr):
		return "database unavailable"
	default:
		return "internal server error"
	}
}

// Fields returns the field messages of a ValidationError, sorted by field,
// or nil for any other error.
func Fields(err error) []FieldError {
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Fields) == 0 {
		return nil
	}
	out := append([]FieldError(nil), verr.Fields...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Field < out[j].Field })
	return out
}
