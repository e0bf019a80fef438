package domain

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface enables extensible error handling (OCP compliance).
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrReference     = errors.New("referential integrity violation")
	ErrConflict      = errors.New("concurrency conflict")
	ErrConfiguration = errors.New("configuration error")
	ErrUnauthorized  = errors.New("unauthorized")
)

// ValidationError carries every violated constraint of a candidate record,
// keyed by dotted field path (e.g. "codeSnippet.language"). Validation never
// stops at the first failure, so Fields holds the complete list.
type ValidationError struct {
	Fields map[string]string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// StatusCode implements the HTTPError interface
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Is allows errors.Is() to match against ErrValidation
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferentialError indicates a discussion references a question that does not
// exist or resolves to a record of the wrong type.
type ReferentialError struct {
	RelatedQuestionID string
	Reason            string
}

// Error implements the error interface
func (e *ReferentialError) Error() string {
	return fmt.Sprintf("related question %s: %s", e.RelatedQuestionID, e.Reason)
}

// StatusCode implements the HTTPError interface
func (e *ReferentialError) StatusCode() int { return http.StatusUnprocessableEntity }

// Is allows errors.Is() to match against ErrReference
func (e *ReferentialError) Is(target error) bool { return target == ErrReference }

// ConflictError indicates an aggregate update lost its optimistic-concurrency
// race against another writer, after exhausting the retry budget.
type ConflictError struct {
	ResourceID string
	Attempts   int
}

// Error implements the error interface
func (e *ConflictError) Error() string {
	return fmt.Sprintf("content %s: update conflicted with a concurrent writer after %d attempts", e.ResourceID, e.Attempts)
}

// StatusCode implements the HTTPError interface
func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool { return target == ErrConflict }
