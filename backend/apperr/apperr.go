// Package apperr holds the error taxonomy returned by the services. The HTTP boundary
// maps each kind to a status code; anything else is an internal failure.
package apperr

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError reports malformed or out-of-range input. Fields maps a field path to
// the rule it broke.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + " (" + strings.Join(parts, ", ") + ")"
}

type NotFoundError struct {
	Entity string
	Key    interface{}
}

func (e *NotFoundError) Error() string {
	if e.Key == nil {
		return e.Entity + " not found"
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.Key)
}

// AuthorizationError means the caller is authenticated but may not touch the resource.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message == "" {
		return "forbidden"
	}
	return e.Message
}

type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Validation(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func InvalidField(field, rule string) *ValidationError {
	return &ValidationError{Message: "validation failed", Fields: map[string]string{field: rule}}
}

func NotFound(entity string, key interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func Forbidden(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

func Conflict(message string) *ConflictError {
	return &ConflictError{Message: message}
}
