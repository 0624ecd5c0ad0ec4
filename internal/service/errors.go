package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInternal         = errors.New("internal server error")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrPermissionDenied = errors.New("permission denied")
	ErrUnauthenticated  = errors.New("user is not authenticated")

	ErrPostNotFound   = fmt.Errorf("post %w", ErrNotFound)
	ErrGroupNotFound  = fmt.Errorf("group %w", ErrNotFound)
	ErrAuthorNotFound = fmt.Errorf("author %w", ErrNotFound)
	ErrNotPostAuthor  = fmt.Errorf("%w: only the author can change this post", ErrPermissionDenied)
	ErrAdminOnly      = fmt.Errorf("%w: administrator role required", ErrPermissionDenied)
)

// ValidationError carries a message per rejected input field.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field string, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) add(field string, message string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = message
}

func (e *ValidationError) merge(other *ValidationError) *ValidationError {
	if other == nil {
		return e
	}
	if e == nil {
		return other
	}
	for field, message := range other.Fields {
		e.add(field, message)
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e.Fields[field])
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
