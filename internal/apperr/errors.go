// Package apperr holds the error kinds returned by the order and administration
// services. Callers match them with errors.Is and errors.As.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrConflict          = errors.New("conflict")
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("invalid credentials")
)

type PermissionError struct {
	Reason string
}

func (e *PermissionError) Error() string {
	if e.Reason == "" {
		return ErrPermissionDenied.Error()
	}
	return fmt.Sprintf("%s: %s", ErrPermissionDenied, e.Reason)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

func PermissionDenied(reason string) error {
	return &PermissionError{Reason: reason}
}

// TransitionError carries the rejected edge. From and To are kept as raw
// strings so unrecognized values survive for diagnostics.
type TransitionError struct {
	From string
	To   string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s from %q to %q", ErrInvalidTransition, e.From, e.To)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(msgs, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func Validation(fields map[string]string) error {
	return &ValidationError{Fields: fields}
}

// InvalidField is shorthand for a single-field validation error.
func InvalidField(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func NotFound(resource, id string) error {
	return fmt.Errorf("%s %s: %w", resource, id, ErrNotFound)
}

func Conflict(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}
