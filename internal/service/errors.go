package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"estatehub-backend/internal/repository"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrConflict     = errors.New("conflict")
	ErrInvalidRole  = errors.New("role does not match property status")
	ErrInvalidState = errors.New("invalid state")

	// ErrAlreadyBooked and ErrDateConflict are conflicts: errors.Is matches
	// both the specific error and ErrConflict.
	ErrAlreadyBooked error = conflictError("property is already booked")
	ErrDateConflict  error = conflictError("property is already booked for the selected dates")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

type conflictError string

func (e conflictError) Error() string { return string(e) }

func (e conflictError) Is(target error) bool {
	return target == ErrConflict
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("%s: %s", ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

func (e *ValidationError) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func fieldError(field, msg string) error {
	v := &ValidationError{}
	v.Add(field, msg)
	return v
}

func notFound(what string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("%s %w", what, ErrNotFound)
	}
	return err
}

// storageConflict maps constraint violations on bookings to booking errors.
func storageConflict(err error) error {
	switch {
	case errors.Is(err, repository.ErrExclusionViolation):
		return fmt.Errorf("%w: %v", ErrDateConflict, err)
	case errors.Is(err, repository.ErrUniqueViolation):
		return fmt.Errorf("%w: %v", ErrAlreadyBooked, err)
	}
	return err
}
