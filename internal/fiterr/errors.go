// Package fiterr defines the error taxonomy shared by the scoring engine.
//
// Every engine failure is one of three kinds: a value that breaks an invariant
// (validation), input that is too sparse to compute a mean or ratio
// (insufficient data), or a lookup miss (not found). Callers match kinds with
// errors.Is against the sentinels and extract details with errors.As.
package fiterr

import (
	"errors"
	"fmt"
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrInsufficientData = errors.New("insufficient data")
	ErrNotFound         = errors.New("not found")
)

// ValidationError reports a value that violates an invariant at construction time.
type ValidationError struct {
	Field  string
	Reason string
}

// Validation builds a ValidationError with a formatted reason.
func Validation(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// InsufficientDataError reports an input group that is empty or missing, which
// makes a mean or ratio undefined.
type InsufficientDataError struct {
	Group  string
	Reason string
}

// InsufficientData builds an InsufficientDataError with a formatted reason.
func InsufficientData(group, format string, args ...any) *InsufficientDataError {
	return &InsufficientDataError{Group: group, Reason: fmt.Sprintf(format, args...)}
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data for %s: %s", e.Group, e.Reason)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// NotFoundError reports a reference-data lookup miss.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }
