package models

import (
	"errors"
	"strings"
	"time"
)

// PKT is the fixed UTC+5 offset every timestamp in the store is written in.
var PKT = time.FixedZone("PKT", 5*60*60)

// Clock returns the current time. Services and repositories take one so tests
// can pin the time.
type Clock func() time.Time

// NowPKT returns the current time in PKT regardless of the host timezone.
func NowPKT() time.Time {
	return time.Now().In(PKT)
}

// FormatDateTime formats a time as RFC3339 in PKT
func FormatDateTime(t time.Time) string {
	return t.In(PKT).Format(time.RFC3339)
}

// Sentinel errors shared by repositories and services
var (
	ErrValidation      = errors.New("validation failed")
	ErrStudentNotFound = errors.New("student not found")
	ErrStudentConflict = errors.New("student with this ID or email already exists")
)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

// GetMessages returns all error messages as a slice of strings
func (ve ValidationErrors) GetMessages() []string {
	messages := make([]string, len(ve))
	for i, err := range ve {
		messages[i] = err.Message
	}
	return messages
}

func (ve ValidationErrors) Error() string {
	return strings.Join(ve.GetMessages(), "; ")
}

// Unwrap lets callers match any ValidationErrors with errors.Is(err, ErrValidation).
func (ve ValidationErrors) Unwrap() error {
	return ErrValidation
}
