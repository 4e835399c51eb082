package models

import "errors"

// FailureKind classifies a failed operation. It is not serialized; the HTTP
// layer uses it to pick a status code.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureValidation
	FailureNotFound
	FailureConflict
	FailureInternal
	FailureUnavailable
)

// Response is the envelope every operation returns
type Response struct {
	Success   bool           `json:"success"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data"`
	RequestID string         `json:"request_id"`

	Failure FailureKind `json:"-"`
}

// FailureKindOf maps an error to its failure class
func FailureKindOf(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrValidation):
		return FailureValidation
	case errors.Is(err, ErrStudentNotFound):
		return FailureNotFound
	case errors.Is(err, ErrStudentConflict):
		return FailureConflict
	default:
		return FailureInternal
	}
}
