package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a semantic classification shared across transport layers.
type ErrorCode string

const (
	ErrCodeNotFound       ErrorCode = "NOT_FOUND"
	ErrCodeInvalid        ErrorCode = "INVALID"
	ErrCodeConnection     ErrorCode = "CONNECTION"
	ErrCodePartialFailure ErrorCode = "PARTIAL_FAILURE"
	ErrCodeInternal       ErrorCode = "INTERNAL"
)

// Class returns the numeric error class carried by every error response.
func (c ErrorCode) Class() int {
	switch c {
	case ErrCodeInvalid:
		return 1400
	case ErrCodeNotFound:
		return 1404
	case ErrCodeConnection:
		return 1503
	case ErrCodePartialFailure:
		return 1207
	default:
		return 1000
	}
}

// Error represents a domain-level error.
type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain errors.
var (
	ErrDocumentNotFound = NewError(ErrCodeNotFound, "document not found")
	ErrNoDocuments      = NewError(ErrCodeNotFound, "no documents found")
	ErrInvalidPayload   = NewError(ErrCodeInvalid, "invalid payload")
)

// NotFoundID builds a not-found error naming the offending identifier.
func NotFoundID(id string) *Error {
	return NewError(ErrCodeNotFound, fmt.Sprintf("document %s not found", id))
}

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	var pErr *PartialFailure
	if errors.As(err, &pErr) {
		return code == ErrCodePartialFailure
	}
	return false
}

// PartialFailure reports a multi-document insert that failed partway through.
// Inserted holds the ids created before the failure, RolledBack whether the
// compensating deletes all succeeded. Err is the original insert failure and
// is what Unwrap exposes; a rollback failure never masks it.
type PartialFailure struct {
	FailedIndex int
	Inserted    []string
	RolledBack  bool
	Err         error
}

func (e *PartialFailure) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "insert failed at document %d: %v", e.FailedIndex, e.Err)
	if len(e.Inserted) == 0 {
		return b.String()
	}
	if e.RolledBack {
		fmt.Fprintf(&b, " (%d prior inserts rolled back)", len(e.Inserted))
	} else {
		fmt.Fprintf(&b, " (rollback incomplete, ids may remain: %s)", strings.Join(e.Inserted, ", "))
	}
	return b.String()
}

func (e *PartialFailure) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
