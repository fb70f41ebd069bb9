package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies an error so transport layers can map it to a response
// without string matching.
type Kind string

const (
	KindNotFound       Kind = "NOT_FOUND"
	KindInvalidRequest Kind = "INVALID_REQUEST"
	KindConflict       Kind = "CONFLICT"
	KindConfig         Kind = "CONFIG"
)

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound builds a NOT_FOUND error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidRequest builds an INVALID_REQUEST error.
func InvalidRequest(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// Conflict builds a CONFLICT error.
func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

// Config builds a CONFIG error for fatal misconfiguration.
func Config(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConfig, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind to an underlying error.
func Wrap(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind of an error, or "" for unclassified errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

func IsNotFound(err error) bool       { return KindOf(err) == KindNotFound }
func IsInvalidRequest(err error) bool { return KindOf(err) == KindInvalidRequest }
func IsConflict(err error) bool       { return KindOf(err) == KindConflict }
func IsConfig(err error) bool         { return KindOf(err) == KindConfig }
