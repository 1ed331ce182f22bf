// Package errors is the domain error vocabulary shared by the pipeline,
// providers and config. Sentinels compare by message, so a wrapped copy
// still matches with errors.Is.
package errors

import (
	stderrors "errors"
	"fmt"
)

var (
	ErrMissingConfig = New("configuration is required")
	ErrInvalidConfig = New("invalid configuration")

	ErrProviderNotFound = New("provider not found")

	ErrUnsupportedFormat = New("unsupported audio format")
	ErrEmptyAudio        = New("audio is empty")
	ErrConversionFailed  = New("audio conversion failed")

	ErrEmptyTranscript = New("transcript is empty")

	ErrFileReadFailed  = New("file read failed")
	ErrFileWriteFailed = New("file write failed")
)

// Error is a message with an optional cause. field is set for caller input
// problems.
type Error struct {
	message string
	field   string
	cause   error
}

// New creates a new error
func New(message string) *Error {
	return &Error{message: message}
}

// Newf creates a new formatted error
func Newf(format string, args ...interface{}) *Error {
	return &Error{message: fmt.Sprintf(format, args...)}
}

// Wrap adds message in front of err. A nil err stays nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{message: message, cause: err}
}

// Wrapf is Wrap with a format string
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{message: fmt.Sprintf(format, args...), cause: err}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.message == t.message
}

// Field names the input that failed validation, "" for other errors
func (e *Error) Field() string {
	return e.field
}

func fieldError(field, format string, args ...interface{}) error {
	return &Error{message: fmt.Sprintf(format, args...), field: field}
}

// RequiredField reports a missing input
func RequiredField(field string) error {
	return fieldError(field, "%s is required", field)
}

// InvalidField reports an input with an unusable value
func InvalidField(field, reason string) error {
	return fieldError(field, "%s is invalid: %s", field, reason)
}

// OutOfRange reports a numeric input outside [min, max]
func OutOfRange(field string, min, max interface{}) error {
	return fieldError(field, "%s out of range (must be between %v and %v)", field, min, max)
}

// Unsupported wraps ErrUnsupportedFormat with the offending file name
func Unsupported(name string) error {
	return Wrapf(ErrUnsupportedFormat, "cannot process %s", name)
}

// IsValidationError reports whether err, or anything it wraps, came from one
// of the field helpers or is an empty-input sentinel
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if stderrors.Is(err, ErrEmptyTranscript) || stderrors.Is(err, ErrEmptyAudio) {
		return true
	}

	for e := err; e != nil; e = stderrors.Unwrap(e) {
		if appErr, ok := e.(*Error); ok && appErr.field != "" {
			return true
		}
	}
	return false
}
