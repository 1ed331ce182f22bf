package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/feedback"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation         ErrorKind = "validation"
	KindNotFound           ErrorKind = "not_found"
	KindUnauthorized       ErrorKind = "unauthorized"
	KindInternal           ErrorKind = "internal"
	KindServiceUnavailable ErrorKind = "service_unavailable"
	KindBadRequest         ErrorKind = "bad_request"
	KindBadGateway         ErrorKind = "bad_gateway"
	KindGatewayTimeout     ErrorKind = "gateway_timeout"
	KindUnsupportedMedia   ErrorKind = "unsupported_media"
	KindTooLarge           ErrorKind = "too_large"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	Code      string            `json:"code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindServiceUnavailable:
		return http.StatusServiceUnavailable
	case KindBadGateway:
		return http.StatusBadGateway
	case KindGatewayTimeout:
		return http.StatusGatewayTimeout
	case KindUnsupportedMedia:
		return http.StatusUnsupportedMediaType
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewServiceUnavailableError creates a service unavailable error
func NewServiceUnavailableError(message string) *APIError {
	return &APIError{
		Kind:    KindServiceUnavailable,
		Message: message,
	}
}

// NewUnsupportedMediaError creates an unsupported media type error
func NewUnsupportedMediaError(message string) *APIError {
	return &APIError{
		Kind:    KindUnsupportedMedia,
		Message: message,
	}
}

// NewTooLargeError creates a payload too large error
func NewTooLargeError(limitMB int) *APIError {
	return &APIError{
		Kind:    KindTooLarge,
		Message: fmt.Sprintf("upload exceeds %d MB", limitMB),
	}
}

// FromPipelineError maps errors returned by the feedback pipeline onto API
// errors. Unknown errors come back as internal errors without their text.
func FromPipelineError(err error) *APIError {
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr
	}

	if xerr, ok := feedback.AsExtractionError(err); ok {
		return &APIError{
			Kind:    KindBadGateway,
			Message: "model reply unusable",
			Details: map[string]string{"reason": string(xerr.Kind), "error": xerr.Error()},
			Code:    string(xerr.Kind),
		}
	}

	var terr *provider.TranscriptionError
	if stderrors.As(err, &terr) {
		return upstreamError("transcription failed", terr.Provider, terr.Code, terr.Retryable)
	}

	var gerr *provider.GenerationError
	if stderrors.As(err, &gerr) {
		return upstreamError("feedback generation failed", gerr.Provider, gerr.Code, gerr.Retryable)
	}

	var serr *provider.SynthesisError
	if stderrors.As(err, &serr) {
		return upstreamError("speech synthesis failed", serr.Provider, serr.Code, serr.Retryable)
	}

	switch {
	case stderrors.Is(err, apperrors.ErrUnsupportedFormat):
		return NewUnsupportedMediaError(err.Error())
	case stderrors.Is(err, apperrors.ErrEmptyAudio), stderrors.Is(err, apperrors.ErrEmptyTranscript):
		return NewBadRequestError(err.Error())
	case stderrors.Is(err, apperrors.ErrProviderNotFound):
		return NewServiceUnavailableError(err.Error())
	case stderrors.Is(err, context.DeadlineExceeded):
		return &APIError{Kind: KindGatewayTimeout, Message: "upstream request timed out", Code: provider.CodeTimeout}
	case apperrors.IsValidationError(err):
		return NewBadRequestError(err.Error())
	}

	return NewInternalError("Internal server error")
}

func upstreamError(message, providerName, code string, retryable bool) *APIError {
	apiErr := &APIError{
		Kind:    KindBadGateway,
		Message: message,
		Details: map[string]string{"provider": providerName, "retryable": fmt.Sprint(retryable)},
		Code:    code,
	}

	switch code {
	case provider.CodeRateLimitExceeded:
		apiErr.Kind = KindServiceUnavailable
	case provider.CodeTimeout:
		apiErr.Kind = KindGatewayTimeout
	}
	return apiErr
}
