package errors

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/feedback"
)

func TestFromPipelineError(t *testing.T) {
	_, extractionErr := feedback.ExtractFeedback(`{"analysis": "ok", "score": 150, "tips": []}`)
	require.Error(t, extractionErr)

	tests := []struct {
		name   string
		err    error
		kind   ErrorKind
		status int
		code   string
	}{
		{
			name:   "extraction error",
			err:    extractionErr,
			kind:   KindBadGateway,
			status: http.StatusBadGateway,
			code:   string(feedback.KindScoreOutOfRange),
		},
		{
			name:   "transcription error",
			err:    &provider.TranscriptionError{Code: provider.CodeInvalidFile, Provider: "openai"},
			kind:   KindBadGateway,
			status: http.StatusBadGateway,
			code:   provider.CodeInvalidFile,
		},
		{
			name:   "rate limited generation",
			err:    fmt.Errorf("wrapped: %w", &provider.GenerationError{Code: provider.CodeRateLimitExceeded, Provider: "mistral", Retryable: true}),
			kind:   KindServiceUnavailable,
			status: http.StatusServiceUnavailable,
			code:   provider.CodeRateLimitExceeded,
		},
		{
			name:   "generation timeout",
			err:    &provider.GenerationError{Code: provider.CodeTimeout, Provider: "openai"},
			kind:   KindGatewayTimeout,
			status: http.StatusGatewayTimeout,
			code:   provider.CodeTimeout,
		},
		{
			name:   "synthesis error",
			err:    &provider.SynthesisError{Code: provider.CodeAuthenticationFailed, Provider: "elevenlabs"},
			kind:   KindBadGateway,
			status: http.StatusBadGateway,
			code:   provider.CodeAuthenticationFailed,
		},
		{
			name:   "unsupported format",
			err:    apperrors.Unsupported("notes.txt"),
			kind:   KindUnsupportedMedia,
			status: http.StatusUnsupportedMediaType,
		},
		{
			name:   "empty audio",
			err:    apperrors.ErrEmptyAudio,
			kind:   KindBadRequest,
			status: http.StatusBadRequest,
		},
		{
			name:   "missing provider",
			err:    apperrors.Wrap(apperrors.ErrProviderNotFound, "no synthesizer configured"),
			kind:   KindServiceUnavailable,
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "bare deadline",
			err:    context.DeadlineExceeded,
			kind:   KindGatewayTimeout,
			status: http.StatusGatewayTimeout,
			code:   provider.CodeTimeout,
		},
		{
			name:   "unknown",
			err:    fmt.Errorf("boom"),
			kind:   KindInternal,
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := FromPipelineError(tt.err)
			require.NotNil(t, apiErr)
			assert.Equal(t, tt.kind, apiErr.Kind)
			assert.Equal(t, tt.status, apiErr.HTTPStatus())
			assert.Equal(t, tt.code, apiErr.Code)
		})
	}
}

func TestFromPipelineError_ExtractionDetails(t *testing.T) {
	_, err := feedback.ExtractFeedback("no json here at all")
	apiErr := FromPipelineError(err)

	assert.Equal(t, "model reply unusable", apiErr.Message)
	assert.Equal(t, string(feedback.KindNoJSONFound), apiErr.Details["reason"])
}

func TestFromPipelineError_Passthrough(t *testing.T) {
	assert.Nil(t, FromPipelineError(nil))

	orig := NewTooLargeError(25)
	assert.Same(t, orig, FromPipelineError(orig))
	assert.Equal(t, http.StatusRequestEntityTooLarge, orig.HTTPStatus())
	assert.Equal(t, "upload exceeds 25 MB", orig.Message)

	assert.Equal(t, "Internal server error", FromPipelineError(fmt.Errorf("secret detail")).Message)
}
