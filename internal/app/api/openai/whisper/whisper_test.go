package whisper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	openai2 "github.com/Lorak9904/RhetorAI/internal/app/api/openai"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// TestRemoteTranscriber_Transcribe tests the RemoteTranscriber implementation
func TestRemoteTranscriber_Transcribe(t *testing.T) {
	tests := []struct {
		name         string
		mockResponse string
		mockStatus   int
		expectedText string
		expectedCode string
		words        int
	}{
		{
			name:         "verbose transcription with words",
			mockResponse: `{"task":"transcribe","language":"english","duration":2.5,"text":"Um I think so","words":[{"word":"Um","start":0,"end":0.4},{"word":"I","start":0.5,"end":0.6},{"word":"think","start":0.6,"end":0.9},{"word":"so","start":0.9,"end":1.2}]}`,
			mockStatus:   http.StatusOK,
			expectedText: "Um I think so",
			words:        4,
		},
		{
			name:         "special characters",
			mockResponse: `{"text": "Hello, 世界! This is a test with émojis 🎵"}`,
			mockStatus:   http.StatusOK,
			expectedText: "Hello, 世界! This is a test with émojis 🎵",
		},
		{
			name:         "unauthorized",
			mockResponse: `{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`,
			mockStatus:   http.StatusUnauthorized,
			expectedCode: provider.CodeAuthenticationFailed,
		},
		{
			name:         "rate limit",
			mockResponse: `{"error": {"message": "Rate limit exceeded", "type": "rate_limit_error"}}`,
			mockStatus:   http.StatusTooManyRequests,
			expectedCode: provider.CodeRateLimitExceeded,
		},
		{
			name:         "file too large",
			mockResponse: `{"error": {"message": "Maximum content size limit exceeded", "type": "invalid_request_error"}}`,
			mockStatus:   http.StatusRequestEntityTooLarge,
			expectedCode: provider.CodeFileTooLarge,
		},
		{
			name:         "server error",
			mockResponse: `{"error": {"message": "Internal server error", "type": "server_error"}}`,
			mockStatus:   http.StatusInternalServerError,
			expectedCode: provider.CodeAPIError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
				assert.True(t, strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data"))

				require.NoError(t, r.ParseMultipartForm(32<<20))
				assert.Equal(t, "whisper-1", r.FormValue("model"))
				assert.Equal(t, "verbose_json", r.FormValue("response_format"))

				file, header, err := r.FormFile("file")
				require.NoError(t, err)
				defer file.Close()
				assert.Equal(t, "answer.mp3", header.Filename)
				content, _ := io.ReadAll(file)
				assert.Equal(t, "fake mp3 bytes", string(content))

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.mockStatus)
				_, _ = w.Write([]byte(tt.mockResponse))
			}))
			defer server.Close()

			transcriber := NewRemoteTranscriber(openai2.NewClient("test-key", server.URL+"/v1", 0), "", "")
			result, err := transcriber.Transcribe(context.Background(), "answer.mp3", []byte("fake mp3 bytes"))

			if tt.expectedCode != "" {
				var terr *provider.TranscriptionError
				require.ErrorAs(t, err, &terr)
				assert.Equal(t, tt.expectedCode, terr.Code)
				assert.Equal(t, "openai", terr.Provider)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expectedText, result.Text)
			assert.Len(t, result.Words, tt.words)
			assert.Equal(t, "whisper-1", result.ModelUsed)
			if tt.words > 0 {
				assert.Equal(t, 2500*time.Millisecond, result.Duration)
				assert.Equal(t, "think", result.Words[2].Word)
			}
		})
	}
}

func TestRemoteTranscriber_EmptyAudio(t *testing.T) {
	transcriber := NewRemoteTranscriber(openai2.NewClient("test-key", "http://127.0.0.1:1", 0), "", "")

	_, err := transcriber.Transcribe(context.Background(), "answer.mp3", nil)
	var terr *provider.TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, provider.CodeInvalidInput, terr.Code)
}

func TestRemoteTranscriber_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hijacker, ok := w.(http.Hijacker)
		if ok {
			conn, _, _ := hijacker.Hijack()
			conn.Close()
		}
	}))
	defer server.Close()

	transcriber := NewRemoteTranscriber(openai2.NewClient("test-key", server.URL+"/v1", 0), "", "")
	_, err := transcriber.Transcribe(context.Background(), "answer.mp3", []byte("audio"))

	var terr *provider.TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, provider.CodeNetworkError, terr.Code)
	assert.True(t, terr.Retryable)
}

func TestCreateOpenAITranscriber(t *testing.T) {
	_, err := provider.NewTranscriber("openai", provider.Settings{})
	assert.Error(t, err)

	tr, err := provider.NewTranscriber("openai", provider.Settings{APIKey: "sk-test"})
	require.NoError(t, err)
	info := tr.GetProviderInfo()
	assert.Equal(t, provider.KindTranscriber, info.Kind)
	assert.Contains(t, info.SupportedFormats, provider.FormatMP3)
}
