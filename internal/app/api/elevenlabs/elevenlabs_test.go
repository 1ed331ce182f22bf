package elevenlabs

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func TestSTTProvider_Transcribe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech-to-text", r.URL.Path)
		assert.Equal(t, "xi-test", r.Header.Get("xi-api-key"))

		require.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, DefaultSTTModel, r.FormValue("model_id"))
		assert.Equal(t, "en", r.FormValue("language_code"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answer.mp3", header.Filename)
		content, _ := io.ReadAll(file)
		assert.Equal(t, "mp3", string(content))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"language_code": "en",
			"text": " So I think ",
			"words": [
				{"text": "So", "start": 0.1, "end": 0.3, "type": "word"},
				{"text": " ", "start": 0.3, "end": 0.4, "type": "spacing"},
				{"text": "I", "start": 0.4, "end": 0.5, "type": "word"},
				{"text": " ", "start": 0.5, "end": 0.6, "type": "spacing"},
				{"text": "think", "start": 0.6, "end": 1.5, "type": "word"}
			]
		}`))
	}))
	defer server.Close()

	stt := NewSTTProvider(Config{APIKey: "xi-test", BaseURL: server.URL + "/v1"}, "en")
	result, err := stt.Transcribe(context.Background(), "/tmp/answer.mp3", []byte("mp3"))
	require.NoError(t, err)

	assert.Equal(t, "So I think", result.Text)
	assert.Equal(t, "en", result.Language)
	require.Len(t, result.Words, 3)
	assert.Equal(t, "think", result.Words[2].Word)
	assert.Equal(t, 1500*time.Millisecond, result.Duration)
	assert.Equal(t, DefaultSTTModel, result.ModelUsed)
}

func TestSTTProvider_HTTPErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      string
		retryable bool
	}{
		{"unauthorized", http.StatusUnauthorized, provider.CodeAuthenticationFailed, false},
		{"rate limited", http.StatusTooManyRequests, provider.CodeRateLimitExceeded, true},
		{"too large", http.StatusRequestEntityTooLarge, provider.CodeFileTooLarge, false},
		{"bad request", http.StatusBadRequest, provider.CodeInvalidFile, false},
		{"server error", http.StatusServiceUnavailable, provider.CodeAPIError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"detail":"nope"}`))
			}))
			defer server.Close()

			stt := NewSTTProvider(Config{APIKey: "k", BaseURL: server.URL}, "")
			_, err := stt.Transcribe(context.Background(), "a.mp3", []byte("x"))

			var terr *provider.TranscriptionError
			require.ErrorAs(t, err, &terr)
			assert.Equal(t, tt.code, terr.Code)
			assert.Equal(t, tt.retryable, terr.Retryable)
			assert.Contains(t, terr.Message, "nope")
		})
	}
}

func TestSTTProvider_InvalidInput(t *testing.T) {
	stt := NewSTTProvider(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"}, "")

	_, err := stt.Transcribe(context.Background(), "a.mp3", nil)
	var terr *provider.TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, provider.CodeInvalidInput, terr.Code)

	_, err = stt.Transcribe(context.Background(), "a.mp3", make([]byte, maxUploadBytes+1))
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, provider.CodeFileTooLarge, terr.Code)
	assert.NotEmpty(t, terr.Suggestions)
}

func TestSTTProvider_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"text": `))
	}))
	defer server.Close()

	stt := NewSTTProvider(Config{APIKey: "k", BaseURL: server.URL}, "")
	_, err := stt.Transcribe(context.Background(), "a.mp3", []byte("x"))

	var terr *provider.TranscriptionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, provider.CodeResponseParseError, terr.Code)
}

func TestTTSProvider_Synthesize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/"+DefaultVoiceID, r.URL.Path)
		assert.Equal(t, "audio/mpeg", r.Header.Get("Accept"))
		assert.Equal(t, "xi-test", r.Header.Get("xi-api-key"))

		var req ttsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Speak slower.", req.Text)
		assert.Equal(t, DefaultTTSModel, req.ModelID)
		assert.Equal(t, 0.5, req.VoiceSettings.Stability)
		assert.Equal(t, 0.5, req.VoiceSettings.SimilarityBoost)

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("ID3fake"))
	}))
	defer server.Close()

	tts := NewTTSProvider(Config{APIKey: "xi-test", BaseURL: server.URL + "/v1"}, "",
		VoiceSettings{Stability: DefaultStability, SimilarityBoost: DefaultSimilarityBoost})

	audio, err := tts.Synthesize(context.Background(), "Speak slower.")
	require.NoError(t, err)
	assert.Equal(t, []byte("ID3fake"), audio)
}

func TestTTSProvider_Errors(t *testing.T) {
	tts := NewTTSProvider(Config{APIKey: "k", BaseURL: "http://127.0.0.1:1"}, "", VoiceSettings{})

	_, err := tts.Synthesize(context.Background(), "   ")
	var serr *provider.SynthesisError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, provider.CodeInvalidInput, serr.Code)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	tts = NewTTSProvider(Config{APIKey: "k", BaseURL: server.URL}, "voice", VoiceSettings{})
	_, err = tts.Synthesize(context.Background(), "hi")
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, provider.CodeAuthenticationFailed, serr.Code)
	assert.False(t, serr.Retryable)
}

func TestRegisteredElevenLabsProviders(t *testing.T) {
	_, err := provider.NewTranscriber("elevenlabs", provider.Settings{})
	assert.Error(t, err)

	stt, err := provider.NewTranscriber("elevenlabs", provider.Settings{APIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, provider.KindTranscriber, stt.GetProviderInfo().Kind)

	tts, err := provider.NewSynthesizer("elevenlabs", provider.Settings{
		APIKey:  "k",
		Options: map[string]interface{}{"voice_id": "custom", "stability": 0.8},
	})
	require.NoError(t, err)
	p := tts.(*TTSProvider)
	assert.Equal(t, "custom", p.voiceID)
	assert.Equal(t, 0.8, p.voice.Stability)
	assert.Equal(t, DefaultSimilarityBoost, p.voice.SimilarityBoost)
}
