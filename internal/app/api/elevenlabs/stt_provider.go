package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

const (
	DefaultSTTModel = "scribe_v1"
	maxUploadBytes  = 25 * 1024 * 1024
)

// STTProvider implements provider.Transcriber for the ElevenLabs Speech-to-Text API
type STTProvider struct {
	config   Config
	language string
	client   *http.Client
}

// sttResponse represents the response from ElevenLabs STT API
type sttResponse struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
	Words        []word `json:"words"`
}

// word is one timed token; spacing tokens carry only whitespace
type word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Type  string  `json:"type"`
}

// NewSTTProvider creates a new ElevenLabs STT provider
func NewSTTProvider(config Config, language string) *STTProvider {
	config = config.withDefaults(DefaultSTTModel)
	return &STTProvider{
		config:   config,
		language: language,
		client:   &http.Client{Timeout: config.Timeout},
	}
}

// Transcribe uploads audio to /speech-to-text and returns the transcript
func (el *STTProvider) Transcribe(ctx context.Context, filename string, audio []byte) (*provider.TranscriptionResult, error) {
	startTime := time.Now()

	if len(audio) == 0 {
		return nil, el.newError(provider.CodeInvalidInput, "audio is empty", false, nil)
	}
	if len(audio) > maxUploadBytes {
		err := el.newError(provider.CodeFileTooLarge, "file size exceeds 25MB limit", false, nil)
		err.Suggestions = []string{"Record a shorter answer", "Split into smaller chunks"}
		return nil, err
	}

	body, contentType, err := el.buildForm(filename, audio)
	if err != nil {
		return nil, el.newError(provider.CodeInvalidInput, err.Error(), false, err)
	}

	data, err := do(ctx, el.client, el.config, http.MethodPost, el.config.BaseURL+"/speech-to-text", contentType, "application/json", body)
	if err != nil {
		code, message, retryable := classify(err)
		terr := el.newError(code, message, retryable, err)
		if code == provider.CodeAuthenticationFailed {
			terr.Suggestions = []string{"Check your ELEVENLABS_API_KEY environment variable"}
		}
		return nil, terr
	}

	var resp sttResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, el.newError(provider.CodeResponseParseError, fmt.Sprintf("failed to parse API response: %v", err), false, err)
	}

	result := &provider.TranscriptionResult{
		Text:           strings.TrimSpace(resp.Text),
		Language:       resp.LanguageCode,
		ModelUsed:      el.config.Model,
		ProcessingTime: time.Since(startTime),
	}
	for _, w := range resp.Words {
		if w.Type != "" && w.Type != "word" {
			continue
		}
		result.Words = append(result.Words, provider.TranscriptionWord{Word: w.Text, Start: w.Start, End: w.End})
	}
	if n := len(result.Words); n > 0 {
		result.Duration = time.Duration(result.Words[n-1].End * float64(time.Second))
	}

	return result, nil
}

func (el *STTProvider) buildForm(filename string, audio []byte) ([]byte, string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, "", fmt.Errorf("failed to copy audio data: %w", err)
	}

	if err := writer.WriteField("model_id", el.config.Model); err != nil {
		return nil, "", fmt.Errorf("failed to add model field: %w", err)
	}
	if el.language != "" {
		if err := writer.WriteField("language_code", el.language); err != nil {
			return nil, "", fmt.Errorf("failed to add language field: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return body.Bytes(), writer.FormDataContentType(), nil
}

func (el *STTProvider) newError(code, message string, retryable bool, cause error) *provider.TranscriptionError {
	return &provider.TranscriptionError{
		Code:      code,
		Message:   message,
		Provider:  "elevenlabs",
		Retryable: retryable,
		Cause:     cause,
	}
}

// GetProviderInfo returns metadata about the ElevenLabs STT provider
func (el *STTProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:         "elevenlabs",
		DisplayName:  "ElevenLabs Speech-to-Text",
		Kind:         provider.KindTranscriber,
		Type:         provider.ProviderTypeRemote,
		DefaultModel: el.config.Model,
		SupportedFormats: []provider.AudioFormat{
			provider.FormatMP3, provider.FormatWAV, provider.FormatFLAC,
			provider.FormatM4A, provider.FormatOGG, provider.FormatWEBM,
		},
		MaxFileSizeMB:    25,
		RequiresInternet: true,
		RequiresAPIKey:   true,
	}
}
