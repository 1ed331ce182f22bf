package whisper

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/sashabaranov/go-openai"

	openai2 "github.com/Lorak9904/RhetorAI/internal/app/api/openai"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// RemoteTranscriber implements remote transcription using the OpenAI API.
type RemoteTranscriber struct {
	client   *openai.Client
	model    string
	language string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, model, language string) *RemoteTranscriber {
	if model == "" {
		model = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: model, language: language}
}

// Transcribe uploads the audio and asks for a verbose transcript with word timings.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, filename string, audio []byte) (*provider.TranscriptionResult, error) {
	if len(audio) == 0 {
		return nil, &provider.TranscriptionError{
			Code:     provider.CodeInvalidInput,
			Message:  "audio is empty",
			Provider: "openai",
		}
	}

	startTime := time.Now()
	req := openai.AudioRequest{
		Model:                  rt.model,
		FilePath:               filename,
		Reader:                 bytes.NewReader(audio),
		Language:               rt.language,
		Format:                 openai.AudioResponseFormatVerboseJSON,
		TimestampGranularities: []openai.TranscriptionTimestampGranularity{openai.TranscriptionTimestampGranularityWord},
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, rt.handleAPIError(err)
	}

	result := &provider.TranscriptionResult{
		Text:           resp.Text,
		Language:       resp.Language,
		Duration:       time.Duration(resp.Duration * float64(time.Second)),
		ModelUsed:      rt.model,
		ProcessingTime: time.Since(startTime),
	}
	for _, w := range resp.Words {
		result.Words = append(result.Words, provider.TranscriptionWord{Word: w.Word, Start: w.Start, End: w.End})
	}

	return result, nil
}

// handleAPIError converts OpenAI API errors to TranscriptionError
func (rt *RemoteTranscriber) handleAPIError(err error) error {
	if openai2.IsTimeout(err) {
		return &provider.TranscriptionError{
			Code:      provider.CodeTimeout,
			Message:   "transcription request timed out",
			Provider:  "openai",
			Retryable: true,
			Cause:     err,
		}
	}

	status, message, ok := openai2.ErrorStatus(err)
	if !ok {
		return &provider.TranscriptionError{
			Code:      provider.CodeNetworkError,
			Message:   fmt.Sprintf("transcription failed: %v", err),
			Provider:  "openai",
			Retryable: true,
			Cause:     err,
		}
	}

	code, retryable := provider.ClassifyStatus(status)
	terr := &provider.TranscriptionError{
		Code:      code,
		Message:   fmt.Sprintf("HTTP %d: %s", status, message),
		Provider:  "openai",
		Retryable: retryable,
		Cause:     err,
	}

	switch code {
	case provider.CodeAuthenticationFailed:
		terr.Suggestions = []string{"Check your OPENAI_API_KEY environment variable"}
	case provider.CodeRateLimitExceeded:
		terr.Suggestions = []string{"Wait a moment and try again"}
	case provider.CodeFileTooLarge:
		terr.Suggestions = []string{"Record a shorter answer", "Lower the bitrate before uploading"}
	case provider.CodeInvalidFile:
		terr.Suggestions = []string{"Check file format", "Try converting to mp3"}
	}

	return terr
}

// GetProviderInfo returns metadata about the OpenAI provider
func (rt *RemoteTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:         "openai",
		DisplayName:  "OpenAI Whisper API",
		Kind:         provider.KindTranscriber,
		Type:         provider.ProviderTypeRemote,
		DefaultModel: rt.model,
		SupportedFormats: []provider.AudioFormat{
			provider.FormatMP3, provider.FormatMP4, provider.FormatMPEG,
			provider.FormatM4A, provider.FormatWAV, provider.FormatWEBM,
		},
		MaxFileSizeMB:    25,
		RequiresInternet: true,
		RequiresAPIKey:   true,
	}
}
