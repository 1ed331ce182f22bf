package provider

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// AudioFormat defines supported audio formats
type AudioFormat string

const (
	FormatWAV  AudioFormat = "wav"
	FormatMP3  AudioFormat = "mp3"
	FormatM4A  AudioFormat = "m4a"
	FormatFLAC AudioFormat = "flac"
	FormatOGG  AudioFormat = "ogg"
	FormatWEBM AudioFormat = "webm"
	FormatMP4  AudioFormat = "mp4"
	FormatMPEG AudioFormat = "mpeg"
)

// ProviderType defines where a provider runs
type ProviderType string

const (
	ProviderTypeLocal  ProviderType = "local"
	ProviderTypeRemote ProviderType = "remote"
)

// Kind is the capability a provider offers
type Kind string

const (
	KindTranscriber Kind = "transcriber"
	KindGenerator   Kind = "generator"
	KindSynthesizer Kind = "synthesizer"
)

// TranscriptionResult is the text produced by a transcriber plus whatever timing
// information the provider returned.
type TranscriptionResult struct {
	Text     string              `json:"text"`
	Language string              `json:"language,omitempty"`
	Duration time.Duration       `json:"duration,omitempty"`
	Words    []TranscriptionWord `json:"words,omitempty"`

	ModelUsed      string        `json:"model_used,omitempty"`
	ProcessingTime time.Duration `json:"processing_time,omitempty"`
}

// TranscriptionWord represents a single word with timing information
type TranscriptionWord struct {
	Word  string  `json:"word"`
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
}

// ProviderInfo contains metadata about a provider
type ProviderInfo struct {
	Name        string       `json:"name"`
	DisplayName string       `json:"display_name"`
	Kind        Kind         `json:"kind"`
	Type        ProviderType `json:"type"`

	DefaultModel     string        `json:"default_model,omitempty"`
	SupportedFormats []AudioFormat `json:"supported_formats,omitempty"`
	MaxFileSizeMB    int           `json:"max_file_size_mb,omitempty"` // 0 means no limit

	RequiresInternet bool `json:"requires_internet"`
	RequiresAPIKey   bool `json:"requires_api_key"`
}

// Error codes shared by all providers
const (
	CodeInvalidInput         = "invalid_input"
	CodeAuthenticationFailed = "authentication_failed"
	CodeRateLimitExceeded    = "rate_limit_exceeded"
	CodeFileTooLarge         = "file_too_large"
	CodeInvalidFile          = "invalid_file"
	CodeNetworkError         = "network_error"
	CodeTimeout              = "timeout"
	CodeAPIError             = "api_error"
	CodeEmptyResponse        = "empty_response"
	CodeResponseParseError   = "response_parse_error"
)

// TranscriptionError represents a failed speech-to-text call
type TranscriptionError struct {
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Provider    string   `json:"provider"`
	Retryable   bool     `json:"retryable"`
	Suggestions []string `json:"suggestions,omitempty"`
	Cause       error    `json:"-"`
}

func (e *TranscriptionError) Error() string {
	return fmt.Sprintf("%s transcription failed (%s): %s", e.Provider, e.Code, e.Message)
}

func (e *TranscriptionError) Unwrap() error {
	return e.Cause
}

// GenerationError represents a failed text-generation call
type GenerationError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Cause     error  `json:"-"`
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("%s generation failed (%s): %s", e.Provider, e.Code, e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// SynthesisError represents a failed text-to-speech call
type SynthesisError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Provider  string `json:"provider"`
	Retryable bool   `json:"retryable"`
	Cause     error  `json:"-"`
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("%s synthesis failed (%s): %s", e.Provider, e.Code, e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// ClassifyStatus maps an upstream HTTP status to an error code and whether the
// call is worth retrying.
func ClassifyStatus(status int) (code string, retryable bool) {
	switch {
	case status == 401 || status == 403:
		return CodeAuthenticationFailed, false
	case status == 429:
		return CodeRateLimitExceeded, true
	case status == 413:
		return CodeFileTooLarge, false
	case status == 400 || status == 415 || status == 422:
		return CodeInvalidFile, false
	case status == 408 || status == 504:
		return CodeTimeout, true
	case status >= 500:
		return CodeAPIError, true
	default:
		return CodeAPIError, false
	}
}

// SupportedAudioFormats lists every format accepted for upload
func SupportedAudioFormats() []AudioFormat {
	return []AudioFormat{FormatWAV, FormatMP3, FormatM4A, FormatFLAC, FormatOGG, FormatWEBM, FormatMP4, FormatMPEG}
}

// IsValidAudioFormat checks if the given format is supported
func IsValidAudioFormat(format string) bool {
	want := AudioFormat(strings.ToLower(format))
	for _, f := range SupportedAudioFormats() {
		if f == want {
			return true
		}
	}
	return false
}

// GetAudioFormatFromFilename extracts audio format from filename
func GetAudioFormatFromFilename(filename string) AudioFormat {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if !IsValidAudioFormat(ext) {
		return ""
	}
	return AudioFormat(ext)
}
