package elevenlabs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

const (
	DefaultVoiceID         = "EXAVITQu4vr4xnSDxMaL"
	DefaultTTSModel        = "eleven_multilingual_v2"
	DefaultStability       = 0.5
	DefaultSimilarityBoost = 0.5
)

// VoiceSettings tunes the synthesized voice
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// TTSProvider implements provider.Synthesizer over /text-to-speech/{voice_id}
type TTSProvider struct {
	config  Config
	voiceID string
	voice   VoiceSettings
	client  *http.Client
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

// NewTTSProvider creates a text-to-speech client for one voice
func NewTTSProvider(config Config, voiceID string, voice VoiceSettings) *TTSProvider {
	config = config.withDefaults(DefaultTTSModel)
	if voiceID == "" {
		voiceID = DefaultVoiceID
	}
	return &TTSProvider{
		config:  config,
		voiceID: voiceID,
		voice:   voice,
		client:  &http.Client{Timeout: config.Timeout},
	}
}

// Synthesize returns MPEG audio of text read by the configured voice
func (el *TTSProvider) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, el.newError(provider.CodeInvalidInput, "text is empty", false, nil)
	}

	body, err := json.Marshal(ttsRequest{Text: text, ModelID: el.config.Model, VoiceSettings: el.voice})
	if err != nil {
		return nil, el.newError(provider.CodeInvalidInput, err.Error(), false, err)
	}

	endpoint := fmt.Sprintf("%s/text-to-speech/%s", el.config.BaseURL, url.PathEscape(el.voiceID))
	audio, err := do(ctx, el.client, el.config, http.MethodPost, endpoint, "application/json", "audio/mpeg", body)
	if err != nil {
		code, message, retryable := classify(err)
		return nil, el.newError(code, message, retryable, err)
	}
	if len(audio) == 0 {
		return nil, el.newError(provider.CodeEmptyResponse, "no audio returned", true, nil)
	}

	return audio, nil
}

func (el *TTSProvider) newError(code, message string, retryable bool, cause error) *provider.SynthesisError {
	return &provider.SynthesisError{
		Code:      code,
		Message:   message,
		Provider:  "elevenlabs",
		Retryable: retryable,
		Cause:     cause,
	}
}

// GetProviderInfo returns metadata about the ElevenLabs TTS provider
func (el *TTSProvider) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             "elevenlabs",
		DisplayName:      "ElevenLabs Text-to-Speech",
		Kind:             provider.KindSynthesizer,
		Type:             provider.ProviderTypeRemote,
		DefaultModel:     el.config.Model,
		RequiresInternet: true,
		RequiresAPIKey:   true,
	}
}
