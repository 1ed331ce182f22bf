package elevenlabs

import (
	"fmt"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func init() {
	provider.RegisterTranscriber("elevenlabs", createSTTProvider)
	provider.RegisterSynthesizer("elevenlabs", createTTSProvider)
}

func configFrom(settings provider.Settings) (Config, error) {
	if settings.APIKey == "" {
		return Config{}, fmt.Errorf("elevenlabs provider requires an api key")
	}
	return Config{
		APIKey:  settings.APIKey,
		BaseURL: settings.BaseURL,
		Model:   settings.Model,
		Timeout: settings.Timeout,
	}, nil
}

func createSTTProvider(settings provider.Settings) (provider.Transcriber, error) {
	config, err := configFrom(settings)
	if err != nil {
		return nil, err
	}
	return NewSTTProvider(config, settings.String("language", "")), nil
}

func createTTSProvider(settings provider.Settings) (provider.Synthesizer, error) {
	config, err := configFrom(settings)
	if err != nil {
		return nil, err
	}
	voice := VoiceSettings{
		Stability:       settings.Float("stability", DefaultStability),
		SimilarityBoost: settings.Float("similarity_boost", DefaultSimilarityBoost),
	}
	return NewTTSProvider(config, settings.String("voice_id", DefaultVoiceID), voice), nil
}
