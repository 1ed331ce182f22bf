package whisper

import (
	"fmt"

	openai2 "github.com/Lorak9904/RhetorAI/internal/app/api/openai"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func init() {
	provider.RegisterTranscriber("openai", createOpenAITranscriber)
}

// createOpenAITranscriber creates an OpenAI Whisper transcriber from settings
func createOpenAITranscriber(settings provider.Settings) (provider.Transcriber, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("openai transcriber requires an api key")
	}

	client := openai2.NewClient(settings.APIKey, settings.BaseURL, settings.Timeout)
	return NewRemoteTranscriber(client, settings.Model, settings.String("language", "")), nil
}
