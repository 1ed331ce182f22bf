package chat

import (
	"fmt"

	"github.com/sashabaranov/go-openai"

	openai2 "github.com/Lorak9904/RhetorAI/internal/app/api/openai"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

const (
	DefaultOpenAIModel  = openai.GPT3Dot5Turbo
	DefaultMistralModel = "mistral-tiny"
)

func init() {
	provider.RegisterGenerator("openai", func(settings provider.Settings) (provider.Generator, error) {
		return createChatGenerator("openai", openai2.DefaultBaseURL, DefaultOpenAIModel, settings)
	})
	provider.RegisterGenerator("mistral", func(settings provider.Settings) (provider.Generator, error) {
		return createChatGenerator("mistral", openai2.MistralBaseURL, DefaultMistralModel, settings)
	})
}

func createChatGenerator(name, baseURL, model string, settings provider.Settings) (provider.Generator, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("%s generator requires an api key", name)
	}
	if settings.BaseURL != "" {
		baseURL = settings.BaseURL
	}
	if settings.Model != "" {
		model = settings.Model
	}

	client := openai2.NewClient(settings.APIKey, baseURL, settings.Timeout)
	temperature := float32(settings.Float("temperature", 0))

	return NewChatGenerator(client, name, model, temperature), nil
}
