package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	openai2 "github.com/Lorak9904/RhetorAI/internal/app/api/openai"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// ChatGenerator sends a prompt as a single user message to a chat-completions
// endpoint. It serves both OpenAI and Mistral, which share the wire format.
type ChatGenerator struct {
	client      *openai.Client
	name        string
	model       string
	temperature float32
}

// NewChatGenerator creates a generator named name that uses model on client.
func NewChatGenerator(client *openai.Client, name, model string, temperature float32) *ChatGenerator {
	return &ChatGenerator{
		client:      client,
		name:        name,
		model:       model,
		temperature: temperature,
	}
}

// Generate returns the content of the first choice, untouched.
func (g *ChatGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	request := openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: g.temperature,
	}

	resp, err := g.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return "", g.handleAPIError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", &provider.GenerationError{
			Code:      provider.CodeEmptyResponse,
			Message:   "model returned no content",
			Provider:  g.name,
			Retryable: true,
		}
	}

	return resp.Choices[0].Message.Content, nil
}

func (g *ChatGenerator) handleAPIError(err error) error {
	if openai2.IsTimeout(err) {
		return &provider.GenerationError{
			Code:      provider.CodeTimeout,
			Message:   "chat completion timed out",
			Provider:  g.name,
			Retryable: true,
			Cause:     err,
		}
	}

	if status, message, ok := openai2.ErrorStatus(err); ok {
		code, retryable := provider.ClassifyStatus(status)
		return &provider.GenerationError{
			Code:      code,
			Message:   fmt.Sprintf("HTTP %d: %s", status, message),
			Provider:  g.name,
			Retryable: retryable,
			Cause:     err,
		}
	}

	return &provider.GenerationError{
		Code:      provider.CodeNetworkError,
		Message:   err.Error(),
		Provider:  g.name,
		Retryable: true,
		Cause:     err,
	}
}

// GetProviderInfo returns metadata about the chat provider
func (g *ChatGenerator) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             g.name,
		DisplayName:      displayName(g.name),
		Kind:             provider.KindGenerator,
		Type:             provider.ProviderTypeRemote,
		DefaultModel:     g.model,
		RequiresInternet: true,
		RequiresAPIKey:   true,
	}
}

func displayName(name string) string {
	switch name {
	case "openai":
		return "OpenAI Chat Completions"
	case "mistral":
		return "Mistral Chat"
	default:
		return name
	}
}
