// Package gemini adapts the Google Gen AI SDK to provider.Generator.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

const DefaultModel = "gemini-2.0-flash"

// Generator calls generateContent on a Gemini model
type Generator struct {
	client      *genai.Client
	model       string
	temperature *float32
}

// NewGenerator creates a Gemini generator from provider settings
func NewGenerator(ctx context.Context, settings provider.Settings) (*Generator, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("gemini generator requires an api key")
	}

	config := &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if settings.BaseURL != "" {
		config.HTTPOptions.BaseURL = settings.BaseURL
	}
	if settings.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: settings.Timeout}
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := settings.Model
	if model == "" {
		model = DefaultModel
	}

	g := &Generator{client: client, model: model}
	if _, ok := settings.Options["temperature"]; ok {
		g.temperature = genai.Ptr(float32(settings.Float("temperature", 0)))
	}
	return g, nil
}

// Generate returns the text of the first candidate
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{Temperature: g.temperature}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		return "", g.handleAPIError(err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", &provider.GenerationError{
			Code:      provider.CodeEmptyResponse,
			Message:   "model returned no content",
			Provider:  "gemini",
			Retryable: true,
		}
	}
	return text, nil
}

func (g *Generator) handleAPIError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		code, retryable := provider.ClassifyStatus(apiErr.Code)
		return &provider.GenerationError{
			Code:      code,
			Message:   fmt.Sprintf("HTTP %d: %s", apiErr.Code, apiErr.Message),
			Provider:  "gemini",
			Retryable: retryable,
			Cause:     err,
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.GenerationError{
			Code:      provider.CodeTimeout,
			Message:   "gemini request timed out",
			Provider:  "gemini",
			Retryable: true,
			Cause:     err,
		}
	}

	return &provider.GenerationError{
		Code:      provider.CodeNetworkError,
		Message:   err.Error(),
		Provider:  "gemini",
		Retryable: true,
		Cause:     err,
	}
}

// GetProviderInfo returns metadata about the Gemini provider
func (g *Generator) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{
		Name:             "gemini",
		DisplayName:      "Google Gemini",
		Kind:             provider.KindGenerator,
		Type:             provider.ProviderTypeRemote,
		DefaultModel:     g.model,
		RequiresInternet: true,
		RequiresAPIKey:   true,
	}
}
