package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/app/common"
)

// APIKeys holds all API keys loaded from environment
type APIKeys struct {
	OpenAI     string
	Mistral    string
	Gemini     string
	ElevenLabs string
}

// envPaths are tried in order; the first existing file wins
var envPaths = []string{
	".env",
	".env.local",
	"../.env",
	"../../.env",
}

// LoadEnv loads environment variables from the first .env file found. Missing
// files are not an error since the variables may be set system-wide.
func LoadEnv(logger *zap.Logger) error {
	logger = common.OrNop(logger)

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			logger.Debug("Loaded environment variables", zap.String("path", envPath))
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables.
// Unset keys are allowed; malformed ones are rejected.
func GetAPIKeys() (*APIKeys, error) {
	apiKeys := &APIKeys{
		OpenAI:     strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Mistral:    strings.TrimSpace(os.Getenv("MISTRAL_API_KEY")),
		Gemini:     strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		ElevenLabs: strings.TrimSpace(os.Getenv("ELEVENLABS_API_KEY")),
	}

	checks := []struct {
		env, kind, value string
	}{
		{"OPENAI_API_KEY", "OpenAI", apiKeys.OpenAI},
		{"MISTRAL_API_KEY", "Mistral", apiKeys.Mistral},
		{"GEMINI_API_KEY", "Gemini", apiKeys.Gemini},
		{"ELEVENLABS_API_KEY", "ElevenLabs", apiKeys.ElevenLabs},
	}
	for _, c := range checks {
		if c.value == "" {
			continue
		}
		if err := ValidateAPIKey(c.value, c.kind); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", c.env, err)
		}
	}

	return apiKeys, nil
}

// Available lists the providers with a key set
func (k *APIKeys) Available() []string {
	var available []string
	if k.OpenAI != "" {
		available = append(available, "OpenAI")
	}
	if k.Mistral != "" {
		available = append(available, "Mistral")
	}
	if k.Gemini != "" {
		available = append(available, "Gemini")
	}
	if k.ElevenLabs != "" {
		available = append(available, "ElevenLabs")
	}
	return available
}

// RequireProviderKey fails fast when an enabled provider has no API key
func RequireProviderKey(p ProviderConfig, section string) error {
	if !p.Enabled || p.APIKey != "" {
		return nil
	}
	return fmt.Errorf("%s provider %q requires an API key: set %s in the environment or .env file",
		section, p.Type, envVarFor(p.Type))
}

func envVarFor(providerType string) string {
	switch providerType {
	case "openai":
		return "OPENAI_API_KEY"
	case "mistral":
		return "MISTRAL_API_KEY"
	case "gemini":
		return "GEMINI_API_KEY"
	case "elevenlabs":
		return "ELEVENLABS_API_KEY"
	default:
		return strings.ToUpper(providerType) + "_API_KEY"
	}
}

// InitializeConfig loads .env, reads the config file at path and checks the
// API keys. This is the main entry point for configuration loading.
func InitializeConfig(path string, logger *zap.Logger) (*Config, error) {
	logger = common.OrNop(logger)

	if err := LoadEnv(logger); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	apiKeys, err := GetAPIKeys()
	if err != nil {
		return nil, fmt.Errorf("failed to get API keys: %w", err)
	}
	if available := apiKeys.Available(); len(available) > 0 {
		logger.Info("API keys available", zap.Strings("providers", available))
	} else {
		logger.Warn("No API keys configured")
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}
