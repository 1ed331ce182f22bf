package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	maxTimeout     = 30 * time.Minute
	maxConcurrency = 32
	maxRetries     = 10
)

// apiKeyRule is the shape a provider's keys are known to have. The checks only
// catch pasting mistakes; the provider remains the judge.
type apiKeyRule struct {
	prefix string
	minLen int
}

var apiKeyRules = map[string]apiKeyRule{
	"OpenAI":     {prefix: "sk-", minLen: 20},
	"Gemini":     {prefix: "AIza", minLen: 30},
	"Mistral":    {minLen: 24},
	"ElevenLabs": {minLen: 32},
}

// ValidateTimeout accepts (0, 30m]
func ValidateTimeout(timeout time.Duration, name string) error {
	switch {
	case timeout <= 0:
		return fmt.Errorf("%s timeout must be positive", name)
	case timeout > maxTimeout:
		return fmt.Errorf("%s timeout too large (max %s)", name, maxTimeout)
	}
	return nil
}

// ValidateConcurrency bounds the number of analyses run at once
func ValidateConcurrency(concurrency int, name string) error {
	return checkCount(name, "concurrency", concurrency, 1, maxConcurrency)
}

// ValidateRetries bounds extra attempts after the first model reply
func ValidateRetries(retries int, name string) error {
	return checkCount(name, "retries", retries, 0, maxRetries)
}

func checkCount(name, what string, v, min, max int) error {
	switch {
	case v < min && min == 0:
		return fmt.Errorf("%s %s cannot be negative", name, what)
	case v < min:
		return fmt.Errorf("%s %s must be at least %d", name, what, min)
	case v > max:
		return fmt.Errorf("%s %s too high (max %d)", name, what, max)
	}
	return nil
}

// ValidateAPIKey rejects keys that cannot belong to provider. Unknown
// providers only need a non-empty key.
func ValidateAPIKey(apiKey, provider string) error {
	if apiKey == "" {
		return fmt.Errorf("%s API key is required", provider)
	}

	rule, ok := apiKeyRules[provider]
	if !ok {
		return nil
	}
	if rule.prefix != "" && !strings.HasPrefix(apiKey, rule.prefix) {
		return fmt.Errorf("invalid %s API key format: must start with '%s'", provider, rule.prefix)
	}
	if len(apiKey) < rule.minLen {
		return fmt.Errorf("invalid %s API key format: too short", provider)
	}
	return nil
}

// ValidateURL requires an absolute http(s) URL
func ValidateURL(url, name string) error {
	if url == "" {
		return fmt.Errorf("%s URL is required", name)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return fmt.Errorf("%s URL must start with http:// or https://", name)
	}
	return nil
}

// ValidatePort accepts a decimal port; "0" lets the OS choose
func ValidatePort(port, name string) error {
	if port == "" {
		return fmt.Errorf("%s port is required", name)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fmt.Errorf("%s port invalid: %q", name, port)
	}
	return nil
}
