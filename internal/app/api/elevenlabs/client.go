package elevenlabs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

const (
	DefaultBaseURL = "https://api.elevenlabs.io/v1"
	defaultTimeout = 120 * time.Second
	userAgent      = "rhetor/1.0"
)

// Config holds settings shared by the speech-to-text and text-to-speech clients
type Config struct {
	APIKey  string        `yaml:"api_key"`
	BaseURL string        `yaml:"base_url"`
	Model   string        `yaml:"model"`
	Timeout time.Duration `yaml:"timeout"`
}

func (c Config) withDefaults(model string) Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.Timeout == 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// statusError is a non-2xx answer from the API.
type statusError struct {
	status int
	body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected HTTP status %d: %s", e.status, e.body)
}

// do sends one authenticated request and returns the body of a 2xx answer.
func do(ctx context.Context, client *http.Client, cfg Config, method, url, contentType, accept string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("xi-api-key", cfg.APIKey)
	req.Header.Set("User-Agent", userAgent)
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &statusError{status: resp.StatusCode, body: string(data)}
	}
	return data, nil
}

// classify turns a transport or status failure into a code, message and retry hint.
func classify(err error) (code, message string, retryable bool) {
	var se *statusError
	if errors.As(err, &se) {
		code, retryable = provider.ClassifyStatus(se.status)
		return code, se.Error(), retryable
	}

	var netErr interface{ Timeout() bool }
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return provider.CodeTimeout, "request to ElevenLabs timed out", true
	}

	return provider.CodeNetworkError, fmt.Sprintf("failed to call ElevenLabs API: %v", err), true
}
