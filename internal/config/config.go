package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
)

// Config is the full application configuration
type Config struct {
	Server      ServerConfig   `yaml:"server"`
	Generator   ProviderConfig `yaml:"generator"`
	Transcriber ProviderConfig `yaml:"transcriber"`
	Speech      ProviderConfig `yaml:"speech"`
	Pipeline    PipelineConfig `yaml:"pipeline"`
	Batch       BatchConfig    `yaml:"batch"`
	Log         LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            string `yaml:"port"`
	Environment     string `yaml:"environment"`
	ReadTimeoutSec  int    `yaml:"read_timeout_sec,omitempty"`
	WriteTimeoutSec int    `yaml:"write_timeout_sec,omitempty"`
	IdleTimeoutSec  int    `yaml:"idle_timeout_sec,omitempty"`
	MaxUploadMB     int    `yaml:"max_upload_mb,omitempty"`
}

// ProviderConfig selects and configures one provider
type ProviderConfig struct {
	Type       string                 `yaml:"type"`
	Enabled    bool                   `yaml:"enabled"`
	APIKey     string                 `yaml:"api_key,omitempty"`
	BaseURL    string                 `yaml:"base_url,omitempty"`
	Model      string                 `yaml:"model,omitempty"`
	TimeoutSec int                    `yaml:"timeout_sec,omitempty"`
	Settings   map[string]interface{} `yaml:"settings,omitempty"`
}

// PipelineConfig tunes the feedback pipeline
type PipelineConfig struct {
	MaxAttempts          int    `yaml:"max_attempts"`
	GenerateTimeoutSec   int    `yaml:"generate_timeout_sec,omitempty"`
	TranscribeTimeoutSec int    `yaml:"transcribe_timeout_sec,omitempty"`
	SynthesizeTimeoutSec int    `yaml:"synthesize_timeout_sec,omitempty"`
	ConvertWebM          bool   `yaml:"convert_webm"`
	FFmpegPath           string `yaml:"ffmpeg_path,omitempty"`
	FFprobePath          string `yaml:"ffprobe_path,omitempty"`
}

// BatchConfig tunes directory analysis
type BatchConfig struct {
	Parallel int `yaml:"parallel"`
}

// LogConfig configures zap
type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            "8000",
			Environment:     "development",
			ReadTimeoutSec:  30,
			WriteTimeoutSec: 180,
			IdleTimeoutSec:  120,
			MaxUploadMB:     25,
		},
		Generator: ProviderConfig{
			Type:       "mistral",
			Enabled:    true,
			APIKey:     "${MISTRAL_API_KEY}",
			Model:      "mistral-tiny",
			TimeoutSec: 60,
		},
		Transcriber: ProviderConfig{
			Type:       "openai",
			Enabled:    true,
			APIKey:     "${OPENAI_API_KEY}",
			Model:      "whisper-1",
			TimeoutSec: 120,
		},
		Speech: ProviderConfig{
			Type:       "elevenlabs",
			Enabled:    false,
			APIKey:     "${ELEVENLABS_API_KEY}",
			TimeoutSec: 60,
		},
		Pipeline: PipelineConfig{
			MaxAttempts:          1,
			GenerateTimeoutSec:   60,
			TranscribeTimeoutSec: 120,
			SynthesizeTimeoutSec: 60,
			ConvertWebM:          false,
			FFmpegPath:           "ffmpeg",
			FFprobePath:          "ffprobe",
		},
		Batch: BatchConfig{Parallel: 2},
		Log:   LogConfig{Level: "info"},
	}
}

// DefaultConfigPath returns ~/.rhetor/config.yaml if it exists, then
// ./config/rhetor.yaml. An empty string means no file was found.
func DefaultConfigPath() string {
	candidates := []string{filepath.Join("config", "rhetor.yaml")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append([]string{filepath.Join(home, ".rhetor", "config.yaml")}, candidates...)
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load reads the YAML file at path over the defaults. An empty path returns
// the defaults. ${VAR} references are expanded and PORT and RHETOR_ENV
// override the server settings.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		path = os.ExpandEnv(path)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrMissingConfig, "failed to read config file %s: %v", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, apperrors.Wrapf(apperrors.ErrInvalidConfig, "failed to parse YAML: %v", err)
		}
	}

	cfg.expandEnvironmentVariables()
	cfg.applyEnvOverrides()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg as YAML, creating parent directories
func Save(cfg *Config, path string) error {
	path = os.ExpandEnv(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func (c *Config) expandEnvironmentVariables() {
	for _, p := range []*ProviderConfig{&c.Generator, &c.Transcriber, &c.Speech} {
		p.APIKey = os.ExpandEnv(p.APIKey)
		p.BaseURL = os.ExpandEnv(p.BaseURL)
		for key, value := range p.Settings {
			if s, ok := value.(string); ok {
				p.Settings[key] = os.ExpandEnv(s)
			}
		}
	}
	c.Pipeline.FFmpegPath = os.ExpandEnv(c.Pipeline.FFmpegPath)
	c.Pipeline.FFprobePath = os.ExpandEnv(c.Pipeline.FFprobePath)
}

func (c *Config) applyEnvOverrides() {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		c.Server.Port = port
	}
	if env := strings.TrimSpace(os.Getenv("RHETOR_ENV")); env != "" {
		c.Server.Environment = env
	}
}

func (c *Config) setDefaults() {
	def := Default()
	if c.Server.Port == "" {
		c.Server.Port = def.Server.Port
	}
	if c.Server.MaxUploadMB == 0 {
		c.Server.MaxUploadMB = def.Server.MaxUploadMB
	}
	if c.Pipeline.MaxAttempts == 0 {
		c.Pipeline.MaxAttempts = 1
	}
	if c.Batch.Parallel == 0 {
		c.Batch.Parallel = def.Batch.Parallel
	}
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	for _, p := range []*ProviderConfig{&c.Generator, &c.Transcriber, &c.Speech} {
		if p.TimeoutSec == 0 {
			p.TimeoutSec = 60
		}
	}
}

// Validate checks ranges and the selected provider types
func (c *Config) Validate() error {
	if err := ValidatePort(c.Server.Port, "server"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if c.Server.MaxUploadMB < 1 || c.Server.MaxUploadMB > 500 {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.OutOfRange("server.max_upload_mb", 1, 500).Error())
	}
	if err := ValidateRetries(c.Pipeline.MaxAttempts-1, "pipeline"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}
	if err := ValidateConcurrency(c.Batch.Parallel, "batch"); err != nil {
		return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
	}

	checks := []struct {
		name string
		kind provider.Kind
		cfg  ProviderConfig
	}{
		{"generator", provider.KindGenerator, c.Generator},
		{"transcriber", provider.KindTranscriber, c.Transcriber},
		{"speech", provider.KindSynthesizer, c.Speech},
	}
	for _, check := range checks {
		if !check.cfg.Enabled {
			continue
		}
		if check.cfg.Type == "" {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, apperrors.RequiredField(check.name+".type").Error())
		}
		if err := ValidateTimeout(check.cfg.Timeout(), check.name); err != nil {
			return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
		}
		if check.cfg.BaseURL != "" {
			if err := ValidateURL(check.cfg.BaseURL, check.name); err != nil {
				return apperrors.Wrap(apperrors.ErrInvalidConfig, err.Error())
			}
		}
		if registered := provider.ListRegisteredProviders(check.kind); len(registered) > 0 && !lo.Contains(registered, check.cfg.Type) {
			return apperrors.Wrapf(apperrors.ErrInvalidConfig, "%s type %q is not one of %s",
				check.name, check.cfg.Type, strings.Join(registered, ", "))
		}
	}
	return nil
}

// Timeout returns the provider timeout as a duration
func (p ProviderConfig) Timeout() time.Duration {
	return time.Duration(p.TimeoutSec) * time.Second
}

// ProviderSettings converts p for the provider registry
func (p ProviderConfig) ProviderSettings() provider.Settings {
	options := make(map[string]interface{}, len(p.Settings))
	for k, v := range p.Settings {
		options[k] = v
	}
	return provider.Settings{
		APIKey:  p.APIKey,
		BaseURL: p.BaseURL,
		Model:   p.Model,
		Timeout: p.Timeout(),
		Options: options,
	}
}

// PipelineOptions converts the pipeline section. The converter is left for
// the caller to attach.
func (c *Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		MaxAttempts:       c.Pipeline.MaxAttempts,
		GenerateTimeout:   time.Duration(c.Pipeline.GenerateTimeoutSec) * time.Second,
		TranscribeTimeout: time.Duration(c.Pipeline.TranscribeTimeoutSec) * time.Second,
		SynthesizeTimeout: time.Duration(c.Pipeline.SynthesizeTimeoutSec) * time.Second,
	}
}

// Addr returns host:port for the HTTP server
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// Duration converts a seconds field, falling back to def when unset
func Duration(sec int, def time.Duration) time.Duration {
	if sec <= 0 {
		return def
	}
	return time.Duration(sec) * time.Second
}
