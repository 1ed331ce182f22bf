package app

import (
	"time"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/api/server"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	v1routes "github.com/Lorak9904/RhetorAI/internal/api/v1/routes"
	"github.com/Lorak9904/RhetorAI/internal/api/v1/services"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	"github.com/Lorak9904/RhetorAI/internal/app/audio"
	"github.com/Lorak9904/RhetorAI/internal/app/feedback"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
	"github.com/Lorak9904/RhetorAI/internal/config"

	// provider registrations
	_ "github.com/Lorak9904/RhetorAI/internal/app/api/elevenlabs"
	_ "github.com/Lorak9904/RhetorAI/internal/app/api/gemini"
	_ "github.com/Lorak9904/RhetorAI/internal/app/api/openai/chat"
	_ "github.com/Lorak9904/RhetorAI/internal/app/api/openai/whisper"
)

// Version is stamped at build time with -ldflags
var Version = "dev"

// MetricsNamespace prefixes every exported collector
const MetricsNamespace = "rhetor"

// PipelineSet builds a *pipeline.Service from *config.Config
var PipelineSet = wire.NewSet(
	provideGenerator,
	provideTranscriber,
	provideSynthesizer,
	provideExtractor,
	providePipelineOptions,
	pipeline.NewService,
)

// ServerSet builds the HTTP server on top of PipelineSet
var ServerSet = wire.NewSet(
	PipelineSet,
	provideMetrics,
	provideServiceContainer,
	provideServerConfig,
	server.NewServer,
)

func provideMetrics() *metrics.Metrics {
	return metrics.New(MetricsNamespace)
}

// provideGenerator creates the configured answer scorer; it is always required
func provideGenerator(cfg *config.Config) (provider.Generator, error) {
	if err := config.RequireProviderKey(cfg.Generator, "generator"); err != nil {
		return nil, err
	}
	return provider.NewGenerator(cfg.Generator.Type, cfg.Generator.ProviderSettings())
}

// provideTranscriber returns nil when transcription is disabled
func provideTranscriber(cfg *config.Config) (provider.Transcriber, error) {
	if !cfg.Transcriber.Enabled {
		return nil, nil
	}
	if err := config.RequireProviderKey(cfg.Transcriber, "transcriber"); err != nil {
		return nil, err
	}
	return provider.NewTranscriber(cfg.Transcriber.Type, cfg.Transcriber.ProviderSettings())
}

// provideSynthesizer returns nil when speech is disabled
func provideSynthesizer(cfg *config.Config) (provider.Synthesizer, error) {
	if !cfg.Speech.Enabled {
		return nil, nil
	}
	if err := config.RequireProviderKey(cfg.Speech, "speech"); err != nil {
		return nil, err
	}
	return provider.NewSynthesizer(cfg.Speech.Type, cfg.Speech.ProviderSettings())
}

func provideExtractor(logger *zap.Logger) *feedback.Extractor {
	return feedback.NewExtractor(logger)
}

func providePipelineOptions(cfg *config.Config, logger *zap.Logger) pipeline.Options {
	opts := cfg.PipelineOptions()
	if cfg.Pipeline.ConvertWebM {
		opts.Converter = audio.NewFFmpegConverter(cfg.Pipeline.FFmpegPath, cfg.Pipeline.FFprobePath, logger)
	}
	return opts
}

func provideServiceContainer(cfg *config.Config, svc *pipeline.Service, m *metrics.Metrics) *v1routes.ServiceContainer {
	container := &v1routes.ServiceContainer{
		FeedbackService: svc,
		StatsService:    m,
		ProviderService: services.NewProviderService(activeProviders(cfg)),
		MaxUploadMB:     cfg.Server.MaxUploadMB,
	}
	if cfg.Speech.Enabled {
		container.SpeechService = svc
	}
	return container
}

func activeProviders(cfg *config.Config) dto.ActiveProviders {
	active := dto.ActiveProviders{Generator: cfg.Generator.Type}
	if cfg.Transcriber.Enabled {
		active.Transcriber = cfg.Transcriber.Type
	}
	if cfg.Speech.Enabled {
		active.Synthesizer = cfg.Speech.Type
	}
	return active
}

func provideServerConfig(cfg *config.Config) server.Config {
	return server.Config{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  config.Duration(cfg.Server.ReadTimeoutSec, 30*time.Second),
		WriteTimeout: config.Duration(cfg.Server.WriteTimeoutSec, 180*time.Second),
		IdleTimeout:  config.Duration(cfg.Server.IdleTimeoutSec, 120*time.Second),
		Environment:  cfg.Server.Environment,
		Version:      Version,
	}
}
