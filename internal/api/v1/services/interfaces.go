package services

import (
	"context"

	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
)

// FeedbackService defines the interface for scoring answers
type FeedbackService interface {
	Analyze(ctx context.Context, transcript string) (*pipeline.Result, error)
	AnalyzeAudio(ctx context.Context, filename string, audio []byte) (*pipeline.Result, error)
}

// SpeechService defines the interface for text-to-speech
type SpeechService interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// StatsService defines the interface for provider statistics
type StatsService interface {
	Overall() metrics.OverallStats
}

// ProviderService defines the interface for provider listings
type ProviderService interface {
	ListProviders(ctx context.Context) (*dto.ProvidersResponse, error)
}

var (
	_ FeedbackService = (*pipeline.Service)(nil)
	_ SpeechService   = (*pipeline.Service)(nil)
	_ StatsService    = (*metrics.Metrics)(nil)
)
