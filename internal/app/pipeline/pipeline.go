// Package pipeline turns a recorded or typed answer into validated feedback:
// transcribe, prompt, generate, extract.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/app/analysis"
	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
	"github.com/Lorak9904/RhetorAI/internal/app/audio"
	"github.com/Lorak9904/RhetorAI/internal/app/common"
	apperrors "github.com/Lorak9904/RhetorAI/internal/app/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/feedback"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
)

// Options tunes a Service
type Options struct {
	// MaxAttempts bounds how many model replies are requested when extraction
	// fails. Values below 1 mean 1.
	MaxAttempts       int
	GenerateTimeout   time.Duration
	TranscribeTimeout time.Duration
	SynthesizeTimeout time.Duration

	// Converter re-encodes WebM uploads to MP3. Nil sends them unchanged.
	Converter audio.Converter
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		MaxAttempts:       1,
		GenerateTimeout:   60 * time.Second,
		TranscribeTimeout: 120 * time.Second,
		SynthesizeTimeout: 60 * time.Second,
	}
}

// Result is the outcome of one analysis
type Result struct {
	Filename   string               `json:"filename,omitempty"`
	Transcript string               `json:"transcript"`
	Feedback   *feedback.Feedback   `json:"feedback"`
	Attempts   int                  `json:"attempts"`
	Disfluency *analysis.Disfluency `json:"disfluency,omitempty"`
}

// Service runs the feedback pipeline. It is safe for concurrent use as long as
// its providers are.
type Service struct {
	transcriber provider.Transcriber
	generator   provider.Generator
	synthesizer provider.Synthesizer
	extractor   *feedback.Extractor
	metrics     *metrics.Metrics
	logger      *zap.Logger
	opts        Options
}

// NewService assembles a Service. transcriber and synthesizer may be nil when
// only text analysis is needed.
func NewService(
	transcriber provider.Transcriber,
	generator provider.Generator,
	synthesizer provider.Synthesizer,
	extractor *feedback.Extractor,
	m *metrics.Metrics,
	logger *zap.Logger,
	opts Options,
) *Service {
	logger = common.OrNop(logger).Named("pipeline")
	if extractor == nil {
		extractor = feedback.NewExtractor(logger)
	}
	if m == nil {
		m = metrics.New("")
	}
	if opts.MaxAttempts < 1 {
		opts.MaxAttempts = 1
	}

	return &Service{
		transcriber: transcriber,
		generator:   generator,
		synthesizer: synthesizer,
		extractor:   extractor,
		metrics:     m,
		logger:      logger,
		opts:        opts,
	}
}

// Analyze builds the prompt for transcript, asks the generator and extracts
// feedback from the reply. An unusable reply is retried with a fresh
// generation up to MaxAttempts; the last *feedback.ExtractionError is
// returned when every attempt fails.
func (s *Service) Analyze(ctx context.Context, transcript string) (*Result, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, apperrors.ErrEmptyTranscript
	}
	if s.generator == nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderNotFound, "no generator configured")
	}

	prompt := feedback.BuildPrompt(transcript)

	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		reply, err := s.generate(ctx, prompt)
		if err != nil {
			return nil, err
		}

		fb, err := s.extractor.Extract(reply)
		if err == nil {
			s.metrics.RecordExtraction("ok")
			s.metrics.RecordAnalysis(attempt, fb.Score)
			s.logger.Info("Feedback extracted",
				zap.Int("attempt", attempt),
				zap.Float64("score", fb.Score),
				zap.Int("tips", len(fb.Tips)),
			)
			return &Result{Transcript: transcript, Feedback: fb, Attempts: attempt}, nil
		}

		xerr, ok := feedback.AsExtractionError(err)
		if !ok {
			return nil, err
		}
		s.metrics.RecordExtraction(string(xerr.Kind))
		s.logger.Warn("Model reply rejected",
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.opts.MaxAttempts),
			zap.String("kind", string(xerr.Kind)),
			zap.Error(err),
		)
		lastErr = err
	}

	return nil, lastErr
}

// AnalyzeAudio transcribes a recorded answer and analyzes the transcript.
func (s *Service) AnalyzeAudio(ctx context.Context, filename string, data []byte) (*Result, error) {
	if len(data) == 0 {
		return nil, apperrors.ErrEmptyAudio
	}
	if provider.GetAudioFormatFromFilename(filename) == "" {
		return nil, apperrors.Unsupported(filename)
	}
	if s.transcriber == nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderNotFound, "no transcriber configured")
	}

	uploadName, upload := filename, data
	if s.opts.Converter != nil && audio.NeedsConversion(filename) {
		converted, name, err := audio.ConvertBytesToMP3(ctx, s.opts.Converter, filename, data)
		if err != nil {
			return nil, err
		}
		s.logger.Debug("Converted upload", zap.String("from", filename), zap.String("to", name))
		uploadName, upload = name, converted
	}

	transcription, err := s.transcribe(ctx, uploadName, upload)
	if err != nil {
		return nil, err
	}

	result, err := s.Analyze(ctx, transcription.Text)
	if err != nil {
		return nil, err
	}

	d := analysis.FromTranscription(transcription)
	result.Filename = filename
	result.Disfluency = &d
	return result, nil
}

// Synthesize reads text aloud through the configured synthesizer.
func (s *Service) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.synthesizer == nil {
		return nil, apperrors.Wrap(apperrors.ErrProviderNotFound, "no synthesizer configured")
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.RequiredField("text")
	}

	ctx, cancel := withTimeout(ctx, s.opts.SynthesizeTimeout)
	defer cancel()

	name := s.synthesizer.GetProviderInfo().Name
	start := time.Now()
	out, err := s.synthesizer.Synthesize(ctx, text)
	s.record(string(provider.KindSynthesizer), name, start, err)
	return out, err
}

// NarrationText renders feedback as plain sentences for text-to-speech.
func NarrationText(fb *feedback.Feedback) string {
	if fb == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your score is %s out of %d. %s", formatScore(fb.Score), feedback.MaxScore, strings.TrimSpace(fb.Analysis))
	for i, tip := range fb.Tips {
		fmt.Fprintf(&b, " Tip %d: %s", i+1, strings.TrimSpace(tip))
	}
	return b.String()
}

func formatScore(score float64) string {
	if score == float64(int64(score)) {
		return fmt.Sprintf("%d", int64(score))
	}
	return fmt.Sprintf("%.1f", score)
}

func (s *Service) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := withTimeout(ctx, s.opts.GenerateTimeout)
	defer cancel()

	name := s.generator.GetProviderInfo().Name
	start := time.Now()
	reply, err := s.generator.Generate(ctx, prompt)
	s.record(string(provider.KindGenerator), name, start, err)
	if err != nil {
		s.logger.Error("Generation failed", zap.String("provider", name), zap.Error(err))
	}
	return reply, err
}

func (s *Service) transcribe(ctx context.Context, filename string, data []byte) (*provider.TranscriptionResult, error) {
	ctx, cancel := withTimeout(ctx, s.opts.TranscribeTimeout)
	defer cancel()

	name := s.transcriber.GetProviderInfo().Name
	start := time.Now()
	result, err := s.transcriber.Transcribe(ctx, filename, data)
	s.record(string(provider.KindTranscriber), name, start, err)
	if err != nil {
		s.logger.Error("Transcription failed", zap.String("provider", name), zap.String("file", filename), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Transcription completed",
		zap.String("provider", name),
		zap.String("file", filename),
		zap.Int("chars", len(result.Text)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (s *Service) record(kind, name string, start time.Time, err error) {
	elapsed := time.Since(start)
	if err == nil {
		s.metrics.RecordSuccess(kind, name, elapsed)
		return
	}
	s.metrics.RecordFailure(kind, name, errorCode(err), elapsed)
}

func errorCode(err error) string {
	var terr *provider.TranscriptionError
	var gerr *provider.GenerationError
	var serr *provider.SynthesisError
	switch {
	case errors.As(err, &terr):
		return terr.Code
	case errors.As(err, &gerr):
		return gerr.Code
	case errors.As(err, &serr):
		return serr.Code
	case errors.Is(err, context.DeadlineExceeded):
		return provider.CodeTimeout
	default:
		return "unknown"
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
