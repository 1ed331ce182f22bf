package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Lorak9904/RhetorAI/internal/api/v1/dto"
	"github.com/Lorak9904/RhetorAI/internal/app/metrics"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
)

// MockServices contains all mock services for testing
type MockServices struct {
	FeedbackService *MockFeedbackService
	SpeechService   *MockSpeechService
	StatsService    *MockStatsService
	ProviderService *MockProviderService
}

// NewMockServices creates a new instance of mock services
func NewMockServices(t *testing.T) *MockServices {
	return &MockServices{
		FeedbackService: NewMockFeedbackService(t),
		SpeechService:   NewMockSpeechService(t),
		StatsService:    NewMockStatsService(t),
		ProviderService: NewMockProviderService(t),
	}
}

// AssertExpectations checks every mock in the set
func (s *MockServices) AssertExpectations(t *testing.T) {
	s.FeedbackService.AssertExpectations(t)
	s.SpeechService.AssertExpectations(t)
	s.StatsService.AssertExpectations(t)
	s.ProviderService.AssertExpectations(t)
}

// MockFeedbackService is a mock implementation of FeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func NewMockFeedbackService(t *testing.T) *MockFeedbackService {
	m := &MockFeedbackService{}
	m.Test(t)
	return m
}

func (m *MockFeedbackService) Analyze(ctx context.Context, transcript string) (*pipeline.Result, error) {
	args := m.Called(ctx, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

func (m *MockFeedbackService) AnalyzeAudio(ctx context.Context, filename string, audio []byte) (*pipeline.Result, error) {
	args := m.Called(ctx, filename, audio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

// MockSpeechService is a mock implementation of SpeechService
type MockSpeechService struct {
	mock.Mock
}

func NewMockSpeechService(t *testing.T) *MockSpeechService {
	m := &MockSpeechService{}
	m.Test(t)
	return m
}

func (m *MockSpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockStatsService is a mock implementation of StatsService
type MockStatsService struct {
	mock.Mock
}

func NewMockStatsService(t *testing.T) *MockStatsService {
	m := &MockStatsService{}
	m.Test(t)
	return m
}

func (m *MockStatsService) Overall() metrics.OverallStats {
	args := m.Called()
	return args.Get(0).(metrics.OverallStats)
}

// MockProviderService is a mock implementation of ProviderService
type MockProviderService struct {
	mock.Mock
}

func NewMockProviderService(t *testing.T) *MockProviderService {
	m := &MockProviderService{}
	m.Test(t)
	return m
}

func (m *MockProviderService) ListProviders(ctx context.Context) (*dto.ProvidersResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ProvidersResponse), args.Error(1)
}
