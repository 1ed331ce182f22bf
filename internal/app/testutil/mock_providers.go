package testutil

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// MockTranscriber is a mock implementation of provider.Transcriber
type MockTranscriber struct {
	mock.Mock
}

func NewMockTranscriber(t *testing.T) *MockTranscriber {
	m := &MockTranscriber{}
	m.Test(t)
	return m
}

func (m *MockTranscriber) Transcribe(ctx context.Context, filename string, audio []byte) (*provider.TranscriptionResult, error) {
	args := m.Called(ctx, filename, audio)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.TranscriptionResult), args.Error(1)
}

func (m *MockTranscriber) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "mock", Kind: provider.KindTranscriber, Type: provider.ProviderTypeLocal}
}

// MockGenerator is a mock implementation of provider.Generator
type MockGenerator struct {
	mock.Mock
}

func NewMockGenerator(t *testing.T) *MockGenerator {
	m := &MockGenerator{}
	m.Test(t)
	return m
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "mock", Kind: provider.KindGenerator, Type: provider.ProviderTypeLocal}
}

// MockSynthesizer is a mock implementation of provider.Synthesizer
type MockSynthesizer struct {
	mock.Mock
}

func NewMockSynthesizer(t *testing.T) *MockSynthesizer {
	m := &MockSynthesizer{}
	m.Test(t)
	return m
}

func (m *MockSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockSynthesizer) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "mock", Kind: provider.KindSynthesizer, Type: provider.ProviderTypeLocal}
}

// ScriptedGenerator returns Replies in order, repeating the last one once
// the script runs out. Prompts records every prompt received.
type ScriptedGenerator struct {
	mu      sync.Mutex
	Replies []string
	Prompts []string
}

func NewScriptedGenerator(replies ...string) *ScriptedGenerator {
	return &ScriptedGenerator{Replies: replies}
}

func (g *ScriptedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	i := len(g.Prompts)
	g.Prompts = append(g.Prompts, prompt)
	if len(g.Replies) == 0 {
		return "", nil
	}
	if i >= len(g.Replies) {
		i = len(g.Replies) - 1
	}
	return g.Replies[i], nil
}

// Calls reports how many prompts were received
func (g *ScriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Prompts)
}

func (g *ScriptedGenerator) GetProviderInfo() provider.ProviderInfo {
	return provider.ProviderInfo{Name: "scripted", Kind: provider.KindGenerator, Type: provider.ProviderTypeLocal}
}
