package provider

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Settings is the provider-independent configuration handed to a creator.
type Settings struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration

	// Provider-specific settings
	Options map[string]interface{}
}

// String returns a string option or def when it is absent or of another type
func (s Settings) String(key, def string) string {
	if v, ok := s.Options[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Float returns a numeric option or def
func (s Settings) Float(key string, def float64) float64 {
	switch v := s.Options[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	}
	return def
}

type (
	TranscriberCreator func(settings Settings) (Transcriber, error)
	GeneratorCreator   func(settings Settings) (Generator, error)
	SynthesizerCreator func(settings Settings) (Synthesizer, error)
)

type creatorRegistry[T any] struct {
	kind     Kind
	mu       sync.RWMutex
	creators map[string]func(Settings) (T, error)
}

func newCreatorRegistry[T any](kind Kind) *creatorRegistry[T] {
	return &creatorRegistry[T]{kind: kind, creators: make(map[string]func(Settings) (T, error))}
}

func (r *creatorRegistry[T]) register(name string, creator func(Settings) (T, error)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creators[name] = creator
}

func (r *creatorRegistry[T]) create(name string, settings Settings) (T, error) {
	r.mu.RLock()
	creator, ok := r.creators[name]
	r.mu.RUnlock()

	if !ok {
		var zero T
		return zero, fmt.Errorf("%s provider type %s not registered", r.kind, name)
	}
	return creator(settings)
}

func (r *creatorRegistry[T]) names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.creators))
	for name := range r.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var (
	transcribers = newCreatorRegistry[Transcriber](KindTranscriber)
	generators   = newCreatorRegistry[Generator](KindGenerator)
	synthesizers = newCreatorRegistry[Synthesizer](KindSynthesizer)
)

// RegisterTranscriber registers a transcriber creator function
func RegisterTranscriber(providerType string, creator TranscriberCreator) {
	transcribers.register(providerType, creator)
}

// RegisterGenerator registers a generator creator function
func RegisterGenerator(providerType string, creator GeneratorCreator) {
	generators.register(providerType, creator)
}

// RegisterSynthesizer registers a synthesizer creator function
func RegisterSynthesizer(providerType string, creator SynthesizerCreator) {
	synthesizers.register(providerType, creator)
}

// NewTranscriber creates a registered transcriber
func NewTranscriber(providerType string, settings Settings) (Transcriber, error) {
	return transcribers.create(providerType, settings)
}

// NewGenerator creates a registered generator
func NewGenerator(providerType string, settings Settings) (Generator, error) {
	return generators.create(providerType, settings)
}

// NewSynthesizer creates a registered synthesizer
func NewSynthesizer(providerType string, settings Settings) (Synthesizer, error) {
	return synthesizers.create(providerType, settings)
}

// ListRegisteredProviders returns the registered provider types of a kind, sorted
func ListRegisteredProviders(kind Kind) []string {
	switch kind {
	case KindTranscriber:
		return transcribers.names()
	case KindGenerator:
		return generators.names()
	case KindSynthesizer:
		return synthesizers.names()
	default:
		return nil
	}
}
