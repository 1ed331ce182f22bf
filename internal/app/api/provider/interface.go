package provider

import (
	"context"
)

// Transcriber converts recorded speech to text.
type Transcriber interface {
	// Transcribe sends audio (named filename, whose extension tells the format)
	// and returns the transcript. Failures are *TranscriptionError.
	Transcribe(ctx context.Context, filename string, audio []byte) (*TranscriptionResult, error)

	GetProviderInfo() ProviderInfo
}

// Generator submits a prompt to a text-generation endpoint and returns the raw,
// unparsed reply. Failures are *GenerationError.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)

	GetProviderInfo() ProviderInfo
}

// Synthesizer turns text into encoded speech audio. Failures are *SynthesisError.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)

	GetProviderInfo() ProviderInfo
}
