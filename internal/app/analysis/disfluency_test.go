package analysis

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		duration    time.Duration
		wordCount   int
		fillerCount int
		fillers     map[string]int
		repeated    []string
		rate        float64
	}{
		{
			name:      "clean answer",
			text:      "I led the migration to the new billing system.",
			duration:  3 * time.Second,
			wordCount: 9,
			fillers:   map[string]int{},
			repeated:  []string{},
			rate:      3,
		},
		{
			name:        "single fillers with punctuation and case",
			text:        "Um, I think, like, it went well. So, yes.",
			wordCount:   9,
			fillerCount: 3,
			fillers:     map[string]int{"um": 1, "like": 1, "so": 1},
			repeated:    []string{},
		},
		{
			name:        "multi-word filler",
			text:        "It was, you know, hard. You know?",
			wordCount:   7,
			fillerCount: 2,
			fillers:     map[string]int{"you know": 2},
			repeated:    []string{},
		},
		{
			name:      "stutter",
			text:      "I I think the the the plan works",
			wordCount: 8,
			fillers:   map[string]int{},
			repeated:  []string{"i", "the", "the"},
		},
		{
			name:        "repeated filler counts both ways",
			text:        "um um okay",
			wordCount:   3,
			fillerCount: 2,
			fillers:     map[string]int{"um": 2},
			repeated:    []string{"um"},
		},
		{
			name:     "empty",
			text:     "",
			duration: time.Second,
			fillers:  map[string]int{},
			repeated: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Analyze(strings.Fields(tt.text), tt.duration)
			assert.Equal(t, tt.wordCount, d.WordCount)
			assert.Equal(t, tt.fillerCount, d.FillerCount)
			assert.Equal(t, tt.fillers, d.Fillers)
			assert.Equal(t, tt.repeated, d.Repeated)
			assert.InDelta(t, tt.rate, d.SpeechRate, 1e-9)
		})
	}
}

func TestFromTranscription(t *testing.T) {
	t.Run("prefers word list", func(t *testing.T) {
		d := FromTranscription(&provider.TranscriptionResult{
			Text: "ignored text",
			Words: []provider.TranscriptionWord{
				{Word: "Um", Start: 0, End: 0.5},
				{Word: "yes", Start: 0.5, End: 1},
			},
		})
		assert.Equal(t, 2, d.WordCount)
		assert.Equal(t, 1, d.FillerCount)
		assert.Equal(t, time.Second, d.Duration)
		assert.InDelta(t, 2.0, d.SpeechRate, 1e-9)
		assert.InDelta(t, 120.0, d.WordsPerMinute(), 1e-9)
	})

	t.Run("falls back to text", func(t *testing.T) {
		d := FromTranscription(&provider.TranscriptionResult{Text: "so so what", Duration: 2 * time.Second})
		assert.Equal(t, 3, d.WordCount)
		assert.Equal(t, 2, d.FillerCount)
		assert.Equal(t, []string{"so"}, d.Repeated)
		assert.InDelta(t, 1.5, d.SpeechRate, 1e-9)
	})

	t.Run("nil result", func(t *testing.T) {
		d := FromTranscription(nil)
		assert.Zero(t, d.WordCount)
		assert.Zero(t, d.SpeechRate)
	})
}
