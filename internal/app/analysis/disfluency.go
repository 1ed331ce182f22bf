// Package analysis derives delivery statistics from a transcript: filler
// words, immediate repetitions and speaking rate.
package analysis

import (
	"strings"
	"time"
	"unicode"

	"github.com/samber/lo"

	"github.com/Lorak9904/RhetorAI/internal/app/api/provider"
)

// FillerWords are counted wherever they occur. Multi-word entries match
// consecutive tokens.
var FillerWords = []string{"uh", "um", "like", "you know", "so", "actually"}

// Disfluency summarizes how fluent a spoken answer was
type Disfluency struct {
	WordCount   int            `json:"word_count"`
	FillerCount int            `json:"filler_count"`
	Fillers     map[string]int `json:"fillers,omitempty"`
	Repeated    []string       `json:"repeated_words"`
	Duration    time.Duration  `json:"duration,omitempty"`
	// SpeechRate is words per second; zero when the duration is unknown.
	SpeechRate float64 `json:"speech_rate"`
}

// WordsPerMinute converts SpeechRate for display
func (d Disfluency) WordsPerMinute() float64 {
	return d.SpeechRate * 60
}

// FromTranscription analyzes a transcriber result, preferring its word list
// and falling back to splitting the text on whitespace.
func FromTranscription(result *provider.TranscriptionResult) Disfluency {
	if result == nil {
		return Analyze(nil, 0)
	}

	words := lo.Map(result.Words, func(w provider.TranscriptionWord, _ int) string { return w.Word })
	if len(words) == 0 {
		words = strings.Fields(result.Text)
	}

	duration := result.Duration
	if duration == 0 && len(result.Words) > 0 {
		duration = time.Duration(result.Words[len(result.Words)-1].End * float64(time.Second))
	}

	return Analyze(words, duration)
}

// Analyze counts fillers and stutters in words spoken over duration
func Analyze(words []string, duration time.Duration) Disfluency {
	tokens := lo.Filter(lo.Map(words, func(w string, _ int) string { return normalizeToken(w) }),
		func(w string, _ int) bool { return w != "" })

	d := Disfluency{
		WordCount: len(tokens),
		Fillers:   map[string]int{},
		Repeated:  []string{},
		Duration:  duration,
	}

	single := lo.Filter(FillerWords, func(f string, _ int) bool { return !strings.Contains(f, " ") })
	multi := lo.Without(FillerWords, single...)

	for i, tok := range tokens {
		if lo.Contains(single, tok) {
			d.Fillers[tok]++
		}
		if i > 0 {
			if pair := tokens[i-1] + " " + tok; lo.Contains(multi, pair) {
				d.Fillers[pair]++
			}
			if tokens[i-1] == tok {
				d.Repeated = append(d.Repeated, tok)
			}
		}
	}

	d.FillerCount = lo.Sum(lo.Values(d.Fillers))
	if duration > 0 {
		d.SpeechRate = float64(len(tokens)) / duration.Seconds()
	}

	return d
}

func normalizeToken(w string) string {
	return strings.ToLower(strings.TrimFunc(w, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	}))
}
