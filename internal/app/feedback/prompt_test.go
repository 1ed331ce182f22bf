package feedback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		name       string
		transcript string
	}{
		{name: "plain sentence", transcript: "I think that, um, education is important."},
		{name: "empty transcript", transcript: ""},
		{name: "multiline with quotes", transcript: "He said \"no\".\nThen 'yes' {maybe}"},
		{name: "unicode", transcript: "Cześć, to jest test 🎤"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompt := BuildPrompt(tt.transcript)

			assert.Contains(t, prompt, `"analysis"`)
			assert.Contains(t, prompt, `"score"`)
			assert.Contains(t, prompt, `"tips"`)
			assert.True(t, strings.HasSuffix(prompt, tt.transcript), "transcript must be appended verbatim at the end")
			assert.Contains(t, prompt, "```json")
		})
	}
}

func TestBuildPrompt_Deterministic(t *testing.T) {
	assert.Equal(t, BuildPrompt("same input"), BuildPrompt("same input"))
}

func TestBuildPrompt_ExampleIsValidFeedback(t *testing.T) {
	// The example shown to the model must itself pass extraction.
	fb, err := ExtractFeedback(promptHeader)
	assert.NoError(t, err)
	if assert.NotNil(t, fb) {
		assert.Equal(t, float64(85), fb.Score)
		assert.Len(t, fb.Tips, 2)
	}
}
