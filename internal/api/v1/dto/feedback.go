package dto

import (
	"strings"

	"github.com/Lorak9904/RhetorAI/internal/api/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/analysis"
	"github.com/Lorak9904/RhetorAI/internal/app/pipeline"
)

// ChatRequest carries a typed answer to be scored
type ChatRequest struct {
	Text string `json:"text" binding:"required,max=20000"`
}

// Validate performs domain-specific validation
func (r *ChatRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.NewValidationError("Invalid chat request", map[string]string{"text": "must not be blank"})
	}
	return nil
}

// SpeechRequest carries text to be read aloud
type SpeechRequest struct {
	Text string `json:"text" binding:"required,max=5000"`
}

// Validate performs domain-specific validation
func (r *SpeechRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return errors.NewValidationError("Invalid speech request", map[string]string{"text": "must not be blank"})
	}
	return nil
}

// FeedbackResponse is the scored answer returned by /chat and /audio
type FeedbackResponse struct {
	Filename   string               `json:"filename,omitempty"`
	Analysis   string               `json:"analysis"`
	Score      float64              `json:"score"`
	Tips       []string             `json:"tips"`
	Transcript string               `json:"transcript,omitempty"`
	Attempts   int                  `json:"attempts,omitempty"`
	Disfluency *analysis.Disfluency `json:"disfluency,omitempty"`
}

// NewFeedbackResponse flattens a pipeline result for the wire
func NewFeedbackResponse(result *pipeline.Result) FeedbackResponse {
	resp := FeedbackResponse{
		Filename:   result.Filename,
		Attempts:   result.Attempts,
		Disfluency: result.Disfluency,
		Tips:       []string{},
	}
	if result.Filename != "" {
		resp.Transcript = result.Transcript
	}
	if fb := result.Feedback; fb != nil {
		resp.Analysis = fb.Analysis
		resp.Score = fb.Score
		resp.Tips = fb.Tips
	}
	return resp
}
