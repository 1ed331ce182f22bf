// Package feedback turns a transcript into an instruction prompt and turns the
// free-form reply of a text-generation model back into a validated Feedback.
//
// Both halves are pure: BuildPrompt never fails, and ExtractFeedback either
// returns a Feedback whose fields are all present and type-valid or an
// *ExtractionError describing why the reply could not be used. Model output is
// untrusted input and is only ever handed to a strict JSON decoder.
package feedback

// Score bounds, inclusive.
const (
	MinScore = 1
	MaxScore = 100
)

// Required keys of the JSON object requested from the model, in reporting order.
const (
	FieldAnalysis = "analysis"
	FieldScore    = "score"
	FieldTips     = "tips"
)

var requiredFields = []string{FieldAnalysis, FieldScore, FieldTips}

// Feedback is the structured result of analysing a transcript.
//
// A Feedback is only produced by a successful extraction; every call returns a
// fresh value that shares no memory with the reply it was parsed from.
type Feedback struct {
	Analysis string   `json:"analysis"`
	Score    float64  `json:"score"`
	Tips     []string `json:"tips"`
}
