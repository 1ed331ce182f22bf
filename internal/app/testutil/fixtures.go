package testutil

// Model replies in the shapes seen from chat endpoints
const (
	ValidReply = "```json\n" + `{
  "analysis": "Clear structure, but the conclusion trails off.",
  "score": 78,
  "tips": ["Finish with a one-sentence summary.", "Drop the filler word like."]
}` + "\n```"

	SingleQuotedReply = `Sure! Here is the feedback:
{'analysis': 'Confident delivery and good pacing.', 'score': 88, 'tips': ['Pause before key points.',]}`

	NoJSONReply = "I'm sorry, I can't evaluate this transcript."

	MissingScoreReply = `{"analysis": "Good.", "tips": []}`

	OutOfRangeReply = `{"analysis": "Great.", "score": 150, "tips": []}`
)

// SampleTranscript is a short interview answer with some fillers
const SampleTranscript = "Um, so I think my biggest strength is, you know, staying calm under pressure. " +
	"Last year I I led the incident response when our payments service went down."
