package feedback

import "strings"

const fence = "```"

// promptHeader asks for exactly the three keys, shows one well-typed example and
// forbids anything outside the fenced block. Single-quoted strings are
// forbidden too, so the extractor's quote repair is a fallback rather than the
// normal path.
var promptHeader = strings.Join([]string{
	"Analyze the following text and return a JSON object with exactly these keys:",
	`- "analysis": a short summary of the quality of the text (string).`,
	`- "score": a number between 1 and 100 evaluating the text quality.`,
	`- "tips": a list of improvement suggestions (array of strings).`,
	"",
	"Use double quotes for every key and string value. Never use single quotes as string delimiters and do not leave trailing commas.",
	"Wrap the response in a single JSON block inside triple backticks, like this:",
	"",
	fence + "json",
	"{",
	`  "analysis": "The answer is clear but loses focus halfway through.",`,
	`  "score": 85,`,
	`  "tips": ["Open with your main point.", "Cut filler words such as um and like."]`,
	"}",
	fence,
	"",
	"**DO NOT** add explanations, comments, or any text outside this JSON block.",
	"",
	"Text:",
	"",
}, "\n")

// BuildPrompt returns the instruction prompt for transcript. The transcript is
// appended verbatim at the end; an empty transcript is forwarded as-is.
func BuildPrompt(transcript string) string {
	var b strings.Builder
	b.Grow(len(promptHeader) + len(transcript))
	b.WriteString(promptHeader)
	b.WriteString(transcript)
	return b.String()
}
