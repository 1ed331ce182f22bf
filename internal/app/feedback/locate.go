package feedback

import (
	"strings"
)

// locateCandidate finds the text that should hold the JSON object. A fenced
// block wins when one exists; otherwise the whole reply is used. The returned
// candidate starts at the first opening brace (or bracket when there is no
// brace) and runs to the end; trimToValue cuts it once quotes are normalized.
func locateCandidate(reply string) (string, bool) {
	candidate, ok := fencedBlock(reply)
	if !ok {
		candidate = reply
	}

	candidate = strings.TrimSpace(candidate)
	if candidate == "" {
		return "", false
	}

	return valueStart(candidate)
}

type block struct {
	tag      string
	interior string
}

// fencedBlock picks one complete fenced block: the first tagged json (any
// case), else the first containing a brace, else the first one. An opening
// fence without a closing one does not count as a block.
func fencedBlock(reply string) (string, bool) {
	blocks := fencedBlocks(reply)
	if len(blocks) == 0 {
		return "", false
	}

	for _, b := range blocks {
		if strings.EqualFold(b.tag, "json") {
			return b.interior, true
		}
	}
	for _, b := range blocks {
		if strings.Contains(b.interior, "{") {
			return b.interior, true
		}
	}
	return blocks[0].interior, true
}

func fencedBlocks(reply string) []block {
	var blocks []block

	rest := reply
	for {
		open := strings.Index(rest, fence)
		if open < 0 {
			return blocks
		}
		body := rest[open+len(fence):]
		end := closingFence(body)
		if end < 0 {
			return blocks
		}

		tag, interior := splitLanguageTag(body[:end])
		blocks = append(blocks, block{tag: tag, interior: interior})
		rest = body[end+len(fence):]
	}
}

// closingFence returns the index of the first fence in body that is not
// inside a double-quoted string. When every fence appears to be quoted (an
// unbalanced quote in a non-JSON block) the first fence is used.
func closingFence(body string) int {
	first := strings.Index(body, fence)
	if first < 0 {
		return -1
	}

	inString := false
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case inString && c == '\\':
			i++
		case c == '"':
			inString = !inString
		case !inString && strings.HasPrefix(body[i:], fence):
			return i
		}
	}
	return first
}

// splitLanguageTag separates an info string such as "json" or "JSON" directly
// after the opening fence. Content that starts immediately (e.g. "```{...}```")
// has no tag.
func splitLanguageTag(b string) (string, string) {
	i := 0
	for i < len(b) && isTagByte(b[i]) {
		i++
	}
	if i == 0 {
		return "", b
	}
	if i == len(b) {
		return b, ""
	}
	switch b[i] {
	case '\n', '\r', ' ', '\t':
		return b[:i], b[i:]
	}
	return "", b
}

func isTagByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_' || c == '+'
}

// valueStart drops everything before the first opening brace. Arrays are only
// considered when there is no brace at all, so that a top-level array surfaces
// as a type error instead of "no JSON". A candidate with neither has no JSON.
func valueStart(candidate string) (string, bool) {
	if i := strings.IndexByte(candidate, '{'); i >= 0 {
		return candidate[i:], true
	}
	if i := strings.IndexByte(candidate, '['); i >= 0 {
		return candidate[i:], true
	}
	return "", false
}

// trimToValue cuts normalized text, which starts with '{' or '[', right after
// the bracket that balances the first one. Brackets inside strings are
// ignored. Unbalanced text is returned whole so the decoder reports where it
// breaks.
func trimToValue(s string) string {
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return s
}
