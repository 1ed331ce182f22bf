package feedback

import (
	"strings"
	"unicode"
)

// normalize repairs the formatting defects models commonly produce before the
// candidate is handed to the strict decoder:
//   - single-quoted keys and strings become double-quoted
//   - raw newlines and tabs inside strings are escaped
//   - trailing commas before '}' or ']' are dropped
//   - Python literals True, False and None become true, false and null
//
// The quote repair is best-effort. Inside a single-quoted string an apostrophe
// between two letters ("it's") is kept as text; any other single quote closes
// the string. Text that is already valid JSON passes through unchanged.
func normalize(candidate string) string {
	return normalizeStructure(normalizeQuotes(candidate))
}

type quoteState int

const (
	outside quoteState = iota
	inDouble
	inSingle
)

func normalizeQuotes(s string) string {
	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 8)

	state := outside
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch state {
		case outside:
			switch r {
			case '"':
				state = inDouble
				b.WriteRune('"')
			case '\'':
				state = inSingle
				b.WriteRune('"')
			default:
				b.WriteRune(r)
			}

		case inDouble:
			switch r {
			case '\\':
				b.WriteRune(r)
				if i+1 < len(runes) {
					i++
					b.WriteRune(runes[i])
				}
			case '"':
				state = outside
				b.WriteRune('"')
			default:
				writeStringRune(&b, r)
			}

		case inSingle:
			switch r {
			case '\\':
				if i+1 < len(runes) && runes[i+1] == '\'' {
					// \' is not a JSON escape; the bare apostrophe is.
					i++
					b.WriteRune('\'')
					continue
				}
				b.WriteRune(r)
				if i+1 < len(runes) {
					i++
					b.WriteRune(runes[i])
				}
			case '"':
				b.WriteString(`\"`)
			case '\'':
				if isApostrophe(runes, i) {
					b.WriteRune('\'')
					continue
				}
				state = outside
				b.WriteRune('"')
			default:
				writeStringRune(&b, r)
			}
		}
	}

	return b.String()
}

func writeStringRune(b *strings.Builder, r rune) {
	switch r {
	case '\n':
		b.WriteString(`\n`)
	case '\r':
		b.WriteString(`\r`)
	case '\t':
		b.WriteString(`\t`)
	default:
		b.WriteRune(r)
	}
}

func isApostrophe(runes []rune, i int) bool {
	if i == 0 || i+1 >= len(runes) {
		return false
	}
	return unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}

var pythonLiterals = map[string]string{
	"True":  "true",
	"False": "false",
	"None":  "null",
}

// normalizeStructure works on double-quoted text only and leaves string
// contents alone.
func normalizeStructure(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch c {
			case '\\':
				if i+1 < len(s) {
					i++
					b.WriteByte(s[i])
				}
			case '"':
				inString = false
			}
			continue
		}

		switch {
		case c == '"':
			inString = true
			b.WriteByte(c)
		case c == ',':
			if !closesNext(s, i+1) {
				b.WriteByte(c)
			}
		case isIdentStart(c):
			j := i
			for j < len(s) && isIdentStart(s[j]) {
				j++
			}
			word := s[i:j]
			if lit, ok := pythonLiterals[word]; ok {
				word = lit
			}
			b.WriteString(word)
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}

	return b.String()
}

// closesNext reports whether the next non-space byte from i closes an object or array.
func closesNext(s string, i int) bool {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
			continue
		case '}', ']':
			return true
		default:
			return false
		}
	}
	return false
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}
