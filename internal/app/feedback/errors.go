package feedback

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies why a model reply could not be turned into Feedback.
type ErrorKind string

const (
	KindNoJSONFound       ErrorKind = "no_json_found"
	KindMalformedJSON     ErrorKind = "malformed_json"
	KindMissingFields     ErrorKind = "missing_fields"
	KindFieldTypeMismatch ErrorKind = "field_type_mismatch"
	KindScoreOutOfRange   ErrorKind = "score_out_of_range"
)

// ExtractionError is returned by ExtractFeedback. Only the fields relevant to
// Kind are set:
//   - KindMalformedJSON: Detail carries the decoder message
//   - KindMissingFields: Fields lists the absent keys
//   - KindFieldTypeMismatch: Field, Expected and Actual
//   - KindScoreOutOfRange: Field is "score" and Actual is the offending value
type ExtractionError struct {
	Kind     ErrorKind
	Detail   string
	Fields   []string
	Field    string
	Expected string
	Actual   string
}

// Sentinels for errors.Is. Matching compares Kind only.
var (
	ErrNoJSONFound       = &ExtractionError{Kind: KindNoJSONFound}
	ErrMalformedJSON     = &ExtractionError{Kind: KindMalformedJSON}
	ErrMissingFields     = &ExtractionError{Kind: KindMissingFields}
	ErrFieldTypeMismatch = &ExtractionError{Kind: KindFieldTypeMismatch}
	ErrScoreOutOfRange   = &ExtractionError{Kind: KindScoreOutOfRange}
)

// Error implements the error interface
func (e *ExtractionError) Error() string {
	switch e.Kind {
	case KindNoJSONFound:
		return "no JSON object found in model reply"
	case KindMalformedJSON:
		if e.Detail == "" {
			return "malformed JSON in model reply"
		}
		return fmt.Sprintf("malformed JSON in model reply: %s", e.Detail)
	case KindMissingFields:
		return fmt.Sprintf("model reply is missing required fields: %s", strings.Join(e.Fields, ", "))
	case KindFieldTypeMismatch:
		return fmt.Sprintf("field %q has wrong type: expected %s, got %s", e.Field, e.Expected, e.Actual)
	case KindScoreOutOfRange:
		return fmt.Sprintf("score %s out of range (must be between %d and %d)", e.Actual, MinScore, MaxScore)
	default:
		return "feedback extraction failed"
	}
}

// Is reports whether target is an *ExtractionError of the same kind.
func (e *ExtractionError) Is(target error) bool {
	t, ok := target.(*ExtractionError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// AsExtractionError unwraps err to an *ExtractionError if there is one in its chain.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var extractionErr *ExtractionError
	if errors.As(err, &extractionErr) {
		return extractionErr, true
	}
	return nil, false
}

func noJSONFound() error {
	return &ExtractionError{Kind: KindNoJSONFound}
}

func malformedJSON(detail string) error {
	return &ExtractionError{Kind: KindMalformedJSON, Detail: detail}
}

func missingFields(fields []string) error {
	return &ExtractionError{Kind: KindMissingFields, Fields: fields}
}

func typeMismatch(field, expected, actual string) error {
	return &ExtractionError{
		Kind:     KindFieldTypeMismatch,
		Field:    field,
		Expected: expected,
		Actual:   actual,
	}
}

func scoreOutOfRange(actual string) error {
	return &ExtractionError{
		Kind:     KindScoreOutOfRange,
		Field:    FieldScore,
		Expected: fmt.Sprintf("number between %d and %d", MinScore, MaxScore),
		Actual:   actual,
	}
}
