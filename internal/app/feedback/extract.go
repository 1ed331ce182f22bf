package feedback

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Extractor converts raw model replies into Feedback. It holds no per-call
// state and is safe for concurrent use.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor creates an Extractor. A nil logger disables diagnostics.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger.Named("extractor")}
}

// ExtractFeedback runs the extraction pipeline without diagnostic logging.
func ExtractFeedback(rawReply string) (*Feedback, error) {
	return NewExtractor(nil).Extract(rawReply)
}

// Extract locates a JSON object in rawReply, repairs common formatting defects,
// decodes it strictly and validates the required fields. Every failure is an
// *ExtractionError; no default Feedback is ever substituted.
func (e *Extractor) Extract(rawReply string) (*Feedback, error) {
	e.logger.Debug("Extracting feedback from model reply",
		zap.Int("reply_length", len(rawReply)),
		zap.String("raw_reply", rawReply),
	)

	candidate, ok := locateCandidate(rawReply)
	if !ok {
		return nil, e.fail("locate", noJSONFound())
	}

	normalized := trimToValue(normalize(candidate))
	e.logger.Debug("Normalized JSON candidate", zap.String("candidate", normalized))

	value, err := decodeStrict(normalized)
	if err != nil {
		return nil, e.fail("parse", err)
	}

	fb, err := validate(value)
	if err != nil {
		return nil, e.fail("validate", err)
	}

	return fb, nil
}

func (e *Extractor) fail(stage string, err error) error {
	e.logger.Debug("Feedback extraction failed", zap.String("stage", stage), zap.Error(err))
	return err
}

// decodeStrict decodes exactly one JSON value. Numbers are kept as json.Number
// so the score range check sees the literal the model wrote.
func decodeStrict(candidate string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(candidate))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, malformedJSON(err.Error())
	}

	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, malformedJSON("unexpected data after top-level value")
	}

	return value, nil
}

func validate(value any) (*Feedback, error) {
	obj, ok := value.(map[string]any)
	if !ok {
		return nil, typeMismatch("$", "object", jsonType(value))
	}

	missing := lo.Filter(requiredFields, func(field string, _ int) bool {
		_, present := obj[field]
		return !present
	})
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	analysis, err := validateAnalysis(obj[FieldAnalysis])
	if err != nil {
		return nil, err
	}

	score, err := validateScore(obj[FieldScore])
	if err != nil {
		return nil, err
	}

	tips, err := validateTips(obj[FieldTips])
	if err != nil {
		return nil, err
	}

	return &Feedback{
		Analysis: analysis,
		Score:    score,
		Tips:     tips,
	}, nil
}

func validateAnalysis(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", typeMismatch(FieldAnalysis, "string", jsonType(v))
	}
	if strings.TrimSpace(s) == "" {
		return "", typeMismatch(FieldAnalysis, "non-empty string", "empty string")
	}
	return s, nil
}

func validateScore(v any) (float64, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, typeMismatch(FieldScore, "number", jsonType(v))
	}

	score, err := n.Float64()
	if err != nil || math.IsInf(score, 0) || math.IsNaN(score) {
		return 0, scoreOutOfRange(n.String())
	}
	if score < MinScore || score > MaxScore {
		return 0, scoreOutOfRange(n.String())
	}
	return score, nil
}

func validateTips(v any) ([]string, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, typeMismatch(FieldTips, "array of strings", jsonType(v))
	}

	tips := make([]string, 0, len(items))
	for i, item := range items {
		tip, ok := item.(string)
		if !ok {
			return nil, typeMismatch(fmt.Sprintf("%s[%d]", FieldTips, i), "string", jsonType(item))
		}
		tips = append(tips, tip)
	}
	return tips, nil
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
