package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"alfredoptarigan/ats-screener/internal/models"
)

const feedbackSchema = `{
  "type": "object",
  "required": ["JD Match", "MissingKeywords", "Profile summary", "Feedback"],
  "properties": {
    "JD Match": {"type": ["string", "number"]},
    "MissingKeywords": {"type": "array", "items": {"type": "string"}},
    "Profile summary": {"type": "string"},
    "Feedback": {"type": "string"}
  }
}`

var feedbackSchemaLoader = gojsonschema.NewStringLoader(feedbackSchema)

// ParseFeedback reads the four-key mapping the prompt asks for out of a raw
// completion. Models answer with plain JSON, fenced JSON or a Python-style
// dict; all three are accepted.
func ParseFeedback(raw string) (*models.Feedback, error) {
	candidate := extractJSON(raw)
	if candidate == "" {
		return nil, errors.New("no JSON object found in response")
	}

	var doc map[string]interface{}
	if err := decodeObject(candidate, &doc); err != nil {
		if err2 := decodeObject(pythonQuotesToJSON(candidate), &doc); err2 != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
		}
	}

	result, err := gojsonschema.Validate(feedbackSchemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("failed to validate response: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("response does not match feedback format: %s", strings.Join(problems, "; "))
	}

	feedback := &models.Feedback{
		JDMatch:         formatMatch(doc["JD Match"]),
		MissingKeywords: []string{},
		ProfileSummary:  doc["Profile summary"].(string),
		Feedback:        doc["Feedback"].(string),
	}
	for _, kw := range doc["MissingKeywords"].([]interface{}) {
		feedback.MissingKeywords = append(feedback.MissingKeywords, kw.(string))
	}

	return feedback, nil
}

func formatMatch(v interface{}) string {
	switch m := v.(type) {
	case string:
		return m
	case float64:
		return fmt.Sprintf("%g%%", m)
	default:
		return fmt.Sprint(m)
	}
}

// extractJSON drops markdown fences and any prose before the first object.
// Whatever follows the object is left for decodeObject to ignore.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	if start == -1 {
		return ""
	}

	return text[start:]
}

// decodeObject decodes the first JSON value in s and ignores trailing text.
func decodeObject(s string, v interface{}) error {
	return json.NewDecoder(strings.NewReader(s)).Decode(v)
}

// pythonQuotesToJSON rewrites single-quoted string literals as double-quoted
// ones. Double-quoted literals are copied through untouched, so apostrophes
// inside them survive.
func pythonQuotesToJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	var quote rune
	escaped := false

	for _, r := range s {
		switch {
		case quote == 0:
			if r == '\'' {
				quote = r
				b.WriteRune('"')
				continue
			}
			if r == '"' {
				quote = r
			}
			b.WriteRune(r)

		case escaped:
			escaped = false
			if !(quote == '\'' && r == '\'') {
				// \' has no meaning in JSON, every other escape is kept.
				b.WriteRune('\\')
			}
			b.WriteRune(r)

		case r == '\\':
			escaped = true

		case r == quote:
			quote = 0
			b.WriteRune('"')

		case quote == '\'' && r == '"':
			b.WriteString(`\"`)

		default:
			b.WriteRune(r)
		}
	}

	return b.String()
}
