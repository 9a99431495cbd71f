package analytics

import (
	"encoding/json"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
)

// payloadSchema mirrors the shape requested by ComposePrompt, with the
// non-negative totals a real data source would guarantee.
var payloadSchema = map[string]any{
	"type":     "object",
	"required": []any{"sales", "revenue", "users"},
	"properties": map[string]any{
		"sales": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"date", "value"},
				"properties": map[string]any{
					"date":  map[string]any{"type": "string"},
					"value": map[string]any{"type": "number"},
				},
			},
		},
		"revenue": map[string]any{"type": "number", "minimum": 0},
		"users":   map[string]any{"type": "number", "minimum": 0},
		"summary": map[string]any{"type": "string"},
	},
}

var compiledPayloadSchema = mustCompileSchema(payloadSchema)

func mustCompileSchema(schema map[string]any) *gojsonschema.Schema {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(schema))
	if err != nil {
		panic("analytics: invalid payload schema: " + err.Error())
	}
	return compiled
}

// Extract pulls the analytics payload out of free-form model text. It decodes
// the span from the first '{' to the last '}' inclusive; when the text holds
// several objects the whole span is used, which usually fails as MALFORMED_JSON.
func Extract(raw string) (*Payload, error) {
	p, _, err := extractSpan(raw)
	return p, err
}

// ExtractStrict is Extract plus a schema check of the decoded span.
func ExtractStrict(raw string) (*Payload, error) {
	p, span, err := extractSpan(raw)
	if err != nil {
		return nil, err
	}
	if err := validateSpan(span, raw); err != nil {
		return nil, err
	}
	return p, nil
}

func extractSpan(raw string) (*Payload, string, error) {
	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first < 0 || last < 0 || last < first {
		return nil, "", pkgerrors.New(pkgerrors.CodeNoJSONFound, "no JSON object found in model response").
			WithRawResponse(raw)
	}

	span := raw[first : last+1]
	var p Payload
	if err := json.Unmarshal([]byte(span), &p); err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeMalformedJSON, err, "model returned malformed JSON").
			WithRawResponse(raw)
	}
	if p.Sales == nil {
		p.Sales = []SalesPoint{}
	}
	return &p, span, nil
}

func validateSpan(span, raw string) error {
	result, err := compiledPayloadSchema.Validate(gojsonschema.NewStringLoader(span))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeMalformedJSON, err, "model returned malformed JSON").
			WithRawResponse(raw)
	}
	if result.Valid() {
		return nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return pkgerrors.New(pkgerrors.CodeInvalidPayload, "model response does not match the analytics shape").
		WithDetails(map[string]any{"violations": violations}).
		WithRawResponse(raw)
}
