package validators

import (
	"net/http"
	"strings"

	"github.com/angelmondragon/pulse-analytics/internal/analytics"
)

// AnalyticsParams are the query-string inputs shared by the analytics routes.
// Length bounds live in the validate tags. Company may be blank here; the
// pipeline owns the MISSING_IDENTIFIER check.
type AnalyticsParams struct {
	Company string `query:"company" validate:"max=200"`
	From    string `query:"from" validate:"max=64"`
	To      string `query:"to" validate:"max=64"`
	Source  string `query:"source" validate:"omitempty,oneof=sample model"`
}

// ParseAnalyticsParams reads and bounds the analytics query parameters.
// Dates are passed through as text and not checked for format or order.
func ParseAnalyticsParams(r *http.Request) (AnalyticsParams, error) {
	query := r.URL.Query()
	params := AnalyticsParams{
		Company: strings.TrimSpace(query.Get("company")),
		From:    strings.TrimSpace(query.Get("from")),
		To:      strings.TrimSpace(query.Get("to")),
		Source:  strings.ToLower(strings.TrimSpace(query.Get("source"))),
	}
	if err := validate.Struct(params); err != nil {
		return AnalyticsParams{}, formatValidationErrors(err)
	}
	return params, nil
}

func (p AnalyticsParams) Request() analytics.Request {
	return analytics.Request{
		Query:  analytics.Query{Company: p.Company, From: p.From, To: p.To},
		Source: p.Source,
	}
}
