package enums

import (
	"fmt"
	"strings"
)

// AnalyticsSource selects where an analytics payload comes from.
type AnalyticsSource string

const (
	// AnalyticsSourceSample replays a canned model reply through the pipeline.
	AnalyticsSourceSample AnalyticsSource = "sample"
	// AnalyticsSourceModel asks the generative-language model.
	AnalyticsSourceModel AnalyticsSource = "model"
)

var validAnalyticsSources = []AnalyticsSource{
	AnalyticsSourceSample,
	AnalyticsSourceModel,
}

// IsValid reports whether the value is a known analytics source.
func (a AnalyticsSource) IsValid() bool {
	for _, candidate := range validAnalyticsSources {
		if candidate == a {
			return true
		}
	}
	return false
}

func (a AnalyticsSource) String() string { return string(a) }

// ParseAnalyticsSource normalizes case and whitespace before matching.
func ParseAnalyticsSource(value string) (AnalyticsSource, error) {
	normalized := AnalyticsSource(strings.ToLower(strings.TrimSpace(value)))
	if normalized.IsValid() {
		return normalized, nil
	}
	return "", fmt.Errorf("invalid analytics source %q", value)
}
