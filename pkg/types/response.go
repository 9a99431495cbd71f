package types

// AnalyticsError is the failure body returned by analytics endpoints.
// RawResponse is only set for failures caused by an unparseable model reply.
type AnalyticsError struct {
	Error       string  `json:"error" yaml:"error"`
	Code        string  `json:"code" yaml:"code"`
	RawResponse *string `json:"rawResponse,omitempty" yaml:"rawResponse,omitempty"`
	Details     any     `json:"details,omitempty" yaml:"details,omitempty"`
}

type Status struct {
	Status string            `json:"status" yaml:"status"`
	Checks map[string]string `json:"checks,omitempty" yaml:"checks,omitempty"`
}
