package analytics

// Query scopes a single analytics request. From and To are free-form date
// text; an empty value means the bound is absent.
type Query struct {
	Company string
	From    string
	To      string
}

// SalesPoint is one point of the sales series.
type SalesPoint struct {
	Date  string  `json:"date" yaml:"date"`
	Value float64 `json:"value" yaml:"value"`
}

// Payload is the decoded analytics result handed to the presentation layer.
// Sales keeps the order the model produced; it is not re-sorted.
type Payload struct {
	Sales   []SalesPoint `json:"sales" yaml:"sales"`
	Revenue float64      `json:"revenue" yaml:"revenue"`
	Users   float64      `json:"users" yaml:"users"`
	Summary string       `json:"summary,omitempty" yaml:"summary,omitempty"`
}
