package analytics

import (
	"fmt"
	"strings"
)

const (
	defaultRangeStart = "the beginning"
	defaultRangeEnd   = "now"
)

const responseShape = `{"sales":[{"date":"YYYY-MM-DD","value":number}],"revenue":number,"users":number,"summary":string}`

// ComposePrompt builds the model instruction for q. The output depends only on
// q, so identical queries always produce byte-identical prompts.
func ComposePrompt(q Query) string {
	from := strings.TrimSpace(q.From)
	if from == "" {
		from = defaultRangeStart
	}
	to := strings.TrimSpace(q.To)
	if to == "" {
		to = defaultRangeEnd
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate business analytics for the company %q covering the period from %s to %s.\n", strings.TrimSpace(q.Company), from, to)
	b.WriteString("Respond with a single JSON object and nothing else, using exactly this shape:\n")
	b.WriteString(responseShape)
	b.WriteString("\n")
	b.WriteString("\"sales\" is a chronological list of daily sales values, \"revenue\" is the total revenue, ")
	b.WriteString("\"users\" is the total number of users, and \"summary\" is a short plain-text overview.")
	return b.String()
}
