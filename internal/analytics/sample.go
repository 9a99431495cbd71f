package analytics

import "context"

// sampleResponse is the canned reply used when no model is wired in. It goes
// through the same extraction path as a real reply.
const sampleResponse = `{
  "sales": [
    {"date": "2025-01-01", "value": 100},
    {"date": "2025-01-02", "value": 200},
    {"date": "2025-01-03", "value": 300},
    {"date": "2025-01-04", "value": 400}
  ],
  "revenue": 10500,
  "users": 2300,
  "summary": "Sample data: sales grew steadily across the period."
}`

// SampleModel answers every prompt with the canned sample series.
func SampleModel(context.Context, string) (string, error) {
	return sampleResponse, nil
}
