package analytics

import (
	"strings"

	pkgerrors "github.com/angelmondragon/pulse-analytics/pkg/errors"
)

// ValidateQuery only checks that a company is present. Date bounds are passed
// through to the prompt untouched.
func ValidateQuery(q Query) error {
	if strings.TrimSpace(q.Company) == "" {
		return pkgerrors.New(pkgerrors.CodeMissingIdentifier, "company name is required")
	}
	return nil
}
