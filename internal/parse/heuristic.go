package parse

import "regexp"

// Heuristic patterns for the fields recoverable from free-form prose.
// Fields without a pattern stay at their schema default on this path.
var fieldPatterns = map[string]*regexp.Regexp{
	"contract_name":      regexp.MustCompile(`"([^"]+)"`),
	"effective_date":     regexp.MustCompile(`(?i)(\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2}/\d{4}|[A-Za-z]+ \d{1,2},? \d{4})`),
	"action_required":    regexp.MustCompile(`(?i)(Notification Required|Consent Required|No Action Required|Further Legal Review Recommended)`),
	"recommended_action": regexp.MustCompile(`(?i)(Send Notification|Request Consent|No Action|Escalate for Legal Review)`),
}

// fromPatterns starts from the full-default record and fills in whatever the
// per-field patterns can recover from the raw text. Each field is independent;
// a miss leaves its default in place.
func fromPatterns(text, company string) Record {
	rec := Defaults(company)
	for field, pattern := range fieldPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			rec[field] = match[1]
		}
	}
	return rec
}
