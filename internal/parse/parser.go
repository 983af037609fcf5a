// Package parse turns raw LLM output into a fixed-schema analysis record.
// The model's output is unreliable: sometimes clean JSON, sometimes JSON
// wrapped in markdown or prose, sometimes truncated, sometimes plain text.
// Parse degrades through repair and heuristics instead of ever failing.
package parse

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// Sentinel defaults for absent fields.
const (
	NotSpecified  = "Not Specified"
	NotApplicable = "N/A"
)

// FieldCompany is set from the caller-supplied identifier, never from the
// model's own output.
const FieldCompany = "company"

// Fields is the schema in report-column order.
var Fields = []string{
	FieldCompany,
	"contract_name",
	"effective_date",
	"renewal_termination_date",
	"assignment_clause_reference",
	"notices_clause_present",
	"action_required",
	"recommended_action",
	"contact_listed",
}

var fieldDefaults = map[string]string{
	"contract_name":               NotSpecified,
	"effective_date":              NotSpecified,
	"renewal_termination_date":    NotSpecified,
	"assignment_clause_reference": NotApplicable,
	"notices_clause_present":      NotSpecified,
	"action_required":             NotSpecified,
	"recommended_action":          NotSpecified,
	"contact_listed":              NotSpecified,
}

// Record is one normalized analysis result. Every schema field is always
// present with a non-empty string value.
type Record map[string]string

// Defaults returns a record with every field at its schema default.
func Defaults(company string) Record {
	rec := make(Record, len(Fields))
	rec[FieldCompany] = company
	for field, def := range fieldDefaults {
		rec[field] = def
	}
	return rec
}

// Parser normalizes LLM responses into Records.
type Parser struct {
	log *slog.Logger
}

func New(logger *slog.Logger) *Parser {
	return &Parser{log: logger}
}

// Parse never fails: structured extraction first, heuristic pattern
// extraction as fallback, full defaults as the floor.
func (p *Parser) Parse(raw, company string) Record {
	text := unwrapMarkdown(strings.TrimSpace(raw))

	if data, ok := p.extractJSON(text); ok {
		p.log.Info("structured parse successful", "company", company)
		return fromJSON(data, company)
	}

	p.log.Info("falling back to heuristic extraction", "company", company)
	return fromPatterns(text, company)
}

// unwrapMarkdown strips a fenced code block wrapper, tagged or bare.
func unwrapMarkdown(text string) string {
	if strings.HasPrefix(text, "```json") {
		text = text[len("```json"):]
	}
	if strings.HasPrefix(text, "```") {
		text = text[len("```"):]
	}
	if strings.HasSuffix(text, "```") {
		text = text[:len(text)-len("```")]
	}
	return strings.TrimSpace(text)
}

// extractJSON slices the outermost brace pair and decodes it into a generic
// map. Strict parsing is tried first; malformed output goes through repair,
// then a lenient Hjson read, before structured parsing is abandoned.
func (p *Parser) extractJSON(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return nil, false
	}
	slice := text[start : end+1]

	var data map[string]any
	if err := json.Unmarshal([]byte(slice), &data); err == nil {
		return data, true
	}

	if repaired, err := jsonrepair.RepairJSON(slice); err == nil {
		data = nil
		if err := json.Unmarshal([]byte(repaired), &data); err == nil && len(data) > 0 {
			p.log.Warn("model output needed JSON repair")
			return data, true
		}
	}

	data = nil
	if err := hjson.Unmarshal([]byte(slice), &data); err == nil && len(data) > 0 {
		p.log.Warn("model output parsed leniently as hjson")
		return data, true
	}

	return nil, false
}

// fromJSON projects a generic decoded object onto the schema, trimming
// values and substituting per-field defaults for absent, null or empty ones.
func fromJSON(data map[string]any, company string) Record {
	rec := Defaults(company)
	for field := range fieldDefaults {
		rec[field] = cleanValue(data[field], fieldDefaults[field])
	}
	// The JSON object may carry its own company key; the caller's
	// identifier wins regardless.
	rec[FieldCompany] = company
	return rec
}

func cleanValue(value any, def string) string {
	if value == nil {
		return def
	}
	var text string
	switch v := value.(type) {
	case string:
		text = v
	case float64:
		text = strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		if v {
			text = "Yes"
		} else {
			text = "No"
		}
	default:
		text = fmt.Sprint(v)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return def
	}
	return text
}
