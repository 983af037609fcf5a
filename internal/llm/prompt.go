package llm

import (
	"fmt"
	"strings"
)

// analysisPrompt instructs the model to assess notification and consent
// obligations triggered by a corporate name change, and to answer with
// exactly one JSON object in the report schema.
const analysisPrompt = `AI Contract Review - Corporate Restructure Notification Assessment

You are reviewing a contract package to determine whether a change in our
company's legal name, or a corporate restructuring from a corporation to an
LLC, requires prior notification to or consent from the counterparty.

CONTRACT TEXT:
{contract_text}

SEARCH TERMS TO FOCUS ON:
{search_terms}

Return EXACTLY ONE JSON object with these fields:
{
    "contract_name": "Name of the contract",
    "effective_date": "Effective date of the contract",
    "renewal_termination_date": "Renewal or termination date",
    "assignment_clause_reference": "Assignment clause section number and relevant language, otherwise 'N/A'",
    "notices_clause_present": "Yes/No/Not Specified - whether a notices clause is present and whether it mentions name or structural changes",
    "action_required": "One of: Notification Required / Consent Required / No Action Required / Further Legal Review Recommended",
    "recommended_action": "One of: Send Notification / Request Consent / No Action / Escalate for Legal Review",
    "contact_listed": "Notice contact listed in the contract, otherwise 'Not Specified'"
}

IMPORTANT: Analyze all documents as ONE contract package and return exactly
ONE summary object, not one object per document file. Output must be valid
JSON with no surrounding commentary.`

// BuildPrompt substitutes the company text and search terms into the
// analysis template, and appends a processing-context trailer when some
// documents failed to extract.
func BuildPrompt(in Input) string {
	prompt := strings.NewReplacer(
		"{contract_text}", in.Text,
		"{search_terms}", strings.Join(in.SearchTerms, ", "),
	).Replace(analysisPrompt)

	if in.Stats.Total == 0 && len(in.FailedDocs) == 0 {
		return prompt
	}

	var sb strings.Builder
	sb.WriteString(prompt)
	sb.WriteString("\n\nDOCUMENT PROCESSING CONTEXT:\n")
	fmt.Fprintf(&sb, "Total documents processed: %d\n", in.Stats.Total)
	fmt.Fprintf(&sb, "Successfully extracted: %d documents\n", in.Stats.Successful)
	if len(in.FailedDocs) > 0 {
		fmt.Fprintf(&sb, "Failed to process: %d documents\n", len(in.FailedDocs))
		fmt.Fprintf(&sb, "Failed documents: %s\n", strings.Join(in.FailedDocs, ", "))
		sb.WriteString("Note: Analysis is based on successfully processed documents only.\n")
	}
	return sb.String()
}
