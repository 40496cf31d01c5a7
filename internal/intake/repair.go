package intake

import (
	"encoding/json"
	"strings"
)

// defaultRepairReply is used when the model returned valid JSON but left the
// reply blank.
const defaultRepairReply = "Thanks for reaching out. I received your message and will follow up with you shortly."

// leadPayload is the loose decode target for model output. Every field is
// optional; Repair fills in defaults.
type leadPayload struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LeadType string  `json:"lead_type"`
	Priority string  `json:"priority"`
	Summary  string  `json:"summary"`
	Reply    string  `json:"reply"`
}

// Repair converts raw model output into a guaranteed-complete LeadRecord.
// Malformed output is never an error: the raw text is kept verbatim as the
// reply and every other field takes its documented default, with the summary
// truncated from fallbackSource.
func Repair(raw, fallbackSource string) LeadRecord {
	var p leadPayload
	if err := json.Unmarshal([]byte(extractJSONObject(raw)), &p); err != nil {
		return LeadRecord{
			LeadType: LeadTypeOther,
			Priority: PriorityMedium,
			Summary:  truncateSummary(fallbackSource),
			Reply:    raw,
		}
	}

	rec := LeadRecord{
		Name:     emptyToNil(p.Name),
		Email:    emptyToNil(p.Email),
		Phone:    emptyToNil(p.Phone),
		LeadType: canonicalLeadType(p.LeadType),
		Priority: canonicalPriority(p.Priority),
		Summary:  strings.TrimSpace(p.Summary),
		Reply:    strings.TrimSpace(p.Reply),
	}
	if rec.Summary == "" {
		rec.Summary = truncateSummary(fallbackSource)
	}
	if rec.Reply == "" {
		rec.Reply = defaultRepairReply
	}
	return rec
}

// extractJSONObject pulls the outermost brace-delimited span out of text, so
// JSON wrapped in prose or code fences still decodes. Returns the input
// unchanged when no object is present.
func extractJSONObject(text string) string {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		return text[start : end+1]
	}
	return text
}
