package intake

import "strings"

// asciiReplacer maps "smart" punctuation onto plain ASCII equivalents so
// replies and extracted fields survive strict downstream mail systems.
// Every replacement target is itself ASCII, which makes the mapping
// idempotent.
var asciiReplacer = strings.NewReplacer(
	"“", `"`, // left curly double quote
	"”", `"`, // right curly double quote
	"„", `"`, // low-9 double quote
	"«", `"`, // left guillemet
	"»", `"`, // right guillemet
	"‘", "'", // left curly single quote
	"’", "'", // right curly single quote
	"‚", "'", // low-9 single quote
	"–", "-", // en dash
	"—", "-", // em dash
	"−", "-", // minus sign
	"…", "...", // ellipsis
	" ", " ", // non-breaking space
)

// NormalizeText replaces non-ASCII punctuation with ASCII equivalents.
func NormalizeText(s string) string {
	return asciiReplacer.Replace(s)
}

// normalizeRecord applies NormalizeText to the human-facing text fields.
// Structural fields (lead_type, priority, error) are left alone.
func normalizeRecord(rec *LeadRecord) {
	rec.Name = normalizePtr(rec.Name)
	rec.Email = normalizePtr(rec.Email)
	rec.Phone = normalizePtr(rec.Phone)
	rec.Summary = NormalizeText(rec.Summary)
	rec.Reply = NormalizeText(rec.Reply)
}

func normalizePtr(s *string) *string {
	if s == nil {
		return nil
	}
	normalized := NormalizeText(*s)
	return &normalized
}
