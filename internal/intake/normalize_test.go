package intake

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"curly double quotes", "“hello”", `"hello"`},
		{"curly single quotes", "it’s ‘fine’", "it's 'fine'"},
		{"dashes", "a – b — c − d", "a - b - c - d"},
		{"ellipsis", "wait…", "wait..."},
		{"non-breaking space", "a b", "a b"},
		{"guillemets", "«quoted»", `"quoted"`},
		{"low quotes", "„hello“ and ‚one‘", `"hello" and 'one'`},
		{"plain ascii untouched", `already "plain" - text...`, `already "plain" - text...`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeText(tt.input)
			if got != tt.want {
				t.Errorf("NormalizeText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeTextIdempotent(t *testing.T) {
	inputs := []string{
		"“hello” — it’s fine…",
		"plain text",
		"",
		"mixed   spacing – and dashes",
	}
	for _, in := range inputs {
		once := NormalizeText(in)
		twice := NormalizeText(once)
		if once != twice {
			t.Errorf("normalization not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestNormalizeRecordSkipsStructuralFields(t *testing.T) {
	name := "J’Doe"
	rec := LeadRecord{
		Name:     &name,
		LeadType: LeadTypeBuyer,
		Priority: PriorityHigh,
		Summary:  "smart “quotes”",
		Reply:    "dash — here",
	}
	normalizeRecord(&rec)

	if *rec.Name != "J'Doe" {
		t.Errorf("expected normalized name, got %q", *rec.Name)
	}
	if rec.Summary != `smart "quotes"` {
		t.Errorf("expected normalized summary, got %q", rec.Summary)
	}
	if rec.Reply != "dash - here" {
		t.Errorf("expected normalized reply, got %q", rec.Reply)
	}
	if rec.LeadType != LeadTypeBuyer || rec.Priority != PriorityHigh {
		t.Errorf("structural fields must not change")
	}
	if rec.Email != nil || rec.Phone != nil {
		t.Errorf("nil fields must stay nil")
	}
}
