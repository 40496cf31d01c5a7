package intake

import (
	"fmt"
	"strings"
)

const templateHarrisonUpdates = "harrison_updates"

type templateRule struct {
	keyword    string
	templateID string
}

// templateRules is evaluated in order against form_name, subject, and body.
// Special-casing another topic means adding a row here.
var templateRules = []templateRule{
	{keyword: "harrison", templateID: templateHarrisonUpdates},
}

// Matcher short-circuits recognized high-volume topics with a deterministic
// canned reply, skipping the completion service entirely.
type Matcher struct {
	sig           Signature
	defaultSource string
}

func NewMatcher(sig Signature, defaultSource string) *Matcher {
	if defaultSource == "" {
		defaultSource = "gmail"
	}
	return &Matcher{sig: sig, defaultSource: defaultSource}
}

// Match tests each rule keyword case-insensitively against the form name,
// the subject line, and the body text. A hit on any one source is enough.
// The matched template ID is returned for observability.
func (m *Matcher) Match(req *IntakeRequest) (*Result, string, bool) {
	sources := []string{req.FormData["form_name"], req.Subject, req.EmailBody()}
	for _, rule := range templateRules {
		for _, src := range sources {
			if src == "" {
				continue
			}
			if strings.Contains(strings.ToLower(src), rule.keyword) {
				return m.build(rule.templateID, req), rule.templateID, true
			}
		}
	}
	return nil, "", false
}

func (m *Matcher) build(templateID string, req *IntakeRequest) *Result {
	// Single template today; the rule table keys future ones.
	_ = templateID
	return m.harrisonUpdates(req)
}

// harrisonUpdates produces the fixed Harrison Lake update reply. Plain text
// and HTML are built from the same paragraph list so they cannot drift; the
// signature is inline here, never appended by the renderer.
func (m *Matcher) harrisonUpdates(req *IntakeRequest) *Result {
	first := resolveFirstName(req)

	paragraphs := []string{
		fmt.Sprintf("Hi %s,", first),
		"Thanks for signing up for Harrison Lake updates. You are on the list, and I will send new listings, price changes, and market notes for the Harrison area as they come in.",
		"If you would like the updates narrowed to a price range or property type, just reply to this email and tell me what you are looking for.",
	}

	plain := strings.Join(paragraphs, "\n\n") + "\n\n" + m.sig.Plain()

	var html strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			html.WriteString("\n")
		}
		html.WriteString("<p>" + p + "</p>")
	}
	html.WriteString("\n" + m.sig.HTML())

	source := req.Source
	if strings.TrimSpace(source) == "" {
		source = m.defaultSource
	}

	return &Result{
		Name:      emptyToNil(strptr(bestName(req))),
		Email:     emptyToNil(strptr(req.FromEmail)),
		Phone:     emptyToNil(strptr(req.Phone)),
		LeadType:  LeadTypeBuyer,
		Priority:  PriorityMedium,
		Summary:   "Signed up for Harrison Lake listing updates.",
		Reply:     plain,
		ReplyHTML: html.String(),
		Source:    source,
	}
}

// resolveFirstName prefers the form-supplied first name, then the first token
// of the caller-supplied name, then a generic placeholder.
func resolveFirstName(req *IntakeRequest) string {
	if first := strings.TrimSpace(req.FormData["first_name"]); first != "" {
		return first
	}
	if name := strings.TrimSpace(req.FromName); name != "" {
		return strings.Fields(name)[0]
	}
	return "there"
}

// bestName returns the fullest known sender name, or empty.
func bestName(req *IntakeRequest) string {
	if name := strings.TrimSpace(req.FromName); name != "" {
		return name
	}
	return strings.TrimSpace(req.FormData["first_name"])
}
