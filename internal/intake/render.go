package intake

import (
	"html"
	"regexp"
	"strings"
)

// defaultReplyBody is rendered when the reply text is empty.
const defaultReplyBody = "Thanks for reaching out. I will get back to you with a proper answer as soon as I can."

// Signature is the fixed ASCII-safe sign-off appended to rendered replies.
type Signature struct {
	AgentName string
	Brokerage string
	Phone     string
	Website   string
}

func (s Signature) lines() []string {
	out := make([]string, 0, 4)
	for _, line := range []string{s.AgentName, s.Brokerage, s.Phone, s.Website} {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

// Plain returns the signature as newline-separated text.
func (s Signature) Plain() string {
	return strings.Join(s.lines(), "\n")
}

// HTML returns the signature as a single paragraph with line breaks.
func (s Signature) HTML() string {
	escaped := make([]string, 0, 4)
	for _, line := range s.lines() {
		escaped = append(escaped, html.EscapeString(line))
	}
	return "<p>" + strings.Join(escaped, "<br>") + "</p>"
}

// Renderer converts plain-text replies into HTML paragraphs with the
// signature appended.
type Renderer struct {
	sig Signature
}

func NewRenderer(sig Signature) *Renderer {
	return &Renderer{sig: sig}
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// Render splits replyText on blank lines into paragraphs, wraps each in a
// paragraph tag with explicit line breaks for intra-paragraph newlines, and
// appends the signature block. Empty input renders the fixed default body.
func (r *Renderer) Render(replyText string) string {
	paragraphs := make([]string, 0, 4)
	for _, p := range paragraphSplit.Split(replyText, -1) {
		if p = strings.TrimSpace(p); p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	if len(paragraphs) == 0 {
		paragraphs = []string{defaultReplyBody}
	}

	blocks := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		escaped := html.EscapeString(p)
		escaped = strings.ReplaceAll(escaped, "\n", "<br>")
		blocks = append(blocks, "<p>"+escaped+"</p>")
	}

	return strings.Join(blocks, "\n") + "\n" + r.sig.HTML()
}
