package intake

import "strings"

// Canonical lead_type values.
const (
	LeadTypeBuyer          = "Buyer"
	LeadTypeSeller         = "Seller"
	LeadTypeForeclosure    = "Foreclosure"
	LeadTypeVIPMA          = "VIPMA"
	LeadTypeHomeEvaluation = "Home Evaluation"
	LeadTypeOther          = "Other"
)

// Canonical priority values.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// summaryLimit bounds the fallback summary regardless of input length.
const summaryLimit = 500

// LeadRecord is the guaranteed-complete extraction result. After Repair runs,
// every field holds either a model-derived value or its documented default.
type LeadRecord struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	LeadType string  `json:"lead_type"`
	Priority string  `json:"priority"`
	Summary  string  `json:"summary"`
	Reply    string  `json:"reply"`
	Error    string  `json:"error,omitempty"`
}

// IntakeRequest is the caller-supplied envelope for one inbound message.
type IntakeRequest struct {
	Body      string            `json:"body"`
	BodyText  string            `json:"body_text"`
	FromName  string            `json:"from_name"`
	FromEmail string            `json:"from_email"`
	Subject   string            `json:"subject"`
	Phone     string            `json:"phone"`
	Source    string            `json:"source"`
	TaskType  string            `json:"task_type"`
	FormData  map[string]string `json:"form_data"`
}

// EmailBody returns the message body, accepting either the body or body_text
// key from the caller.
func (r *IntakeRequest) EmailBody() string {
	if strings.TrimSpace(r.Body) != "" {
		return r.Body
	}
	return r.BodyText
}

// Result is the merged, rendered pipeline output for a lead task.
type Result struct {
	Name      *string `json:"name"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	LeadType  string  `json:"lead_type"`
	Priority  string  `json:"priority"`
	Summary   string  `json:"summary"`
	Reply     string  `json:"reply"`
	ReplyHTML string  `json:"reply_html"`
	Source    string  `json:"source"`
	Error     string  `json:"error,omitempty"`
}

// TaskResult wraps the output of a non-lead free-text task.
type TaskResult struct {
	Timestamp    string            `json:"timestamp"`
	TaskType     string            `json:"task_type"`
	InputPreview string            `json:"input_preview"`
	Meta         map[string]string `json:"meta"`
	Result       string            `json:"result"`
}

var canonicalLeadTypes = []string{
	LeadTypeBuyer,
	LeadTypeSeller,
	LeadTypeForeclosure,
	LeadTypeVIPMA,
	LeadTypeHomeEvaluation,
	LeadTypeOther,
}

var canonicalPriorities = []string{PriorityHigh, PriorityMedium, PriorityLow}

// canonicalLeadType maps model output onto a canonical lead_type,
// tolerating case and spacing slips, and defaults to Other.
func canonicalLeadType(v string) string {
	key := foldEnumKey(v)
	for _, lt := range canonicalLeadTypes {
		if key == foldEnumKey(lt) {
			return lt
		}
	}
	return LeadTypeOther
}

// canonicalPriority maps model output onto a canonical priority, defaulting
// to Medium.
func canonicalPriority(v string) string {
	key := foldEnumKey(v)
	for _, p := range canonicalPriorities {
		if key == foldEnumKey(p) {
			return p
		}
	}
	return PriorityMedium
}

func foldEnumKey(v string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(v), " ", ""))
}

// truncateSummary returns the first summaryLimit characters of s.
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryLimit {
		return s
	}
	return string(runes[:summaryLimit])
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

func strptr(s string) *string {
	return &s
}
