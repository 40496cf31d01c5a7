package intake

import (
	"context"
	"fmt"
	"strings"
)

// completer is the slice of Gateway the extractor needs.
type completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// gatewayFailureReply is the canned apology returned when the completion
// service is unavailable.
const gatewayFailureReply = "Thanks for reaching out. I want to make sure you get a proper answer, so I will follow up with you personally as soon as I can."

const extractionInstructions = `Extract the following fields from the email below and respond with a single JSON object only. No prose, no code fences.

Required keys:
  "name": the sender's full name, or null if not stated
  "email": the sender's email address, or null if not stated
  "phone": the sender's phone number, or null if not stated
  "lead_type": one of "Buyer", "Seller", "Foreclosure", "VIPMA", "Home Evaluation", "Other"
  "priority": one of "High", "Medium", "Low"
  "summary": a one or two sentence summary of the message
  "reply": a short professional reply in the agent's voice

Email content:
---
%s
---`

// Extractor turns raw email text into a normalized LeadRecord via the
// completion gateway and the schema repairer.
type Extractor struct {
	gateway   completer
	agentName string
}

func NewExtractor(gateway completer, agentName string) *Extractor {
	if gateway == nil {
		panic("intake: gateway cannot be nil")
	}
	if strings.TrimSpace(agentName) == "" {
		agentName = "the agent"
	}
	return &Extractor{gateway: gateway, agentName: agentName}
}

func (e *Extractor) systemPrompt() string {
	return fmt.Sprintf("You are %s's assistant at a real estate brokerage. Write in a courteous, direct, professional tone. Do not use emoji. Do not use marketing language. Use plain ASCII punctuation only.", e.agentName)
}

// Extract asks the model for the seven lead fields plus a drafted reply.
// A gateway failure produces a complete canned record with Error set; this
// is the only path that populates Error. Malformed model output is absorbed
// by Repair and never surfaces as a failure.
func (e *Extractor) Extract(ctx context.Context, emailText string) LeadRecord {
	userPrompt := fmt.Sprintf(extractionInstructions, emailText)

	raw, err := e.gateway.Complete(ctx, e.systemPrompt(), userPrompt)
	if err != nil {
		return LeadRecord{
			LeadType: LeadTypeOther,
			Priority: PriorityMedium,
			Summary:  truncateSummary(emailText),
			Reply:    gatewayFailureReply,
			Error:    err.Error(),
		}
	}

	rec := Repair(raw, emailText)
	normalizeRecord(&rec)
	return rec
}

// Respond runs a plain completion over text in the agent's voice, with no
// field extraction or schema repair. Used for non-lead task types.
func (e *Extractor) Respond(ctx context.Context, text string) (string, error) {
	return e.gateway.Complete(ctx, e.systemPrompt(), text)
}
