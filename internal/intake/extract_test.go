package intake

import (
	"context"
	"strings"
	"testing"
)

// fakeGateway stands in for the completion gateway.
type fakeGateway struct {
	response string
	err      error
	calls    int
	lastSys  string
	lastUser string
}

func (f *fakeGateway) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	f.lastSys = systemPrompt
	f.lastUser = userPrompt
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func TestExtractSuccess(t *testing.T) {
	gw := &fakeGateway{response: `{"name":"Jordan","lead_type":"Buyer","priority":"High","summary":"Wants a lake house.","reply":"Hi Jordan — happy to help."}`}
	e := NewExtractor(gw, "Dave")

	rec := e.Extract(context.Background(), "I want a lake house. - Jordan")

	if rec.Error != "" {
		t.Fatalf("unexpected error on success: %q", rec.Error)
	}
	if rec.Name == nil || *rec.Name != "Jordan" {
		t.Errorf("expected extracted name, got %v", rec.Name)
	}
	if rec.LeadType != LeadTypeBuyer || rec.Priority != PriorityHigh {
		t.Errorf("expected extracted enums, got %s/%s", rec.LeadType, rec.Priority)
	}
	// Em dash in the model reply must come back as ASCII.
	if rec.Reply != "Hi Jordan - happy to help." {
		t.Errorf("expected normalized reply, got %q", rec.Reply)
	}
}

func TestExtractPromptShape(t *testing.T) {
	gw := &fakeGateway{response: `{}`}
	e := NewExtractor(gw, "Dave")

	e.Extract(context.Background(), "email body here")

	if !strings.Contains(gw.lastSys, "Dave's assistant") {
		t.Errorf("expected persona in system prompt, got %q", gw.lastSys)
	}
	if !strings.Contains(gw.lastSys, "Do not use emoji") {
		t.Errorf("expected tone constraints in system prompt")
	}
	if !strings.Contains(gw.lastUser, "email body here") {
		t.Errorf("expected email embedded in user prompt")
	}
	if !strings.Contains(gw.lastUser, `"lead_type"`) || !strings.Contains(gw.lastUser, `"priority"`) {
		t.Errorf("expected schema keys in user prompt")
	}
}

func TestExtractGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: &GatewayError{Message: "model unreachable"}}
	e := NewExtractor(gw, "Dave")

	body := strings.Repeat("x", 600)
	rec := e.Extract(context.Background(), body)

	if rec.LeadType != LeadTypeOther {
		t.Errorf("expected Other lead type, got %s", rec.LeadType)
	}
	if rec.Priority != PriorityMedium {
		t.Errorf("expected Medium priority, got %s", rec.Priority)
	}
	if rec.Error == "" || !strings.Contains(rec.Error, "model unreachable") {
		t.Errorf("expected gateway message in error, got %q", rec.Error)
	}
	if rec.Reply == "" {
		t.Error("expected canned reply on gateway failure")
	}
	if len(rec.Summary) != 500 {
		t.Errorf("expected truncated summary of 500 chars, got %d", len(rec.Summary))
	}
}

func TestExtractMalformedOutput(t *testing.T) {
	gw := &fakeGateway{response: "Sorry, I cannot produce JSON today."}
	e := NewExtractor(gw, "Dave")

	rec := e.Extract(context.Background(), "email body")

	if rec.Error != "" {
		t.Errorf("parse failure must not populate error, got %q", rec.Error)
	}
	if rec.Reply != "Sorry, I cannot produce JSON today." {
		t.Errorf("expected raw text kept as reply, got %q", rec.Reply)
	}
	if rec.LeadType != LeadTypeOther || rec.Priority != PriorityMedium {
		t.Errorf("expected default enums on parse failure")
	}
}

func TestRespond(t *testing.T) {
	gw := &fakeGateway{response: "A plain answer."}
	e := NewExtractor(gw, "Dave")

	text, err := e.Respond(context.Background(), "Write a market note.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "A plain answer." {
		t.Errorf("expected completion text, got %q", text)
	}
	if !strings.Contains(gw.lastSys, "Dave's assistant") {
		t.Errorf("expected persona system prompt, got %q", gw.lastSys)
	}
	if gw.lastUser != "Write a market note." {
		t.Errorf("expected body passed through untouched, got %q", gw.lastUser)
	}
}

func TestRespondGatewayError(t *testing.T) {
	gw := &fakeGateway{err: &GatewayError{Message: "down"}}
	e := NewExtractor(gw, "Dave")

	if _, err := e.Respond(context.Background(), "anything"); err == nil {
		t.Fatal("expected gateway error surfaced")
	}
}
