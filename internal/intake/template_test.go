package intake

import (
	"strings"
	"testing"
)

func testSignature() Signature {
	return Signature{
		AgentName: "Dave",
		Brokerage: "Harrison Lake Realty",
		Phone:     "604-555-0137",
		Website:   "www.harrisonlakerealty.com",
	}
}

func TestMatchTriggersOnEachSource(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")

	tests := []struct {
		name string
		req  IntakeRequest
	}{
		{"form name", IntakeRequest{Body: "hello", FormData: map[string]string{"form_name": "Harrison Updates"}}},
		{"subject", IntakeRequest{Body: "hello", Subject: "Question about Harrison Lake"}},
		{"body", IntakeRequest{Body: "I drove past Harrison yesterday and want updates"}},
		{"case insensitive", IntakeRequest{Body: "tell me about HARRISON lake"}},
	}

	var shapes []*Result
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, templateID, ok := m.Match(&tt.req)
			if !ok {
				t.Fatal("expected template match")
			}
			if templateID != templateHarrisonUpdates {
				t.Errorf("expected harrison template id, got %s", templateID)
			}
			if res.Reply == "" || res.ReplyHTML == "" {
				t.Error("expected complete reply and HTML")
			}
			shapes = append(shapes, res)
		})
	}

	// Every trigger source must yield the same structural output shape.
	for i := 1; i < len(shapes); i++ {
		if shapes[i].LeadType != shapes[0].LeadType || shapes[i].Priority != shapes[0].Priority || shapes[i].Summary != shapes[0].Summary {
			t.Errorf("template output shape differs between trigger sources")
		}
	}
}

func TestMatchNoKeyword(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")
	res, _, ok := m.Match(&IntakeRequest{Body: "Looking to buy a condo downtown", Subject: "Condo inquiry"})
	if ok {
		t.Fatalf("expected no match, got %+v", res)
	}
}

func TestMatchFirstNamePreference(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")

	tests := []struct {
		name      string
		req       IntakeRequest
		wantGreet string
	}{
		{
			"form first name wins",
			IntakeRequest{Body: "harrison", FromName: "Pat Smith", FormData: map[string]string{"first_name": "Patricia"}},
			"Hi Patricia,",
		},
		{
			"caller name first token",
			IntakeRequest{Body: "harrison", FromName: "Pat Smith"},
			"Hi Pat,",
		},
		{
			"placeholder",
			IntakeRequest{Body: "harrison"},
			"Hi there,",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, _, ok := m.Match(&tt.req)
			if !ok {
				t.Fatal("expected match")
			}
			if !strings.HasPrefix(res.Reply, tt.wantGreet) {
				t.Errorf("expected greeting %q, got %q", tt.wantGreet, res.Reply[:min(40, len(res.Reply))])
			}
			if !strings.Contains(res.ReplyHTML, "<p>"+tt.wantGreet+"</p>") {
				t.Errorf("expected HTML greeting paragraph, got %q", res.ReplyHTML)
			}
		})
	}
}

func TestMatchPlainAndHTMLStayInSync(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")
	res, _, ok := m.Match(&IntakeRequest{Body: "harrison please", FromName: "Sam"})
	if !ok {
		t.Fatal("expected match")
	}

	// Each plain paragraph must appear verbatim in the HTML rendering.
	for _, para := range strings.Split(res.Reply, "\n\n") {
		first := strings.Split(para, "\n")[0]
		if !strings.Contains(res.ReplyHTML, first) {
			t.Errorf("HTML missing paragraph text %q", first)
		}
	}
	if !strings.Contains(res.Reply, "Harrison Lake Realty") {
		t.Error("expected inline signature in plain reply")
	}
	if !strings.Contains(res.ReplyHTML, "Harrison Lake Realty") {
		t.Error("expected inline signature in HTML reply")
	}
}

func TestMatchSourceDefault(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")

	res, _, ok := m.Match(&IntakeRequest{Body: "harrison"})
	if !ok {
		t.Fatal("expected match")
	}
	if res.Source != "gmail" {
		t.Errorf("expected default source gmail, got %s", res.Source)
	}

	res, _, _ = m.Match(&IntakeRequest{Body: "harrison", Source: "zapier"})
	if res.Source != "zapier" {
		t.Errorf("expected caller source to win, got %s", res.Source)
	}
}

func TestMatchCarriesCallerContact(t *testing.T) {
	m := NewMatcher(testSignature(), "gmail")
	res, _, ok := m.Match(&IntakeRequest{
		Body:      "harrison",
		FromName:  "Pat Smith",
		FromEmail: "pat@example.com",
		Phone:     "604-555-0102",
	})
	if !ok {
		t.Fatal("expected match")
	}
	if res.Name == nil || *res.Name != "Pat Smith" {
		t.Errorf("expected caller name carried onto record")
	}
	if res.Email == nil || *res.Email != "pat@example.com" {
		t.Errorf("expected caller email carried onto record")
	}
	if res.Phone == nil || *res.Phone != "604-555-0102" {
		t.Errorf("expected caller phone carried onto record")
	}
}
