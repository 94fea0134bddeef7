package form

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

func testForm(query string) Form {
	return Form{
		SystemPrompt: "Act as a math tutor",
		Provider:     providers.Groq,
		Model:        "llama-3.3-70b-versatile",
		Query:        query,
	}
}

func TestSubmitEmptyQueryWarns(t *testing.T) {
	agent := &fakeAgent{status: http.StatusOK, body: `{"response":"x"}`}
	srv := agent.server(t)

	var out bytes.Buffer
	err := Submit(context.Background(), NewClient(srv.URL, 5*time.Second), NewUI(&out), testForm("\n  "))
	if !errors.Is(err, ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
	if !strings.Contains(out.String(), "Please enter a query to get a response from the agent.") {
		t.Fatalf("missing warning in output: %q", out.String())
	}
	if n := agent.hits.Load(); n != 0 {
		t.Fatalf("expected no requests, got %d", n)
	}
}

func TestSubmitShowsToolsAndResponse(t *testing.T) {
	agent := &fakeAgent{status: http.StatusOK, body: `{"response":"17 is prime."}`}
	srv := agent.server(t)

	f := testForm("Is 17 prime?")
	f.AllowSearch = true
	f.AllowReasoning = true

	var out bytes.Buffer
	if err := Submit(context.Background(), NewClient(srv.URL, 5*time.Second), NewUI(&out), f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := out.String()
	for _, want := range []string{"Tools enabled: Web Search, Reasoning Tools", "Agent Response", "Final Response:", "17 is prime."} {
		if !strings.Contains(text, want) {
			t.Fatalf("output missing %q: %q", want, text)
		}
	}
	if !agent.lastReq.AllowSearch || !agent.lastReq.AllowReasoning {
		t.Fatalf("tool flags not sent: %+v", agent.lastReq)
	}
}

func TestSubmitRendersServiceError(t *testing.T) {
	agent := &fakeAgent{status: http.StatusBadGateway, body: `oops`}
	srv := agent.server(t)

	var out bytes.Buffer
	err := Submit(context.Background(), NewClient(srv.URL, 5*time.Second), NewUI(&out), testForm("hello"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "API Error: 502") {
		t.Fatalf("missing error in output: %q", out.String())
	}
	if strings.Contains(out.String(), "Final Response:") {
		t.Fatalf("response rendered on error: %q", out.String())
	}
}
