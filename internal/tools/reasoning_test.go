package tools

import (
	"context"
	"strings"
	"testing"
)

func TestReasonNumbersStepsInOrder(t *testing.T) {
	out := Reason("Is X true?", []string{"step1", "step2"})

	first := strings.Index(out, "1. step1")
	second := strings.Index(out, "2. step2")
	if first < 0 || second < 0 || first > second {
		t.Fatalf("steps missing or out of order:\n%s", out)
	}
	if n := strings.Count(out, "Is X true?"); n != 2 {
		t.Fatalf("expected problem text twice, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, "**Problem:** Is X true?") {
		t.Fatalf("problem restatement missing:\n%s", out)
	}
	if !strings.HasSuffix(out, "logical framework for understanding 'Is X true?'.") {
		t.Fatalf("conclusion sentence missing:\n%s", out)
	}
}

func TestReasonWithoutSteps(t *testing.T) {
	out := Reason("Why?", nil)
	want := "🧠 **Reasoning Analysis**\n\n" +
		"**Problem:** Why?\n\n" +
		"**Step-by-step reasoning:**\n" +
		"\n**Conclusion:** Based on the above reasoning steps, " +
		"this analysis provides a logical framework for understanding 'Why?'."
	if out != want {
		t.Fatalf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
}

func TestAnalyzeIsTemplated(t *testing.T) {
	a := Analyze("P", "Q")
	if !strings.Contains(a, "**Premise:** P\n") || !strings.Contains(a, "**Conclusion:** Q\n") {
		t.Fatalf("premise or conclusion missing:\n%s", a)
	}

	b := Analyze("all men are mortal", "Socrates is mortal")
	strip := func(s, premise, conclusion string) string {
		s = strings.Replace(s, "**Premise:** "+premise, "**Premise:** _", 1)
		return strings.Replace(s, "**Conclusion:** "+conclusion, "**Conclusion:** _", 1)
	}
	if strip(a, "P", "Q") != strip(b, "all men are mortal", "Socrates is mortal") {
		t.Fatalf("explanatory text varies with input:\n%s\n---\n%s", a, b)
	}
}

func TestReasoningToolInvoke(t *testing.T) {
	out, err := ReasoningTool{}.Invoke(context.Background(), `{"problem":"Is X true?","steps":["a","b"]}`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out != Reason("Is X true?", []string{"a", "b"}) {
		t.Fatalf("unexpected output:\n%s", out)
	}

	if _, err := (ReasoningTool{}).Invoke(context.Background(), `{"problem":`); err == nil {
		t.Fatalf("expected error on malformed arguments")
	}
}

func TestLogicalAnalysisToolInvoke(t *testing.T) {
	out, err := LogicalAnalysisTool{}.Invoke(context.Background(), `{"premise":"P","conclusion":"Q"}`)
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if out != Analyze("P", "Q") {
		t.Fatalf("unexpected output:\n%s", out)
	}
}
