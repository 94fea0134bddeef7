package chat

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
	"github.com/Vovarama1992/agent-form-bridge/internal/metrics"
	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
	"github.com/Vovarama1992/agent-form-bridge/internal/tools"
)

type fakeModel struct{}

func (fakeModel) Complete(context.Context, []ai.Turn, []ai.ToolSpec) (ai.Turn, error) {
	return ai.Turn{}, errors.New("fake model must not be called directly")
}

type fakeModels struct {
	builds []string
	err    error
}

func (f *fakeModels) Build(p providers.Provider, model string) (ai.Model, error) {
	f.builds = append(f.builds, string(p)+"/"+model)
	if f.err != nil {
		return nil, f.err
	}
	return fakeModel{}, nil
}

type fakeRunner struct {
	transcript []ai.Turn
	err        error
	calls      int
	tools      []string
	turns      []ai.Turn
}

func (f *fakeRunner) Run(_ context.Context, _ ai.Model, list []agent.Tool, turns []ai.Turn) ([]ai.Turn, error) {
	f.calls++
	f.tools = tools.Names(list)
	f.turns = turns
	if f.err != nil {
		return nil, f.err
	}
	return append(append([]ai.Turn(nil), turns...), f.transcript...), nil
}

type fakeRepo struct {
	saved []*Exchange
	err   error
}

func (f *fakeRepo) SaveExchange(_ context.Context, ex *Exchange) error {
	f.saved = append(f.saved, ex)
	return f.err
}

type fakeSearch struct{}

func (fakeSearch) Spec() ai.ToolSpec { return ai.ToolSpec{Name: tools.SearchToolName} }
func (fakeSearch) Invoke(context.Context, string) (string, error) {
	return "[]", nil
}

func newTestService(models *fakeModels, runner *fakeRunner, repo *fakeRepo) Service {
	return NewService(Config{
		Models: models,
		Runner: runner,
		Search: fakeSearch{},
		Repo:   repo,
		Logger: zerolog.Nop(),
	})
}

func validRequest() Request {
	return Request{
		ModelName:     "llama-3.3-70b-versatile",
		ModelProvider: "Groq",
		SystemPrompt:  "Act as a helpful assistant",
		Messages:      []string{"What is Go?"},
	}
}

func TestRespondReturnsLastAssistantMessage(t *testing.T) {
	models := &fakeModels{}
	runner := &fakeRunner{transcript: []ai.Turn{
		ai.AssistantTurn("", ai.ToolCall{ID: "1", Name: tools.ReasoningToolName, Arguments: "{}"}),
		ai.ToolTurn("1", tools.ReasoningToolName, "analysis"),
		ai.AssistantTurn("Go is a programming language."),
	}}
	repo := &fakeRepo{}

	got, err := newTestService(models, runner, repo).Respond(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got != "Go is a programming language." {
		t.Fatalf("unexpected answer %q", got)
	}

	if len(runner.turns) != 2 || runner.turns[0].Role != ai.RoleSystem || runner.turns[1].Role != ai.RoleUser {
		t.Fatalf("unexpected input turns %#v", runner.turns)
	}
	if runner.turns[0].Text != "Act as a helpful assistant" || runner.turns[1].Text != "What is Go?" {
		t.Fatalf("unexpected input text %#v", runner.turns)
	}
	if len(repo.saved) != 1 || repo.saved[0].Response != got || repo.saved[0].Error != "" {
		t.Fatalf("exchange not recorded: %#v", repo.saved)
	}
}

func TestRespondOneUserTurnPerMessage(t *testing.T) {
	runner := &fakeRunner{transcript: []ai.Turn{ai.AssistantTurn("ok")}}
	req := validRequest()
	req.Messages = []string{"first", "second", "third"}

	if _, err := newTestService(&fakeModels{}, runner, &fakeRepo{}).Respond(context.Background(), req); err != nil {
		t.Fatalf("respond: %v", err)
	}
	if len(runner.turns) != 4 {
		t.Fatalf("expected 4 turns, got %d", len(runner.turns))
	}
	for i, want := range req.Messages {
		if runner.turns[i+1].Role != ai.RoleUser || runner.turns[i+1].Text != want {
			t.Fatalf("turn %d = %#v", i+1, runner.turns[i+1])
		}
	}
}

func TestRespondUnsupportedProviderFailsBeforeModelCall(t *testing.T) {
	models := &fakeModels{}
	runner := &fakeRunner{}
	req := validRequest()
	req.ModelProvider = "Anthropic"

	_, err := newTestService(models, runner, &fakeRepo{}).Respond(context.Background(), req)
	if !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
	if !IsConfigError(err) {
		t.Fatalf("expected config error classification")
	}
	if len(models.builds) != 0 || runner.calls != 0 {
		t.Fatalf("model built or run started: builds=%v runs=%d", models.builds, runner.calls)
	}
}

func TestRespondProviderMatchesExactly(t *testing.T) {
	m := metrics.Global()
	unknown := m.ChatRequests.WithLabelValues("unknown", "rejected")
	before := testutil.ToFloat64(unknown)

	models := &fakeModels{}
	svc := NewService(Config{
		Models:  models,
		Runner:  &fakeRunner{},
		Logger:  zerolog.Nop(),
		Metrics: m,
	})
	for _, name := range []string{" Groq ", "groq", "Groq\n"} {
		req := validRequest()
		req.ModelProvider = name
		if _, err := svc.Respond(context.Background(), req); !errors.Is(err, providers.ErrUnsupported) {
			t.Fatalf("provider %q: expected ErrUnsupported, got %v", name, err)
		}
	}
	if len(models.builds) != 0 {
		t.Fatalf("model built for padded provider: %v", models.builds)
	}
	if got := testutil.ToFloat64(unknown); got != before+3 {
		t.Fatalf("expected unknown/rejected to grow by 3, got %v -> %v", before, got)
	}
}

func TestRespondInvalidModel(t *testing.T) {
	models := &fakeModels{}
	req := validRequest()
	req.ModelName = "gpt-4o-mini"

	_, err := newTestService(models, &fakeRunner{}, &fakeRepo{}).Respond(context.Background(), req)
	if !errors.Is(err, ErrInvalidModel) {
		t.Fatalf("expected ErrInvalidModel, got %v", err)
	}
	if len(models.builds) != 0 {
		t.Fatalf("model must not be built: %v", models.builds)
	}
}

func TestRespondToolSelection(t *testing.T) {
	cases := []struct {
		name      string
		search    bool
		reasoning bool
		want      []string
	}{
		{"none", false, false, []string{}},
		{"search", true, false, []string{tools.SearchToolName}},
		{"reasoning", false, true, []string{tools.ReasoningToolName, tools.LogicalAnalysisToolName}},
		{"all", true, true, []string{tools.SearchToolName, tools.ReasoningToolName, tools.LogicalAnalysisToolName}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			runner := &fakeRunner{transcript: []ai.Turn{ai.AssistantTurn("ok")}}
			req := validRequest()
			req.AllowSearch = tc.search
			req.AllowReasoning = tc.reasoning

			if _, err := newTestService(&fakeModels{}, runner, &fakeRepo{}).Respond(context.Background(), req); err != nil {
				t.Fatalf("respond: %v", err)
			}
			if !slices.Equal(runner.tools, tc.want) {
				t.Fatalf("tools = %v, want %v", runner.tools, tc.want)
			}
		})
	}
}

func TestRespondSentinelWithoutAssistantMessage(t *testing.T) {
	runner := &fakeRunner{transcript: nil}

	got, err := newTestService(&fakeModels{}, runner, &fakeRepo{}).Respond(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("respond: %v", err)
	}
	if got != "No AI response received." {
		t.Fatalf("expected sentinel, got %q", got)
	}
}

func TestRespondUpstreamFailure(t *testing.T) {
	boom := errors.New("429 too many requests")
	repo := &fakeRepo{}
	runner := &fakeRunner{err: boom}

	_, err := newTestService(&fakeModels{}, runner, repo).Respond(context.Background(), validRequest())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
	if IsConfigError(err) {
		t.Fatalf("upstream failure must not be a config error")
	}
	if len(repo.saved) != 1 || repo.saved[0].Error == "" {
		t.Fatalf("failed exchange not recorded: %#v", repo.saved)
	}
}

func TestRespondMissingAPIKey(t *testing.T) {
	models := &fakeModels{err: ai.ErrMissingAPIKey}
	runner := &fakeRunner{}

	_, err := newTestService(models, runner, &fakeRepo{}).Respond(context.Background(), validRequest())
	if !IsConfigError(err) {
		t.Fatalf("expected config error, got %v", err)
	}
	if runner.calls != 0 {
		t.Fatalf("run must not start")
	}
}

func TestRespondSearchNotConfigured(t *testing.T) {
	svc := NewService(Config{Models: &fakeModels{}, Runner: &fakeRunner{}, Logger: zerolog.Nop()})
	req := validRequest()
	req.AllowSearch = true

	if _, err := svc.Respond(context.Background(), req); !errors.Is(err, tools.ErrSearchUnavailable) {
		t.Fatalf("expected ErrSearchUnavailable, got %v", err)
	}
}

func TestRespondIgnoresRepoFailure(t *testing.T) {
	runner := &fakeRunner{transcript: []ai.Turn{ai.AssistantTurn("fine")}}
	repo := &fakeRepo{err: errors.New("db down")}

	got, err := newTestService(&fakeModels{}, runner, repo).Respond(context.Background(), validRequest())
	if err != nil || got != "fine" {
		t.Fatalf("expected answer despite repo failure, got %q %v", got, err)
	}
}
