package chat

import (
	"context"
	"errors"
	"time"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

// NoResponse is returned when a run finishes without any assistant message.
const NoResponse = "No AI response received."

var ErrInvalidModel = errors.New("invalid model name, kindly select a valid AI model")

// Request is one form submission.
type Request struct {
	ModelName      string   `json:"model_name"`
	ModelProvider  string   `json:"model_provider"`
	SystemPrompt   string   `json:"system_prompt"`
	Messages       []string `json:"messages"`
	AllowSearch    bool     `json:"allow_search"`
	AllowReasoning bool     `json:"allow_reasoning"`
}

// Exchange is the audit record of one request.
type Exchange struct {
	Provider  string
	Model     string
	Tools     []string
	Query     string
	Response  string
	Error     string
	CreatedAt time.Time
}

// ModelBuilder resolves a provider and model name to a model client.
type ModelBuilder interface {
	Build(p providers.Provider, model string) (ai.Model, error)
}

// Runner runs an agent to completion and returns the full transcript.
type Runner interface {
	Run(ctx context.Context, model ai.Model, tools []agent.Tool, turns []ai.Turn) ([]ai.Turn, error)
}

// Repo: exchange log
type Repo interface {
	SaveExchange(ctx context.Context, ex *Exchange) error
}

type Service interface {
	Respond(ctx context.Context, req Request) (string, error)
	Catalog() providers.Catalog
}
