package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

var ErrEmptyChoices = errors.New("model returned no choices")

type ClientConfig struct {
	Provider   providers.Provider
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client   *openai.Client
	model    string
	provider providers.Provider
}

var _ Model = (*OpenAIClient)(nil)

func NewOpenAIClient(cfg ClientConfig) *OpenAIClient {
	oc := openai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		oc.BaseURL = strings.TrimSuffix(base, "/")
	}
	if cfg.HTTPClient != nil {
		oc.HTTPClient = cfg.HTTPClient
	}

	return &OpenAIClient{
		client:   openai.NewClientWithConfig(oc),
		model:    cfg.Model,
		provider: cfg.Provider,
	}
}

func (c *OpenAIClient) Complete(ctx context.Context, turns []Turn, tools []ToolSpec) (Turn, error) {
	req := openai.ChatCompletionRequest{
		Model:    c.model,
		Messages: toOpenAIMessages(turns),
	}
	if len(tools) > 0 {
		req.Tools = toOpenAITools(tools)
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).
			Str("component", "ai").
			Str("provider", string(c.provider)).
			Str("model", c.model).
			Msg("chat completion failed")
		return Turn{}, fmt.Errorf("%s chat completion: %w", c.provider, err)
	}

	if len(resp.Choices) == 0 {
		return Turn{}, fmt.Errorf("%s: %w", c.provider, ErrEmptyChoices)
	}

	msg := resp.Choices[0].Message
	log.Debug().
		Str("component", "ai").
		Str("provider", string(c.provider)).
		Str("model", c.model).
		Int("tokens_in", resp.Usage.PromptTokens).
		Int("tokens_out", resp.Usage.CompletionTokens).
		Int("tool_calls", len(msg.ToolCalls)).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Msg("chat completion")

	return fromOpenAIMessage(msg), nil
}

func toOpenAIMessages(turns []Turn) []openai.ChatCompletionMessage {
	msgs := make([]openai.ChatCompletionMessage, 0, len(turns))
	for _, t := range turns {
		// go-openai drops an empty content field and the APIs reject a
		// system or user message without one. An empty message says nothing.
		if t.Text == "" && (t.Role == RoleSystem || t.Role == RoleUser) {
			continue
		}
		m := openai.ChatCompletionMessage{
			Role:    roleToOpenAI(t.Role),
			Content: t.Text,
		}
		switch t.Role {
		case RoleAssistant:
			for _, call := range t.ToolCalls {
				m.ToolCalls = append(m.ToolCalls, openai.ToolCall{
					ID:   call.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      call.Name,
						Arguments: call.Arguments,
					},
				})
			}
		case RoleTool:
			m.ToolCallID = t.ToolCallID
			m.Name = t.ToolName
		}
		msgs = append(msgs, m)
	}
	return msgs
}

func toOpenAITools(specs []ToolSpec) []openai.Tool {
	out := make([]openai.Tool, 0, len(specs))
	for _, s := range specs {
		params := s.Parameters
		if params == nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		out = append(out, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        s.Name,
				Description: s.Description,
				Parameters:  params,
			},
		})
	}
	return out
}

func fromOpenAIMessage(m openai.ChatCompletionMessage) Turn {
	calls := make([]ToolCall, 0, len(m.ToolCalls))
	for _, tc := range m.ToolCalls {
		calls = append(calls, ToolCall{
			ID:        tc.ID,
			Name:      tc.Function.Name,
			Arguments: tc.Function.Arguments,
		})
	}
	return AssistantTurn(m.Content, calls...)
}

func roleToOpenAI(r Role) string {
	switch r {
	case RoleSystem:
		return openai.ChatMessageRoleSystem
	case RoleAssistant:
		return openai.ChatMessageRoleAssistant
	case RoleTool:
		return openai.ChatMessageRoleTool
	default:
		return openai.ChatMessageRoleUser
	}
}
