package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

const DefaultAPIURL = "http://127.0.0.1:9999"

var ErrEmptyQuery = errors.New("please enter a query to get a response from the agent")

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	ModelName      string   `json:"model_name"`
	ModelProvider  string   `json:"model_provider"`
	SystemPrompt   string   `json:"system_prompt"`
	Messages       []string `json:"messages"`
	AllowSearch    bool     `json:"allow_search"`
	AllowReasoning bool     `json:"allow_reasoning"`
}

// APIError is a non-200 answer from the agent service. The body is
// deliberately not kept.
type APIError struct {
	StatusCode int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API Error: %d", e.StatusCode)
}

// AgentError is an error message returned by the service in a 200 body.
type AgentError struct {
	Message string
}

func (e *AgentError) Error() string {
	return e.Message
}

type Client struct {
	http *resty.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultAPIURL
	}
	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(baseURL, "/"))
	client.SetTimeout(timeout)
	client.SetHeader("Accept", "application/json")
	return &Client{http: client}
}

// Ask sends one chat request and returns the agent's answer.
func (c *Client) Ask(ctx context.Context, req ChatRequest) (string, error) {
	if !hasQuery(req.Messages) {
		return "", ErrEmptyQuery
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		Post("/chat")
	if err != nil {
		return "", fmt.Errorf("send chat request: %w", err)
	}

	log.Debug().Int("status", resp.StatusCode()).Dur("elapsed", resp.Time()).Msg("chat response")

	if resp.StatusCode() != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode()}
	}

	var body struct {
		Response string  `json:"response"`
		Error    *string `json:"error"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if body.Error != nil {
		return "", &AgentError{Message: *body.Error}
	}
	return body.Response, nil
}

// Models fetches the selectable models from the service.
func (c *Client) Models(ctx context.Context) (providers.Catalog, error) {
	var out map[string][]string
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/models")
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode()}
	}

	catalog := providers.Catalog{}
	for name, models := range out {
		p, err := providers.Parse(name)
		if err != nil || len(models) == 0 {
			continue
		}
		catalog[p] = models
	}
	if len(catalog) == 0 {
		return nil, errors.New("fetch models: empty catalog")
	}
	return catalog, nil
}

// ModelsOrDefault falls back to the built-in catalog when the service cannot
// be asked.
func (c *Client) ModelsOrDefault(ctx context.Context) providers.Catalog {
	catalog, err := c.Models(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("using built-in model catalog")
		return providers.DefaultCatalog()
	}
	return catalog
}

func hasQuery(messages []string) bool {
	for _, m := range messages {
		if strings.TrimSpace(m) != "" {
			return true
		}
	}
	return false
}
