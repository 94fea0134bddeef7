package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
)

const SearchToolName = "tavily_search_results_json"

var ErrEmptySearchQuery = errors.New("search query is empty")

type SearchConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int
	Timeout    time.Duration
}

type SearchResult struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchTool queries the Tavily search API.
type SearchTool struct {
	client     *resty.Client
	apiKey     string
	maxResults int
}

var _ agent.Tool = (*SearchTool)(nil)

func NewSearchTool(cfg SearchConfig) *SearchTool {
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/"))
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Content-Type", "application/json")
	client.SetAuthToken(cfg.APIKey)

	return &SearchTool{
		client:     client,
		apiKey:     cfg.APIKey,
		maxResults: cfg.MaxResults,
	}
}

func (s *SearchTool) Spec() ai.ToolSpec {
	return ai.ToolSpec{
		Name:        SearchToolName,
		Description: "A search engine optimized for comprehensive, accurate, and trusted results. Useful for when you need to answer questions about current events. Input should be a search query.",
		Parameters: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "search query to look up",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (s *SearchTool) Invoke(ctx context.Context, arguments string) (string, error) {
	var in struct {
		Query string `json:"query"`
	}
	if err := decodeArgs(arguments, &in); err != nil {
		return "", err
	}

	results, err := s.Search(ctx, in.Query)
	if err != nil {
		return "", err
	}

	b, err := json.Marshal(results)
	if err != nil {
		return "", fmt.Errorf("encode search results: %w", err)
	}
	return string(b), nil
}

func (s *SearchTool) Search(ctx context.Context, query string) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptySearchQuery
	}

	var out struct {
		Results []SearchResult `json:"results"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(map[string]any{
			"api_key":      s.apiKey,
			"query":        query,
			"max_results":  s.maxResults,
			"search_depth": "advanced",
		}).
		SetResult(&out).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("tavily search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("tavily search: status %d", resp.StatusCode())
	}

	if out.Results == nil {
		out.Results = []SearchResult{}
	}
	return out.Results, nil
}
