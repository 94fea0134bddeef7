package ai

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
)

var ErrMissingAPIKey = errors.New("provider api key is not configured")

// Factory builds a model client for one model name.
type Factory func(model string) (Model, error)

// Registry maps the closed set of providers to their model constructors.
type Registry struct {
	factories map[providers.Provider]Factory
}

func NewRegistry(factories map[providers.Provider]Factory) *Registry {
	m := make(map[providers.Provider]Factory, len(factories))
	for p, f := range factories {
		m[p] = f
	}
	return &Registry{factories: m}
}

func (r *Registry) Build(p providers.Provider, model string) (Model, error) {
	f, ok := r.factories[p]
	if !ok {
		return nil, fmt.Errorf("%w %q", providers.ErrUnsupported, string(p))
	}
	return f(model)
}

type Endpoint struct {
	APIKey  string
	BaseURL string
}

type RegistryOptions struct {
	Groq       Endpoint
	OpenAI     Endpoint
	HTTPClient *http.Client
}

// NewDefaultRegistry wires both providers to the OpenAI-compatible client.
// Groq speaks the same chat completions protocol under its own base URL.
func NewDefaultRegistry(opts RegistryOptions) *Registry {
	return NewRegistry(map[providers.Provider]Factory{
		providers.Groq:   openAICompatFactory(providers.Groq, opts.Groq, opts.HTTPClient),
		providers.OpenAI: openAICompatFactory(providers.OpenAI, opts.OpenAI, opts.HTTPClient),
	})
}

func openAICompatFactory(p providers.Provider, ep Endpoint, httpClient *http.Client) Factory {
	return func(model string) (Model, error) {
		if strings.TrimSpace(ep.APIKey) == "" {
			return nil, fmt.Errorf("%s: %w", p, ErrMissingAPIKey)
		}
		return NewOpenAIClient(ClientConfig{
			Provider:   p,
			APIKey:     ep.APIKey,
			BaseURL:    ep.BaseURL,
			Model:      model,
			HTTPClient: httpClient,
		}), nil
	}
}
