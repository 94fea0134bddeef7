package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultTavilyBaseURL = "https://api.tavily.com"
)

var (
	ErrInvalidPort     = errors.New("PORT must be a number between 1 and 65535")
	ErrInvalidMaxSteps = errors.New("AGENT_MAX_STEPS must be > 0")
)

type Config struct {
	Port        string
	LogLevel    string
	DatabaseURL string

	HTTP   HTTPConfig
	Groq   ProviderConfig
	OpenAI ProviderConfig
	Search SearchConfig
	Agent  AgentConfig
}

type HTTPConfig struct {
	ClientTimeout   time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Models  []string
}

type SearchConfig struct {
	APIKey     string
	BaseURL    string
	MaxResults int
}

type AgentConfig struct {
	MaxSteps int
}

// Load reads the service configuration from the process environment.
// Callers are expected to have loaded .env beforehand.
func Load() (*Config, error) {
	cfg := &Config{
		Port:        envOr("PORT", "9999"),
		LogLevel:    strings.ToLower(envOr("LOG_LEVEL", "info")),
		DatabaseURL: envOr("DATABASE_URL", ""),
		HTTP: HTTPConfig{
			ClientTimeout:   envDuration("HTTP_TIMEOUT", 60*time.Second),
			ReadTimeout:     envDuration("HTTP_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    envDuration("HTTP_WRITE_TIMEOUT", 3*time.Minute),
			ShutdownTimeout: envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Groq: ProviderConfig{
			APIKey:  envOr("GROQ_API_KEY", ""),
			BaseURL: envOr("GROQ_BASE_URL", DefaultGroqBaseURL),
			Models:  envList("GROQ_MODELS"),
		},
		OpenAI: ProviderConfig{
			APIKey:  envOr("OPENAI_API_KEY", ""),
			BaseURL: envOr("OPENAI_BASE_URL", DefaultOpenAIBaseURL),
			Models:  envList("OPENAI_MODELS"),
		},
		Search: SearchConfig{
			APIKey:     envOr("TAVILY_API_KEY", ""),
			BaseURL:    envOr("TAVILY_BASE_URL", DefaultTavilyBaseURL),
			MaxResults: envInt("SEARCH_MAX_RESULTS", 2),
		},
		Agent: AgentConfig{
			MaxSteps: envInt("AGENT_MAX_STEPS", 25),
		},
	}

	if n, err := strconv.Atoi(cfg.Port); err != nil || n < 1 || n > 65535 {
		return nil, ErrInvalidPort
	}
	if cfg.Agent.MaxSteps <= 0 {
		return nil, ErrInvalidMaxSteps
	}
	if cfg.Search.MaxResults <= 0 {
		cfg.Search.MaxResults = 2
	}

	return cfg, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := envOr(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v := envOr(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

// envList splits a comma separated value, dropping empty items.
func envList(key string) []string {
	v := envOr(key, "")
	if v == "" {
		return nil
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
