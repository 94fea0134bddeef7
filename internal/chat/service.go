package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
	"github.com/Vovarama1992/agent-form-bridge/internal/metrics"
	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
	"github.com/Vovarama1992/agent-form-bridge/internal/tools"
)

type Config struct {
	Models  ModelBuilder
	Catalog providers.Catalog
	Runner  Runner
	Search  agent.Tool // nil when web search is not configured
	Repo    Repo
	Logger  zerolog.Logger
	Metrics *metrics.Metrics
}

type service struct {
	models  ModelBuilder
	catalog providers.Catalog
	runner  Runner
	search  agent.Tool
	repo    Repo
	log     zerolog.Logger
	metrics *metrics.Metrics
}

func NewService(cfg Config) Service {
	if cfg.Catalog == nil {
		cfg.Catalog = providers.DefaultCatalog()
	}
	if cfg.Repo == nil {
		cfg.Repo = NopRepo{}
	}
	return &service{
		models:  cfg.Models,
		catalog: cfg.Catalog,
		runner:  cfg.Runner,
		search:  cfg.Search,
		repo:    cfg.Repo,
		log:     cfg.Logger,
		metrics: cfg.Metrics,
	}
}

// IsConfigError reports whether err was raised before the agent run started
// because the request or the server configuration cannot be served.
func IsConfigError(err error) bool {
	return errors.Is(err, providers.ErrUnsupported) ||
		errors.Is(err, ai.ErrMissingAPIKey) ||
		errors.Is(err, ErrInvalidModel) ||
		errors.Is(err, tools.ErrSearchUnavailable)
}

func (s *service) Catalog() providers.Catalog {
	return s.catalog
}

func (s *service) Respond(ctx context.Context, req Request) (string, error) {
	ex := &Exchange{
		Provider:  req.ModelProvider,
		Model:     req.ModelName,
		Query:     strings.Join(req.Messages, "\n"),
		CreatedAt: time.Now().UTC(),
	}

	answer, err := s.respond(ctx, req, ex)
	if err != nil {
		ex.Error = err.Error()
	} else {
		ex.Response = answer
	}
	s.observe(req.ModelProvider, err)
	s.record(ctx, ex)

	return answer, err
}

func (s *service) respond(ctx context.Context, req Request, ex *Exchange) (string, error) {
	provider, err := providers.Parse(req.ModelProvider)
	if err != nil {
		return "", err
	}
	if !s.catalog.Allows(provider, req.ModelName) {
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, req.ModelName)
	}

	toolList, err := tools.Build(tools.Flags{Search: req.AllowSearch, Reasoning: req.AllowReasoning}, s.search)
	if err != nil {
		return "", err
	}
	ex.Tools = tools.Names(toolList)

	model, err := s.models.Build(provider, req.ModelName)
	if err != nil {
		return "", err
	}

	turns := make([]ai.Turn, 0, len(req.Messages)+1)
	turns = append(turns, ai.SystemTurn(req.SystemPrompt))
	for _, m := range req.Messages {
		turns = append(turns, ai.UserTurn(m))
	}

	s.log.Info().
		Str("provider", string(provider)).
		Str("model", req.ModelName).
		Strs("tools", ex.Tools).
		Int("messages", len(req.Messages)).
		Msg("agent run")

	transcript, err := s.runner.Run(ctx, model, toolList, turns)
	if err != nil {
		return "", fmt.Errorf("agent run: %w", err)
	}

	text, ok := ai.LastAssistantText(transcript)
	if !ok {
		s.log.Warn().Int("turns", len(transcript)).Msg("agent run produced no assistant message")
		return NoResponse, nil
	}
	return text, nil
}

func (s *service) observe(raw string, err error) {
	if s.metrics == nil {
		return
	}
	label := "unknown"
	if p, perr := providers.Parse(raw); perr == nil {
		label = string(p)
	}
	outcome := "ok"
	switch {
	case err == nil:
	case IsConfigError(err):
		outcome = "rejected"
	default:
		outcome = "failed"
	}
	s.metrics.ChatRequests.WithLabelValues(label, outcome).Inc()
}

// record never fails the request.
func (s *service) record(ctx context.Context, ex *Exchange) {
	if err := s.repo.SaveExchange(context.WithoutCancel(ctx), ex); err != nil {
		s.log.Error().Err(err).Msg("save exchange")
	}
}
