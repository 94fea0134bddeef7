package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Vovarama1992/agent-form-bridge/internal/agent"
	"github.com/Vovarama1992/agent-form-bridge/internal/ai"
	"github.com/Vovarama1992/agent-form-bridge/internal/chat"
	"github.com/Vovarama1992/agent-form-bridge/internal/config"
	"github.com/Vovarama1992/agent-form-bridge/internal/metrics"
	"github.com/Vovarama1992/agent-form-bridge/internal/providers"
	"github.com/Vovarama1992/agent-form-bridge/internal/tools"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	setupLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// --- exchange log ---
	repo := chat.Repo(chat.NopRepo{})
	if cfg.DatabaseURL != "" {
		db, err := openDB(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize database")
		}
		defer db.Close()
		repo = chat.NewRepo(db)
		log.Info().Msg("exchange log enabled")
	}

	// --- agent wiring ---
	m := metrics.Global()
	httpClient := &http.Client{Timeout: cfg.HTTP.ClientTimeout}

	registry := ai.NewDefaultRegistry(ai.RegistryOptions{
		Groq:       ai.Endpoint{APIKey: cfg.Groq.APIKey, BaseURL: cfg.Groq.BaseURL},
		OpenAI:     ai.Endpoint{APIKey: cfg.OpenAI.APIKey, BaseURL: cfg.OpenAI.BaseURL},
		HTTPClient: httpClient,
	})
	catalog := providers.DefaultCatalog().
		WithOverride(providers.Groq, cfg.Groq.Models).
		WithOverride(providers.OpenAI, cfg.OpenAI.Models)

	var search agent.Tool
	if cfg.Search.APIKey != "" {
		search = tools.NewSearchTool(tools.SearchConfig{
			APIKey:     cfg.Search.APIKey,
			BaseURL:    cfg.Search.BaseURL,
			MaxResults: cfg.Search.MaxResults,
			Timeout:    cfg.HTTP.ClientTimeout,
		})
	} else {
		log.Warn().Msg("TAVILY_API_KEY not set, web search disabled")
	}

	agentRuntime := agent.NewRuntime(cfg.Agent.MaxSteps, log.With().Str("component", "agent").Logger(), m)

	chatService := chat.NewService(chat.Config{
		Models:  registry,
		Catalog: catalog,
		Runner:  agentRuntime,
		Search:  search,
		Repo:    repo,
		Logger:  log.With().Str("component", "chat").Logger(),
		Metrics: m,
	})
	chatHandler := chat.NewHandler(chatService, log.With().Str("component", "http").Logger())

	// --- router ---
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	chat.RegisterRoutes(r, chatHandler)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})
	r.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		log.Error().Err(err).Msg("server error")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("failed to stop http server")
	}
	log.Info().Msg("stopped")
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := chat.Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func setupLogger(level string) {
	zerolog.TimeFieldFormat = time.RFC3339
	zerolog.SetGlobalLevel(parseLogLevel(level))
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func parseLogLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
