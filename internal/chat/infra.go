package chat

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded schema migrations.
func Migrate(db *sql.DB) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

type repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) Repo {
	return &repo{db: db}
}

func (r *repo) SaveExchange(ctx context.Context, ex *Exchange) error {
	tools := ex.Tools
	if tools == nil {
		tools = []string{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO exchanges (provider, model, tools, query, response, error, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`,
		ex.Provider,
		ex.Model,
		pq.Array(tools),
		ex.Query,
		ex.Response,
		ex.Error,
		ex.CreatedAt,
	)
	return err
}

// NopRepo drops every exchange; used when no database is configured.
type NopRepo struct{}

func (NopRepo) SaveExchange(context.Context, *Exchange) error { return nil }
