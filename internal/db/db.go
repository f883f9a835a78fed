package db

import (
	"context"
	"embed"
	"fmt"
	"strings"

	_ "github.com/glebarez/go-sqlite"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var embedMigrations embed.FS

// Open connects to the database named by databaseURL. Supported schemes are
// sqlite:// (path or :memory:) and postgres://. Migrations are applied before
// the pool is handed out, so callers always see the full schema.
func Open(ctx context.Context, databaseURL string) (*sqlx.DB, error) {
	var driver, dsn string

	switch {
	case strings.HasPrefix(databaseURL, "sqlite://"):
		driver = "sqlite"
		dsn = strings.TrimPrefix(databaseURL, "sqlite://")
	case strings.HasPrefix(databaseURL, "postgres://"):
		driver = "pgx"
		dsn = databaseURL
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL %q: must start with sqlite:// or postgres://", databaseURL)
	}

	pool, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pool.PingContext(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if driver == "sqlite" {
		// SQLite supports many readers but a single writer; a one-connection
		// pool also keeps :memory: databases from silently forking.
		pool.SetMaxOpenConns(1)
		pool.SetMaxIdleConns(1)

		pragmas := []string{
			"PRAGMA journal_mode = WAL;",
			"PRAGMA synchronous = NORMAL;",
			"PRAGMA foreign_keys = ON;",
			"PRAGMA busy_timeout = 5000;",
		}
		for _, pragma := range pragmas {
			if _, err := pool.ExecContext(ctx, pragma); err != nil {
				pool.Close()
				return nil, fmt.Errorf("failed to set pragma: %w", err)
			}
		}
	} else {
		pool.SetMaxOpenConns(25)
		pool.SetMaxIdleConns(10)
	}

	if err := migrate(pool, driver); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return pool, nil
}

// migrate applies the embedded goose migrations matching the active driver.
func migrate(pool *sqlx.DB, driver string) error {
	dialect := "sqlite3"
	dir := "migrations/sqlite"
	if driver == "pgx" {
		dialect = "postgres"
		dir = "migrations/postgres"
	}

	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.Up(pool.DB, dir); err != nil {
		return fmt.Errorf("goose up failed: %w", err)
	}
	return nil
}
