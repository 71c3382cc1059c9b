package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v2"

	"github.com/andresuchdata/salesdash/internal/config"
	"github.com/andresuchdata/salesdash/internal/repository/postgres"
)

const migrationsTable = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name       TEXT        PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "db-url",
				Usage:   "Database connection string (defaults to the DB_* settings)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Action: func(c *cli.Context) error {
			dsn := c.String("db-url")
			if dsn == "" {
				dsn = config.Load().Database.DSN()
			}

			db, err := sql.Open("pgx", dsn)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(c.Context); err != nil {
				return fmt.Errorf("failed to ping database: %w", err)
			}

			applied, err := applyMigrations(c.Context, db)
			if err != nil {
				return err
			}
			log.Printf("applied %d migration(s)", applied)
			return nil
		},
	}
}

func applyMigrations(ctx context.Context, db *sql.DB) (int, error) {
	if _, err := db.ExecContext(ctx, migrationsTable); err != nil {
		return 0, fmt.Errorf("create migrations table: %w", err)
	}

	migrations, err := postgres.Migrations()
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, m := range migrations {
		var exists bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name,
		).Scan(&exists); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", m.Name, err)
		}
		if exists {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return applied, err
		}
		if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("apply migration %s: %w", m.Name, err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
			_ = tx.Rollback()
			return applied, fmt.Errorf("record migration %s: %w", m.Name, err)
		}
		if err := tx.Commit(); err != nil {
			return applied, err
		}
		log.Printf("applied %s", m.Name)
		applied++
	}
	return applied, nil
}
