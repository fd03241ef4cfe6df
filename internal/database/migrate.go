package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema statements applied at startup; every statement is idempotent so the
// service can run against a fresh or an existing database.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS companies (
		company_id uuid PRIMARY KEY,
		name text NOT NULL,
		normalized_name text NOT NULL UNIQUE,
		slug text NOT NULL UNIQUE,
		logo_url text NOT NULL DEFAULT '',
		description text NOT NULL DEFAULT '',
		website text NOT NULL DEFAULT '',
		total_problems int NOT NULL DEFAULT 0,
		easy_count int NOT NULL DEFAULT 0,
		medium_count int NOT NULL DEFAULT 0,
		hard_count int NOT NULL DEFAULT 0,
		asked_30d int NOT NULL DEFAULT 0,
		asked_3m int NOT NULL DEFAULT 0,
		asked_6m int NOT NULL DEFAULT 0,
		asked_older int NOT NULL DEFAULT 0,
		common_tags text[] NOT NULL DEFAULT '{}',
		aggregates_updated_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		problem_id uuid PRIMARY KEY,
		company_id uuid NOT NULL REFERENCES companies(company_id),
		title text NOT NULL,
		normalized_title text NOT NULL,
		slug text NOT NULL,
		difficulty text NOT NULL CHECK (difficulty IN ('Easy','Medium','Hard')),
		tags text[] NOT NULL DEFAULT '{}',
		link text NOT NULL DEFAULT '',
		last_asked text CHECK (last_asked IN ('last_30_days','last_3_months','last_6_months','older_than_6_months')),
		company_slug text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now(),
		UNIQUE (company_id, normalized_title)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_company ON problems(company_id)`,
	`CREATE TABLE IF NOT EXISTS bookmarks (
		user_id text NOT NULL,
		problem_id uuid NOT NULL REFERENCES problems(problem_id),
		company_slug text NOT NULL,
		problem_slug text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, problem_id)
	)`,
	`CREATE TABLE IF NOT EXISTS problem_statuses (
		user_id text NOT NULL,
		problem_id uuid NOT NULL REFERENCES problems(problem_id),
		status text NOT NULL CHECK (status IN ('todo','attempted','solved')),
		company_slug text NOT NULL,
		problem_slug text NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, problem_id)
	)`,
	`CREATE TABLE IF NOT EXISTS strategy_lists (
		user_id text NOT NULL,
		company_id uuid NOT NULL REFERENCES companies(company_id),
		strategy text NOT NULL,
		focus_topics text[] NOT NULL DEFAULT '{}',
		checklist jsonb NOT NULL DEFAULT '[]',
		updated_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, company_id)
	)`,
	`CREATE TABLE IF NOT EXISTS history_entries (
		entry_id uuid PRIMARY KEY,
		user_id text NOT NULL,
		kind text NOT NULL CHECK (kind IN ('education','work')),
		position int NOT NULL,
		title text NOT NULL,
		organization text NOT NULL DEFAULT '',
		period text NOT NULL DEFAULT '',
		details text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_user ON history_entries(user_id, kind, position)`,
}

// Migrate applies the schema statements in order.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i, err)
		}
	}
	return nil
}
