package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/pkg"
	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const problemColumns = `problem_id, company_id, title, normalized_title, slug, difficulty,
	tags, link, COALESCE(last_asked, ''), company_slug, created_at, updated_at`

func scanProblem(row pgx.Row) (*model.Problem, error) {
	var p model.Problem
	err := row.Scan(
		&p.ProblemID, &p.CompanyID, &p.Title, &p.NormalizedTitle, &p.Slug, &p.Difficulty,
		&p.Tags, &p.Link, &p.LastAsked, &p.CompanySlug, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan problem: %w", err)
	}
	return &p, nil
}

// ListProblems loads every problem under one company. The catalog engine
// filters and pages the result in memory.
func (r *Repository) ListProblems(ctx context.Context, companyID uuid.UUID) ([]model.Problem, error) {
	q := `SELECT ` + problemColumns + ` FROM problems WHERE company_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q, companyID)
	if err != nil {
		return nil, fmt.Errorf("query problems: %w", err)
	}
	defer rows.Close()
	return collectProblems(rows)
}

// ListAllProblems loads the whole corpus for the global catalog view.
// company_slug is denormalized on each row so no join is needed.
func (r *Repository) ListAllProblems(ctx context.Context) ([]model.Problem, error) {
	q := `SELECT ` + problemColumns + ` FROM problems ORDER BY created_at ASC`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("query all problems: %w", err)
	}
	defer rows.Close()
	return collectProblems(rows)
}

func collectProblems(rows pgx.Rows) ([]model.Problem, error) {
	var out []model.Problem
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate problems: %w", err)
	}
	return out, nil
}

func (r *Repository) GetProblem(ctx context.Context, problemID uuid.UUID) (*model.Problem, error) {
	q := `SELECT ` + problemColumns + ` FROM problems WHERE problem_id = $1`
	return scanProblem(r.db.QueryRow(ctx, q, problemID))
}

func (r *Repository) GetProblemBySlug(ctx context.Context, companySlug, problemSlug string) (*model.Problem, error) {
	q := `SELECT ` + problemColumns + ` FROM problems WHERE company_slug = $1 AND slug = $2`
	return scanProblem(r.db.QueryRow(ctx, q, companySlug, problemSlug))
}

// UpsertProblem inserts the problem or, when (company_id, normalized_title)
// already exists, updates the mutable fields (tags, link, difficulty,
// last_asked) on the existing record and reports updated=true.
func (r *Repository) UpsertProblem(ctx context.Context, companyID uuid.UUID, companySlug string, title string, difficulty model.Difficulty, tags []string, link string, lastAsked model.LastAskedPeriod) (*model.UpsertResult, error) {
	if tags == nil {
		tags = []string{}
	}
	var lastAskedVal any
	if lastAsked != "" {
		lastAskedVal = string(lastAsked)
	}

	const q = `
INSERT INTO problems (problem_id, company_id, title, normalized_title, slug, difficulty, tags, link, last_asked, company_slug)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (company_id, normalized_title) DO UPDATE SET
	difficulty = EXCLUDED.difficulty,
	tags = EXCLUDED.tags,
	link = EXCLUDED.link,
	last_asked = EXCLUDED.last_asked,
	updated_at = now()
RETURNING problem_id, (xmax <> 0) AS existed
`
	row := r.db.QueryRow(ctx, q,
		uuid.New(), companyID, title, pkg.NormalizeName(title), pkg.GenerateSlug(title),
		difficulty, tags, link, lastAskedVal, companySlug,
	)

	var res model.UpsertResult
	if err := row.Scan(&res.ProblemID, &res.Updated); err != nil {
		return nil, fmt.Errorf("upsert problem: %w", err)
	}
	return &res, nil
}
