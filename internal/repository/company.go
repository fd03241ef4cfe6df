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

const companyColumns = `company_id, name, normalized_name, slug, logo_url, description, website,
	total_problems, easy_count, medium_count, hard_count,
	asked_30d, asked_3m, asked_6m, asked_older, common_tags,
	aggregates_updated_at, created_at, updated_at`

func scanCompany(row pgx.Row) (*model.Company, error) {
	var c model.Company
	err := row.Scan(
		&c.CompanyID, &c.Name, &c.NormalizedName, &c.Slug, &c.LogoURL, &c.Description, &c.Website,
		&c.TotalProblems, &c.DifficultyCounts.Easy, &c.DifficultyCounts.Medium, &c.DifficultyCounts.Hard,
		&c.RecencyCounts.Last30Days, &c.RecencyCounts.Last3M, &c.RecencyCounts.Last6M, &c.RecencyCounts.Older,
		&c.CommonTags, &c.AggregatesUpdatedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan company: %w", err)
	}
	return &c, nil
}

func (r *Repository) GetCompany(ctx context.Context, companyID uuid.UUID) (*model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1`
	return scanCompany(r.db.QueryRow(ctx, q, companyID))
}

func (r *Repository) GetCompanyBySlug(ctx context.Context, slug string) (*model.Company, error) {
	q := `SELECT ` + companyColumns + ` FROM companies WHERE slug = $1`
	return scanCompany(r.db.QueryRow(ctx, q, slug))
}

func (r *Repository) ListCompanies(ctx context.Context, search string, limit, offset int) ([]model.Company, int, error) {
	var total int
	const qTotal = `SELECT COUNT(1) FROM companies WHERE normalized_name LIKE '%' || lower($1) || '%'`
	if err := r.db.QueryRow(ctx, qTotal, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count companies: %w", err)
	}

	q := `SELECT ` + companyColumns + ` FROM companies
		WHERE normalized_name LIKE '%' || lower($1) || '%'
		ORDER BY name ASC LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, q, search, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("query companies: %w", err)
	}
	defer rows.Close()

	var out []model.Company
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, nil
}

// UpsertCompany creates the company or, when the normalized name already
// exists, returns the existing record's id with alreadyExists=true. The
// optional profile fields are refreshed on the existing record only where
// the submission actually carries them.
func (r *Repository) UpsertCompany(ctx context.Context, req model.CreateCompanyReq) (*model.CompanyUpsertResult, error) {
	normalized := pkg.NormalizeName(req.Name)
	slug := pkg.GenerateSlug(req.Name)

	const q = `
INSERT INTO companies (company_id, name, normalized_name, slug, logo_url, description, website)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (normalized_name) DO UPDATE SET
	logo_url = CASE WHEN EXCLUDED.logo_url <> '' THEN EXCLUDED.logo_url ELSE companies.logo_url END,
	description = CASE WHEN EXCLUDED.description <> '' THEN EXCLUDED.description ELSE companies.description END,
	website = CASE WHEN EXCLUDED.website <> '' THEN EXCLUDED.website ELSE companies.website END,
	updated_at = now()
RETURNING company_id, (xmax <> 0) AS existed
`
	row := r.db.QueryRow(ctx, q, uuid.New(), req.Name, normalized, slug, req.LogoURL, req.Description, req.Website)

	var res model.CompanyUpsertResult
	if err := row.Scan(&res.CompanyID, &res.AlreadyExists); err != nil {
		return nil, fmt.Errorf("upsert company: %w", err)
	}
	return &res, nil
}

// RenameCompany updates name and slug and cascades the denormalized
// company_slug onto child problems and per-user records in one transaction,
// keeping the redundant slugs consistent.
func (r *Repository) RenameCompany(ctx context.Context, companyID uuid.UUID, newName string) error {
	normalized := pkg.NormalizeName(newName)
	slug := pkg.GenerateSlug(newName)

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rename: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx,
		`UPDATE companies SET name = $1, normalized_name = $2, slug = $3, updated_at = now() WHERE company_id = $4`,
		newName, normalized, slug, companyID)
	if err != nil {
		return fmt.Errorf("rename company: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx,
		`UPDATE problems SET company_slug = $1, updated_at = now() WHERE company_id = $2`,
		slug, companyID); err != nil {
		return fmt.Errorf("cascade slug to problems: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE bookmarks b SET company_slug = $1 FROM problems p
		 WHERE b.problem_id = p.problem_id AND p.company_id = $2`,
		slug, companyID); err != nil {
		return fmt.Errorf("cascade slug to bookmarks: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE problem_statuses s SET company_slug = $1 FROM problems p
		 WHERE s.problem_id = p.problem_id AND p.company_id = $2`,
		slug, companyID); err != nil {
		return fmt.Errorf("cascade slug to statuses: %w", err)
	}

	return tx.Commit(ctx)
}

// RecomputeCompanyAggregates refreshes the denormalized counters from the
// problems table: total, difficulty histogram, recency histogram and the
// ten most common tags.
func (r *Repository) RecomputeCompanyAggregates(ctx context.Context, companyID uuid.UUID) error {
	const q = `
UPDATE companies SET
	total_problems = s.total,
	easy_count = s.easy, medium_count = s.medium, hard_count = s.hard,
	asked_30d = s.d30, asked_3m = s.m3, asked_6m = s.m6, asked_older = s.older,
	common_tags = COALESCE(t.tags, '{}'),
	aggregates_updated_at = now()
FROM (
	SELECT
		COUNT(1) AS total,
		COUNT(1) FILTER (WHERE difficulty = 'Easy') AS easy,
		COUNT(1) FILTER (WHERE difficulty = 'Medium') AS medium,
		COUNT(1) FILTER (WHERE difficulty = 'Hard') AS hard,
		COUNT(1) FILTER (WHERE last_asked = 'last_30_days') AS d30,
		COUNT(1) FILTER (WHERE last_asked = 'last_3_months') AS m3,
		COUNT(1) FILTER (WHERE last_asked = 'last_6_months') AS m6,
		COUNT(1) FILTER (WHERE last_asked = 'older_than_6_months') AS older
	FROM problems WHERE company_id = $1
) s
LEFT JOIN LATERAL (
	SELECT array_agg(tag ORDER BY cnt DESC) AS tags FROM (
		SELECT unnest(tags) AS tag, COUNT(1) AS cnt
		FROM problems WHERE company_id = $1
		GROUP BY tag ORDER BY cnt DESC LIMIT 10
	) top
) t ON true
WHERE companies.company_id = $1
`
	if _, err := r.db.Exec(ctx, q, companyID); err != nil {
		return fmt.Errorf("recompute aggregates: %w", err)
	}
	return nil
}
