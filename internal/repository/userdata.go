package repository

import (
	"context"
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
)

// ToggleBookmark adds the bookmark if absent and removes it otherwise,
// reporting the resulting presence. Two rapid toggles from the same user race
// as independent single-row writes; last one wins.
func (r *Repository) ToggleBookmark(ctx context.Context, userID string, p *model.Problem) (bool, error) {
	const del = `DELETE FROM bookmarks WHERE user_id = $1 AND problem_id = $2`
	tag, err := r.db.Exec(ctx, del, userID, p.ProblemID)
	if err != nil {
		return false, fmt.Errorf("delete bookmark: %w", err)
	}
	if tag.RowsAffected() > 0 {
		return false, nil
	}

	const ins = `
INSERT INTO bookmarks (user_id, problem_id, company_slug, problem_slug)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id, problem_id) DO NOTHING
`
	if _, err := r.db.Exec(ctx, ins, userID, p.ProblemID, p.CompanySlug, p.Slug); err != nil {
		return false, fmt.Errorf("insert bookmark: %w", err)
	}
	return true, nil
}

func (r *Repository) ListBookmarks(ctx context.Context, userID string) ([]model.Bookmark, error) {
	const q = `
SELECT user_id, problem_id, company_slug, problem_slug, created_at
FROM bookmarks WHERE user_id = $1 ORDER BY created_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query bookmarks: %w", err)
	}
	defer rows.Close()

	var out []model.Bookmark
	for rows.Next() {
		var b model.Bookmark
		if err := rows.Scan(&b.UserID, &b.ProblemID, &b.CompanySlug, &b.ProblemSlug, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bookmark: %w", err)
		}
		out = append(out, b)
	}
	return out, nil
}

// SetProblemStatus upserts the user's status row; StatusNone deletes it.
func (r *Repository) SetProblemStatus(ctx context.Context, userID string, p *model.Problem, status model.ProblemStatus) error {
	if status == model.StatusNone {
		const del = `DELETE FROM problem_statuses WHERE user_id = $1 AND problem_id = $2`
		if _, err := r.db.Exec(ctx, del, userID, p.ProblemID); err != nil {
			return fmt.Errorf("clear status: %w", err)
		}
		return nil
	}

	const q = `
INSERT INTO problem_statuses (user_id, problem_id, status, company_slug, problem_slug)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, problem_id) DO UPDATE SET status = EXCLUDED.status, updated_at = now()
`
	if _, err := r.db.Exec(ctx, q, userID, p.ProblemID, status, p.CompanySlug, p.Slug); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	return nil
}

// ListStatuses returns the user's full status records, most recent first.
func (r *Repository) ListStatuses(ctx context.Context, userID string) ([]model.StatusRecord, error) {
	const q = `
SELECT user_id, problem_id, status, company_slug, problem_slug, updated_at
FROM problem_statuses WHERE user_id = $1 ORDER BY updated_at DESC
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("query status records: %w", err)
	}
	defer rows.Close()

	var out []model.StatusRecord
	for rows.Next() {
		var s model.StatusRecord
		if err := rows.Scan(&s.UserID, &s.ProblemID, &s.Status, &s.CompanySlug, &s.ProblemSlug, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan status record: %w", err)
		}
		out = append(out, s)
	}
	return out, nil
}

// GetStatusMap returns the user's statuses for the catalog engine's status
// join. companyID == uuid.Nil means the global scope.
func (r *Repository) GetStatusMap(ctx context.Context, userID string, companyID uuid.UUID) (map[uuid.UUID]model.ProblemStatus, error) {
	q := `SELECT s.problem_id, s.status FROM problem_statuses s WHERE s.user_id = $1`
	args := []any{userID}
	if companyID != uuid.Nil {
		q = `
SELECT s.problem_id, s.status FROM problem_statuses s
JOIN problems p ON p.problem_id = s.problem_id
WHERE s.user_id = $1 AND p.company_id = $2`
		args = append(args, companyID)
	}

	rows, err := r.db.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID]model.ProblemStatus)
	for rows.Next() {
		var id uuid.UUID
		var s model.ProblemStatus
		if err := rows.Scan(&id, &s); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		out[id] = s
	}
	return out, nil
}
