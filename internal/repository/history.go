package repository

import (
	"context"
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
)

func (r *Repository) ListHistory(ctx context.Context, userID string, kind model.HistoryKind) ([]model.HistoryEntry, error) {
	const q = `
SELECT entry_id, user_id, kind, position, title, organization, period, details, created_at
FROM history_entries WHERE user_id = $1 AND kind = $2 ORDER BY position ASC
`
	rows, err := r.db.Query(ctx, q, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err := rows.Scan(&e.EntryID, &e.UserID, &e.Kind, &e.Position, &e.Title, &e.Organization, &e.Period, &e.Details, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		out = append(out, e)
	}
	return out, nil
}

// PutHistory replaces the user's ordered list for one kind wholesale. The
// client always submits the full list, so replace-all keeps positions dense.
func (r *Repository) PutHistory(ctx context.Context, userID string, kind model.HistoryKind, entries []model.HistoryEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin put history: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM history_entries WHERE user_id = $1 AND kind = $2`, userID, kind); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}

	const ins = `
INSERT INTO history_entries (entry_id, user_id, kind, position, title, organization, period, details)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	for i, e := range entries {
		if _, err := tx.Exec(ctx, ins, uuid.New(), userID, kind, i, e.Title, e.Organization, e.Period, e.Details); err != nil {
			return fmt.Errorf("insert history entry %d: %w", i, err)
		}
	}

	return tx.Commit(ctx)
}
