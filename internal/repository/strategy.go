package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (r *Repository) SaveStrategyList(ctx context.Context, list *model.StrategyList) error {
	checklist, err := json.Marshal(list.Checklist)
	if err != nil {
		return fmt.Errorf("marshal checklist: %w", err)
	}

	const q = `
INSERT INTO strategy_lists (user_id, company_id, strategy, focus_topics, checklist)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (user_id, company_id) DO UPDATE SET
	strategy = EXCLUDED.strategy,
	focus_topics = EXCLUDED.focus_topics,
	checklist = EXCLUDED.checklist,
	updated_at = now()
`
	if _, err := r.db.Exec(ctx, q, list.UserID, list.CompanyID, list.Strategy, list.FocusTopics, checklist); err != nil {
		return fmt.Errorf("save strategy list: %w", err)
	}
	return nil
}

func (r *Repository) GetStrategyList(ctx context.Context, userID string, companyID uuid.UUID) (*model.StrategyList, error) {
	const q = `
SELECT user_id, company_id, strategy, focus_topics, checklist, updated_at
FROM strategy_lists WHERE user_id = $1 AND company_id = $2
`
	var list model.StrategyList
	var checklist []byte
	row := r.db.QueryRow(ctx, q, userID, companyID)
	if err := row.Scan(&list.UserID, &list.CompanyID, &list.Strategy, &list.FocusTopics, &checklist, &list.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan strategy list: %w", err)
	}
	if err := json.Unmarshal(checklist, &list.Checklist); err != nil {
		return nil, fmt.Errorf("unmarshal checklist: %w", err)
	}
	return &list, nil
}

// ToggleStrategyItem flips the done flag on one checklist entry. The read
// and write are a single-document read-modify-write, matching the rest of
// the per-user mutations.
func (r *Repository) ToggleStrategyItem(ctx context.Context, userID string, companyID uuid.UUID, index int, done bool) (*model.StrategyList, error) {
	list, err := r.GetStrategyList(ctx, userID, companyID)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(list.Checklist) {
		return nil, fmt.Errorf("checklist index %d out of range", index)
	}
	list.Checklist[index].Done = done

	if err := r.SaveStrategyList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}
