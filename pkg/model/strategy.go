package model

import (
	"time"

	"github.com/google/uuid"
)

// StrategyList is a user's saved preparation plan for one company: the
// generated strategy text, the focus topics the model picked, and a
// checklist the user ticks off.
type StrategyList struct {
	UserID      string          `json:"user_id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Strategy    string          `json:"strategy"`
	FocusTopics []string        `json:"focus_topics"`
	Checklist   []ChecklistItem `json:"checklist"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type ChecklistItem struct {
	Text string `json:"text"`
	Done bool   `json:"done"`
}

type GenerateStrategyReq struct {
	TargetLevel string `json:"target_level"`
}

type ToggleChecklistReq struct {
	CompanySlug string `json:"company_slug" binding:"required"`
	Index       int    `json:"index"`
	Done        bool   `json:"done"`
}
