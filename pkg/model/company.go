package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is one employer whose interview questions are catalogued.
// NormalizedName is always the lower-cased name and is the dedup key for
// submissions; Slug is derived deterministically from the name.
type Company struct {
	CompanyID      uuid.UUID `json:"company_id"`
	Name           string    `json:"name"`
	NormalizedName string    `json:"-"`
	Slug           string    `json:"slug"`
	LogoURL        string    `json:"logo_url,omitempty"`
	Description    string    `json:"description,omitempty"`
	Website        string    `json:"website,omitempty"`

	// Aggregates recomputed out-of-band whenever problems under the
	// company change.
	TotalProblems       int             `json:"total_problems"`
	DifficultyCounts    DifficultyStats `json:"difficulty_counts"`
	RecencyCounts       RecencyStats    `json:"recency_counts"`
	CommonTags          []string        `json:"common_tags"`
	AggregatesUpdatedAt *time.Time      `json:"aggregates_updated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DifficultyStats struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}

type RecencyStats struct {
	Last30Days int `json:"last_30_days"`
	Last3M     int `json:"last_3_months"`
	Last6M     int `json:"last_6_months"`
	Older      int `json:"older_than_6_months"`
}

type CreateCompanyReq struct {
	Name        string `json:"name" binding:"required"`
	LogoURL     string `json:"logo_url"`
	Description string `json:"description"`
	Website     string `json:"website"`
}

type RenameCompanyReq struct {
	Name string `json:"name" binding:"required"`
}

type CompanyUpsertResult struct {
	CompanyID     uuid.UUID `json:"company_id"`
	AlreadyExists bool      `json:"already_exists"`
}

type ListCompaniesQuery struct {
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=20"`
	Search   string `form:"search"`
	Sort     string `form:"sort,default=name"`
}
