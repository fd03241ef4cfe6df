package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Rank returns the ordinal used for difficulty sorting, Easy < Medium < Hard.
// Unknown values sort after Hard.
func (d Difficulty) Rank() int {
	switch d {
	case DifficultyEasy:
		return 1
	case DifficultyMedium:
		return 2
	case DifficultyHard:
		return 3
	}
	return 4
}

// ParseDifficulty validates a client-supplied difficulty against the fixed
// enumeration, tolerating case differences.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return DifficultyEasy, nil
	case "medium":
		return DifficultyMedium, nil
	case "hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("invalid difficulty %q (must be Easy, Medium or Hard)", s)
}

// LastAskedPeriod is the recency bucket for when a problem was last asked.
type LastAskedPeriod string

const (
	LastAsked30Days   LastAskedPeriod = "last_30_days"
	LastAsked3Months  LastAskedPeriod = "last_3_months"
	LastAsked6Months  LastAskedPeriod = "last_6_months"
	LastAskedOlder    LastAskedPeriod = "older_than_6_months"
	lastAskedMaxRank                  = 5
)

// Rank returns the ordinal used for recency sorting. An empty (unknown)
// bucket sorts after every known bucket.
func (p LastAskedPeriod) Rank() int {
	switch p {
	case LastAsked30Days:
		return 1
	case LastAsked3Months:
		return 2
	case LastAsked6Months:
		return 3
	case LastAskedOlder:
		return 4
	}
	return lastAskedMaxRank
}

// ParseLastAskedPeriod accepts both the canonical bucket names and the
// spreadsheet-facing spellings ("30 days", "3 months", ...).
func ParseLastAskedPeriod(s string) (LastAskedPeriod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "last_30_days", "last 30 days", "30 days", "within 30 days":
		return LastAsked30Days, nil
	case "last_3_months", "last 3 months", "3 months", "within 3 months":
		return LastAsked3Months, nil
	case "last_6_months", "last 6 months", "6 months", "within 6 months":
		return LastAsked6Months, nil
	case "older_than_6_months", "older than 6 months", "older", "more than 6 months":
		return LastAskedOlder, nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("invalid last asked period %q", s)
}

// Problem is one interview question owned by exactly one company.
// NormalizedTitle is always the lower-cased title and, together with
// CompanyID, uniquely identifies the problem; resubmission under the same
// normalized title updates the existing record instead of creating a new one.
type Problem struct {
	ProblemID       uuid.UUID       `json:"problem_id"`
	CompanyID       uuid.UUID       `json:"company_id"`
	Title           string          `json:"title"`
	NormalizedTitle string          `json:"-"`
	Slug            string          `json:"slug"`
	Difficulty      Difficulty      `json:"difficulty"`
	Tags            []string        `json:"tags"`
	Link            string          `json:"link"`
	LastAsked       LastAskedPeriod `json:"last_asked,omitempty"`
	CompanySlug     string          `json:"company_slug"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type CreateProblemReq struct {
	CompanySlug string   `json:"company_slug" binding:"required"`
	Title       string   `json:"title" binding:"required"`
	Difficulty  string   `json:"difficulty" binding:"required"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link"`
	LastAsked   string   `json:"last_asked"`
}

type UpsertResult struct {
	ProblemID uuid.UUID `json:"problem_id"`
	Updated   bool      `json:"updated"`
}

type ListProblemsQuery struct {
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=9"`
	Difficulty string `form:"difficulty"`
	LastAsked  string `form:"last_asked"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	Sort       string `form:"sort,default=title"`
}

type GlobalProblemsQuery struct {
	Cursor     string `form:"cursor"`
	PageSize   int    `form:"page_size,default=15"`
	Difficulty string `form:"difficulty"`
	LastAsked  string `form:"last_asked"`
	Status     string `form:"status"`
	Search     string `form:"search"`
	Sort       string `form:"sort,default=title"`
}
