package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ProblemStatus is the per-user progress marker on a problem. StatusNone is
// represented in storage by the absence of a row.
type ProblemStatus string

const (
	StatusNone      ProblemStatus = "none"
	StatusTodo      ProblemStatus = "todo"
	StatusAttempted ProblemStatus = "attempted"
	StatusSolved    ProblemStatus = "solved"
)

func ParseProblemStatus(s string) (ProblemStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return StatusNone, nil
	case "todo":
		return StatusTodo, nil
	case "attempted":
		return StatusAttempted, nil
	case "solved":
		return StatusSolved, nil
	}
	return "", fmt.Errorf("invalid problem status %q", s)
}

// Bookmark carries denormalized slugs so the client can build a direct link
// without a second lookup.
type Bookmark struct {
	UserID      string    `json:"user_id"`
	ProblemID   uuid.UUID `json:"problem_id"`
	CompanySlug string    `json:"company_slug"`
	ProblemSlug string    `json:"problem_slug"`
	CreatedAt   time.Time `json:"created_at"`
}

type StatusRecord struct {
	UserID      string        `json:"user_id"`
	ProblemID   uuid.UUID     `json:"problem_id"`
	Status      ProblemStatus `json:"status"`
	CompanySlug string        `json:"company_slug"`
	ProblemSlug string        `json:"problem_slug"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type SetStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type HistoryKind string

const (
	HistoryEducation HistoryKind = "education"
	HistoryWork      HistoryKind = "work"
)

// HistoryEntry is one row of a user's education or work history. Entries are
// kept as an ordered list; Position is the index within the kind.
type HistoryEntry struct {
	EntryID      uuid.UUID   `json:"entry_id"`
	UserID       string      `json:"user_id"`
	Kind         HistoryKind `json:"kind"`
	Position     int         `json:"position"`
	Title        string      `json:"title"`
	Organization string      `json:"organization"`
	Period       string      `json:"period,omitempty"`
	Details      string      `json:"details,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

type PutHistoryReq struct {
	Kind    string `json:"kind" binding:"required"`
	Entries []struct {
		Title        string `json:"title" binding:"required"`
		Organization string `json:"organization"`
		Period       string `json:"period"`
		Details      string `json:"details"`
	} `json:"entries" binding:"required"`
}
