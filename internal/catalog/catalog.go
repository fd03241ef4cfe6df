// Package catalog is the in-memory filter/sort/paginate engine for the
// problem catalog. It has no I/O: callers load the candidate set (one
// company's problems or the whole corpus) and the user's status map, the
// engine produces a deterministic bounded page.
package catalog

import (
	"sort"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
)

// DefaultPageSize applies when a caller passes a non-positive page size.
const DefaultPageSize = 9

type SortKey string

const (
	SortTitle      SortKey = "title"
	SortDifficulty SortKey = "difficulty"
	SortLastAsked  SortKey = "lastAsked"
)

// Query describes one filter/sort request. Zero values mean "all" for every
// filter. Status filtering needs the per-user status map passed alongside
// the candidate set; problems absent from the map count as StatusNone.
type Query struct {
	Difficulty model.Difficulty
	LastAsked  model.LastAskedPeriod
	Status     model.ProblemStatus
	Search     string
	Sort       SortKey
}

// OffsetPage is a numbered-pagination window over the matching set.
type OffsetPage struct {
	Items      []model.Problem `json:"items"`
	Total      int             `json:"total"`
	TotalPages int             `json:"total_pages"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
}

// CursorPage is an infinite-scroll window. NextCursor is the id of the last
// returned item and is empty on the final page.
type CursorPage struct {
	Items      []model.Problem `json:"items"`
	NextCursor string          `json:"next_cursor,omitempty"`
	HasMore    bool            `json:"has_more"`
}

// Select applies the filters and sort of q and returns the full matching
// set, ordered. Both paging modes window over this.
func Select(problems []model.Problem, statuses map[uuid.UUID]model.ProblemStatus, q Query) []model.Problem {
	out := make([]model.Problem, 0, len(problems))
	term := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range problems {
		if q.Difficulty != "" && p.Difficulty != q.Difficulty {
			continue
		}
		if q.LastAsked != "" && p.LastAsked != q.LastAsked {
			continue
		}
		if q.Status != "" && statusOf(p, statuses) != q.Status {
			continue
		}
		if term != "" && !matchesSearch(p, term) {
			continue
		}
		out = append(out, p)
	}

	sortProblems(out, q.Sort)
	return out
}

func statusOf(p model.Problem, statuses map[uuid.UUID]model.ProblemStatus) model.ProblemStatus {
	if s, ok := statuses[p.ProblemID]; ok && s != "" {
		return s
	}
	return model.StatusNone
}

func matchesSearch(p model.Problem, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	for _, tag := range p.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// sortProblems orders items in place. All comparators are stable so records
// tied on the sort key keep their input order.
func sortProblems(items []model.Problem, key SortKey) {
	switch key {
	case SortDifficulty:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].Difficulty.Rank() < items[j].Difficulty.Rank()
		})
	case SortLastAsked:
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].LastAsked.Rank() < items[j].LastAsked.Rank()
		})
	default: // SortTitle
		sort.SliceStable(items, func(i, j int) bool {
			a, b := strings.ToLower(items[i].Title), strings.ToLower(items[j].Title)
			if a != b {
				return a < b
			}
			return items[i].Title < items[j].Title
		})
	}
}

// PageOffset windows the ordered matching set by page number. The requested
// page is clamped into [1, totalPages]; an empty set still reports one
// (empty) page rather than an error.
func PageOffset(matched []model.Problem, page, pageSize int) OffsetPage {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(matched)
	totalPages := (total + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return OffsetPage{
		Items:      matched[start:end],
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PageSize:   pageSize,
	}
}

// PageCursor windows the ordered matching set after the item whose id equals
// cursor. An empty or stale cursor starts from the beginning; a stale cursor
// may re-deliver already-seen items but never fails.
func PageCursor(matched []model.Problem, cursor string, pageSize int) CursorPage {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	start := 0
	if cursor != "" {
		for i, p := range matched {
			if p.ProblemID.String() == cursor {
				start = i + 1
				break
			}
		}
	}

	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	items := matched[start:end]

	page := CursorPage{Items: items, HasMore: end < len(matched)}
	if page.HasMore && len(items) > 0 {
		page.NextCursor = items[len(items)-1].ProblemID.String()
	}
	return page
}

// SelectOffset runs Select and PageOffset in one call.
func SelectOffset(problems []model.Problem, statuses map[uuid.UUID]model.ProblemStatus, q Query, page, pageSize int) OffsetPage {
	return PageOffset(Select(problems, statuses, q), page, pageSize)
}

// SelectCursor runs Select and PageCursor in one call.
func SelectCursor(problems []model.Problem, statuses map[uuid.UUID]model.ProblemStatus, q Query, cursor string, pageSize int) CursorPage {
	return PageCursor(Select(problems, statuses, q), cursor, pageSize)
}
