package catalog

import (
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
)

// ParseQuery validates the raw filter/sort strings from a list request.
// Empty strings and the literal "all" both mean "no filter".
func ParseQuery(difficulty, lastAsked, status, search, sortKey string) (Query, error) {
	var q Query
	q.Search = search

	if s := filterValue(difficulty); s != "" {
		d, err := model.ParseDifficulty(s)
		if err != nil {
			return Query{}, err
		}
		q.Difficulty = d
	}
	if s := filterValue(lastAsked); s != "" {
		p, err := model.ParseLastAskedPeriod(s)
		if err != nil {
			return Query{}, err
		}
		q.LastAsked = p
	}
	if s := filterValue(status); s != "" {
		st, err := model.ParseProblemStatus(s)
		if err != nil {
			return Query{}, err
		}
		q.Status = st
	}

	switch SortKey(strings.TrimSpace(sortKey)) {
	case "", SortTitle:
		q.Sort = SortTitle
	case SortDifficulty:
		q.Sort = SortDifficulty
	case SortLastAsked:
		q.Sort = SortLastAsked
	default:
		return Query{}, fmt.Errorf("invalid sort key %q (must be title, difficulty or lastAsked)", sortKey)
	}

	return q, nil
}

func filterValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return ""
	}
	return s
}
