package catalog

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func problem(title string, d model.Difficulty, tags ...string) model.Problem {
	return model.Problem{
		ProblemID:  uuid.New(),
		Title:      title,
		Difficulty: d,
		Tags:       tags,
	}
}

// the three-problem set from the list-view fixtures
func sampleSet() []model.Problem {
	return []model.Problem{
		problem("Two Sum", model.DifficultyEasy, "Array", "Hash Table"),
		problem("Merge Intervals", model.DifficultyMedium, "Array", "Sorting"),
		problem("Word Ladder", model.DifficultyHard, "Graph", "BFS"),
	}
}

func titles(items []model.Problem) []string {
	out := make([]string, len(items))
	for i, p := range items {
		out[i] = p.Title
	}
	return out
}

func TestSearchMatchesTitleOrTag(t *testing.T) {
	got := SelectOffset(sampleSet(), nil, Query{Search: "array", Sort: SortTitle}, 1, 10)
	assert.Equal(t, []string{"Merge Intervals", "Two Sum"}, titles(got.Items))
	assert.Equal(t, 2, got.Total)
}

func TestSearchWhitespaceIsNoOp(t *testing.T) {
	got := Select(sampleSet(), nil, Query{Search: "   "})
	assert.Len(t, got, 3)
}

func TestSearchCaseInsensitive(t *testing.T) {
	got := Select(sampleSet(), nil, Query{Search: "WORD lad"})
	require.Len(t, got, 1)
	assert.Equal(t, "Word Ladder", got[0].Title)
}

func TestDifficultyFilter(t *testing.T) {
	got := Select(sampleSet(), nil, Query{Difficulty: model.DifficultyHard})
	require.Len(t, got, 1)
	assert.Equal(t, "Word Ladder", got[0].Title)

	for _, p := range Select(sampleSet(), nil, Query{Difficulty: model.DifficultyEasy}) {
		assert.Equal(t, model.DifficultyEasy, p.Difficulty)
	}
}

func TestRecencyFilter(t *testing.T) {
	set := sampleSet()
	set[0].LastAsked = model.LastAsked30Days
	set[1].LastAsked = model.LastAsked3Months

	got := Select(set, nil, Query{LastAsked: model.LastAsked30Days})
	require.Len(t, got, 1)
	assert.Equal(t, "Two Sum", got[0].Title)

	// unset bucket is not a match for any filter value
	got = Select(set, nil, Query{LastAsked: model.LastAskedOlder})
	assert.Empty(t, got)
}

func TestStatusFilterJoinsCallerMap(t *testing.T) {
	set := sampleSet()
	statuses := map[uuid.UUID]model.ProblemStatus{
		set[0].ProblemID: model.StatusSolved,
		set[1].ProblemID: model.StatusTodo,
	}

	got := Select(set, statuses, Query{Status: model.StatusSolved})
	require.Len(t, got, 1)
	assert.Equal(t, "Two Sum", got[0].Title)

	// problems absent from the map have status "none"
	got = Select(set, statuses, Query{Status: model.StatusNone})
	require.Len(t, got, 1)
	assert.Equal(t, "Word Ladder", got[0].Title)

	// no user context: everything is "none"
	got = Select(set, nil, Query{Status: model.StatusNone})
	assert.Len(t, got, 3)
}

func TestSortDifficultyStable(t *testing.T) {
	set := []model.Problem{
		problem("B Medium", model.DifficultyMedium),
		problem("Hard One", model.DifficultyHard),
		problem("A Medium", model.DifficultyMedium),
		problem("Easy One", model.DifficultyEasy),
	}
	got := Select(set, nil, Query{Sort: SortDifficulty})
	// ties keep input order: "B Medium" stays ahead of "A Medium"
	assert.Equal(t, []string{"Easy One", "B Medium", "A Medium", "Hard One"}, titles(got))
}

func TestSortLastAskedMissingSortsLast(t *testing.T) {
	set := []model.Problem{
		problem("No Bucket", model.DifficultyEasy),
		problem("Old", model.DifficultyEasy),
		problem("Fresh", model.DifficultyEasy),
	}
	set[1].LastAsked = model.LastAskedOlder
	set[2].LastAsked = model.LastAsked30Days

	got := Select(set, nil, Query{Sort: SortLastAsked})
	assert.Equal(t, []string{"Fresh", "Old", "No Bucket"}, titles(got))
}

func TestSortDeterministic(t *testing.T) {
	set := sampleSet()
	first := Select(set, nil, Query{Sort: SortTitle})
	second := Select(set, nil, Query{Sort: SortTitle})
	assert.Equal(t, titles(first), titles(second))
}

func TestOffsetPaging(t *testing.T) {
	set := sampleSet()

	page1 := SelectOffset(set, nil, Query{Sort: SortDifficulty}, 1, 2)
	assert.Equal(t, []string{"Two Sum", "Merge Intervals"}, titles(page1.Items))
	assert.Equal(t, 2, page1.TotalPages)
	assert.Equal(t, 1, page1.Page)
	assert.Equal(t, 3, page1.Total)

	page2 := SelectOffset(set, nil, Query{Sort: SortDifficulty}, 2, 2)
	assert.Equal(t, []string{"Word Ladder"}, titles(page2.Items))
}

func TestOffsetPageClamping(t *testing.T) {
	set := sampleSet()

	beyond := SelectOffset(set, nil, Query{}, 99, 2)
	assert.Equal(t, 2, beyond.Page)
	assert.NotEmpty(t, beyond.Items)

	under := SelectOffset(set, nil, Query{}, -3, 2)
	assert.Equal(t, 1, under.Page)
}

func TestOffsetEmptyResult(t *testing.T) {
	got := SelectOffset(sampleSet(), nil, Query{Search: "no such thing"}, 1, 9)
	assert.Empty(t, got.Items)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 1, got.TotalPages)
	assert.Equal(t, 1, got.Page)

	got = SelectOffset(nil, nil, Query{}, 1, 9)
	assert.Equal(t, 1, got.TotalPages)
}

func TestCursorPaging(t *testing.T) {
	set := sampleSet()

	first := SelectCursor(set, nil, Query{Sort: SortTitle}, "", 2)
	require.Len(t, first.Items, 2)
	assert.True(t, first.HasMore)
	assert.Equal(t, first.Items[1].ProblemID.String(), first.NextCursor)

	second := SelectCursor(set, nil, Query{Sort: SortTitle}, first.NextCursor, 2)
	require.Len(t, second.Items, 1)
	assert.False(t, second.HasMore)
	assert.Empty(t, second.NextCursor)
}

func TestCursorStaleFallsBackToStart(t *testing.T) {
	set := sampleSet()
	got := SelectCursor(set, nil, Query{Sort: SortTitle}, uuid.NewString(), 2)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Merge Intervals", got.Items[0].Title)
}

func TestCursorEmptySet(t *testing.T) {
	got := SelectCursor(nil, nil, Query{}, "", 5)
	assert.Empty(t, got.Items)
	assert.False(t, got.HasMore)
	assert.Empty(t, got.NextCursor)
}

func TestPageSizeOneAndDefault(t *testing.T) {
	set := sampleSet()

	single := SelectOffset(set, nil, Query{}, 1, 1)
	assert.Len(t, single.Items, 1)
	assert.Equal(t, 3, single.TotalPages)

	defaulted := SelectOffset(set, nil, Query{}, 1, 0)
	assert.Equal(t, DefaultPageSize, defaulted.PageSize)
}

// randomized corpus for the completeness/liveness properties
func randomSet(r *rand.Rand, n int) []model.Problem {
	diffs := []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard}
	buckets := []model.LastAskedPeriod{"", model.LastAsked30Days, model.LastAsked3Months, model.LastAsked6Months, model.LastAskedOlder}
	tags := []string{"Array", "Graph", "DP", "Greedy", "Hash Table"}

	set := make([]model.Problem, n)
	for i := range set {
		set[i] = model.Problem{
			ProblemID:  uuid.New(),
			Title:      fmt.Sprintf("Problem %03d", r.Intn(200)),
			Difficulty: diffs[r.Intn(len(diffs))],
			LastAsked:  buckets[r.Intn(len(buckets))],
			Tags:       []string{tags[r.Intn(len(tags))]},
		}
	}
	return set
}

func TestOffsetPaginationCompleteness(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for round := 0; round < 20; round++ {
		set := randomSet(r, 1+r.Intn(60))
		q := Query{Sort: []SortKey{SortTitle, SortDifficulty, SortLastAsked}[r.Intn(3)]}
		pageSize := 1 + r.Intn(7)

		want := Select(set, nil, q)

		var got []model.Problem
		first := SelectOffset(set, nil, q, 1, pageSize)
		for page := 1; page <= first.TotalPages; page++ {
			got = append(got, SelectOffset(set, nil, q, page, pageSize).Items...)
		}

		require.Equal(t, len(want), len(got))
		for i := range want {
			assert.Equal(t, want[i].ProblemID, got[i].ProblemID)
		}
	}
}

func TestCursorPaginationLiveness(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for round := 0; round < 20; round++ {
		set := randomSet(r, 1+r.Intn(60))
		q := Query{Sort: SortDifficulty}
		pageSize := 1 + r.Intn(7)

		want := Select(set, nil, q)

		seen := map[uuid.UUID]int{}
		var got []model.Problem
		cursor := ""
		for steps := 0; ; steps++ {
			require.Less(t, steps, len(set)+2, "cursor walk did not terminate")
			page := SelectCursor(set, nil, q, cursor, pageSize)
			for _, p := range page.Items {
				seen[p.ProblemID]++
			}
			got = append(got, page.Items...)
			if !page.HasMore {
				break
			}
			cursor = page.NextCursor
		}

		require.Equal(t, len(want), len(got), "every matching record visited exactly once")
		for id, n := range seen {
			assert.Equal(t, 1, n, "problem %s visited %d times", id, n)
		}
		for i := range want {
			assert.Equal(t, want[i].ProblemID, got[i].ProblemID, "sort order preserved across pages")
		}
	}
}

func TestFilterCorrectnessRandomized(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	set := randomSet(r, 80)

	for _, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard} {
		got := Select(set, nil, Query{Difficulty: d})
		wantCount := 0
		for _, p := range set {
			if p.Difficulty == d {
				wantCount++
			}
		}
		assert.Len(t, got, wantCount)
		for _, p := range got {
			assert.Equal(t, d, p.Difficulty)
		}
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("Easy", "all", "", "two", "difficulty")
	require.NoError(t, err)
	assert.Equal(t, model.DifficultyEasy, q.Difficulty)
	assert.Empty(t, q.LastAsked)
	assert.Equal(t, SortDifficulty, q.Sort)

	_, err = ParseQuery("Impossible", "", "", "", "")
	assert.Error(t, err)

	_, err = ParseQuery("", "", "", "", "points")
	assert.Error(t, err)

	q, err = ParseQuery("all", "last_30_days", "solved", "", "")
	require.NoError(t, err)
	assert.Equal(t, model.LastAsked30Days, q.LastAsked)
	assert.Equal(t, model.StatusSolved, q.Status)
	assert.Equal(t, SortTitle, q.Sort)
}
