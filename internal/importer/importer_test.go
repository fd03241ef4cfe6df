package importer

import (
	"strings"
	"testing"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const problemsCSV = `Title,Difficulty,Link,Tags,Company Name,Last Asked Period
Two Sum,Easy,https://leetcode.com/problems/two-sum,"Array, Hash Table",Google,last_30_days
Merge Intervals,medium,https://leetcode.com/problems/merge-intervals,"Array,Sorting",Google,3 months
,Hard,,,Google,older
Word Ladder,Impossible,,Graph,Google,last_30_days
LRU Cache,Hard,https://leetcode.com/problems/lru-cache,Design,Amazon,
`

func TestValidateProblemsPerRow(t *testing.T) {
	header, rows, err := ParseSheet(strings.NewReader(problemsCSV), "problems.csv")
	require.NoError(t, err)

	ok, bad, err := ValidateProblems(header, rows)
	require.NoError(t, err)

	// rows 4 (missing title) and 5 (bad difficulty) fail independently,
	// everything else survives
	require.Len(t, ok, 3)
	require.Len(t, bad, 2)
	assert.Equal(t, 4, bad[0].Row)
	assert.Contains(t, bad[0].Err, "title is required")
	assert.Equal(t, 5, bad[1].Row)
	assert.Contains(t, bad[1].Err, "difficulty")

	two := ok[0]
	assert.Equal(t, 2, two.Row)
	assert.Equal(t, "Two Sum", two.Title)
	assert.Equal(t, model.DifficultyEasy, two.Difficulty)
	assert.Equal(t, []string{"Array", "Hash Table"}, two.Tags)
	assert.Equal(t, model.LastAsked30Days, two.LastAsked)

	// spreadsheet spellings coerce to canonical buckets
	assert.Equal(t, model.DifficultyMedium, ok[1].Difficulty)
	assert.Equal(t, model.LastAsked3Months, ok[1].LastAsked)

	// empty recency is allowed (unknown bucket)
	assert.Equal(t, model.LastAskedPeriod(""), ok[2].LastAsked)
}

func TestValidateProblemsMissingColumn(t *testing.T) {
	csv := "Title,Difficulty\nTwo Sum,Easy\n"
	header, rows, err := ParseSheet(strings.NewReader(csv), "p.csv")
	require.NoError(t, err)

	_, _, err = ValidateProblems(header, rows)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required column")
}

func TestValidateProblemsHeaderCaseInsensitive(t *testing.T) {
	csv := "title,DIFFICULTY,link,tags,company name,last asked period\nTwo Sum,Easy,,Array,Google,older\n"
	header, rows, err := ParseSheet(strings.NewReader(csv), "p.csv")
	require.NoError(t, err)

	ok, bad, err := ValidateProblems(header, rows)
	require.NoError(t, err)
	assert.Empty(t, bad)
	require.Len(t, ok, 1)
	assert.Equal(t, model.LastAskedOlder, ok[0].LastAsked)
}

func TestValidateCompanies(t *testing.T) {
	csv := `Name,Logo,Website
Google,https://logo.dev/google.png,https://google.com
,,
Stripe,,
`
	header, rows, err := ParseSheet(strings.NewReader(csv), "companies.csv")
	require.NoError(t, err)

	ok, bad, err := ValidateCompanies(header, rows)
	require.NoError(t, err)
	require.Len(t, ok, 2)
	require.Len(t, bad, 1)
	assert.Equal(t, 3, bad[0].Row)

	assert.Equal(t, "Google", ok[0].Name)
	assert.Equal(t, "https://logo.dev/google.png", ok[0].LogoURL)
	// Description column absent from the sheet: optional, defaults empty
	assert.Empty(t, ok[0].Description)
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"Array", "Hash Table"}, SplitTags("Array, Hash Table"))
	assert.Equal(t, []string{"DP"}, SplitTags(" DP ,, "))
	assert.Empty(t, SplitTags(""))
}

func TestParseSheetRaggedRows(t *testing.T) {
	csv := "Name\nGoogle,extra,cells\nStripe\n"
	header, rows, err := ParseSheet(strings.NewReader(csv), "c.csv")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	ok, bad, err := ValidateCompanies(header, rows)
	require.NoError(t, err)
	assert.Len(t, ok, 2)
	assert.Empty(t, bad)
}
