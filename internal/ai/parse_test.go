package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimilarValid(t *testing.T) {
	raw := `[{"title":"3Sum","slug":"3sum","company_slug":"google","reason":"same two-pointer pattern"}]`
	got := parseSimilar(raw)
	require.Len(t, got, 1)
	assert.Equal(t, "3Sum", got[0].Title)
	assert.Equal(t, "same two-pointer pattern", got[0].Reason)
}

func TestParseSimilarMalformedIsEmptyNotError(t *testing.T) {
	assert.Empty(t, parseSimilar("I could not find anything similar."))
	assert.Empty(t, parseSimilar(`{"title":"not an array"}`))
	assert.Empty(t, parseSimilar(""))
}

func TestParseSimilarDropsIncompleteAndCaps(t *testing.T) {
	raw := `[
		{"title":"A","slug":"a","company_slug":"g","reason":"r"},
		{"title":"","slug":"b","company_slug":"g","reason":"missing title"},
		{"title":"C","slug":"c","company_slug":"g","reason":"r"},
		{"title":"D","slug":"d","company_slug":"g","reason":"r"},
		{"title":"E","slug":"e","company_slug":"g","reason":"r"},
		{"title":"F","slug":"f","company_slug":"g","reason":"r"},
		{"title":"G","slug":"g","company_slug":"g","reason":"r"}
	]`
	got := parseSimilar(raw)
	assert.Len(t, got, maxSimilarResults)
	assert.Equal(t, "A", got[0].Title)
}

func TestParseSimilarStripsFences(t *testing.T) {
	raw := "```json\n[{\"title\":\"A\",\"slug\":\"a\",\"company_slug\":\"g\",\"reason\":\"r\"}]\n```"
	assert.Len(t, parseSimilar(raw), 1)
}

func TestParseStrategyValid(t *testing.T) {
	raw := `{"strategy":"## Plan\nGrind graphs first.","focus_topics":["Graphs","DP","Arrays"],"checklist":["Solve Word Ladder","Review BFS"]}`
	s, err := parseStrategy(raw)
	require.NoError(t, err)
	assert.Contains(t, s.Markdown, "Grind graphs")
	assert.Len(t, s.FocusTopics, 3)
	assert.Len(t, s.Checklist, 2)
}

func TestParseStrategyMalformedIsError(t *testing.T) {
	_, err := parseStrategy("sorry, no plan today")
	assert.Error(t, err)

	// empty strategy text is not an answer
	_, err = parseStrategy(`{"strategy":"","focus_topics":["a","b","c"],"checklist":["x"]}`)
	assert.Error(t, err)
}

func TestParseStrategyTopicBounds(t *testing.T) {
	_, err := parseStrategy(`{"strategy":"plan","focus_topics":["only","two"],"checklist":["x"]}`)
	assert.Error(t, err)

	_, err = parseStrategy(`{"strategy":"plan","focus_topics":["1","2","3","4","5","6","7","8"],"checklist":["x"]}`)
	assert.Error(t, err)
}

func TestParseFlashcards(t *testing.T) {
	raw := `[{"front":"Detect a cycle in a linked list","back":"Floyd's tortoise and hare"},{"front":"","back":"dropped"}]`
	cards, err := parseFlashcards(raw)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "Floyd's tortoise and hare", cards[0].Back)

	_, err = parseFlashcards(`[]`)
	assert.Error(t, err)

	_, err = parseFlashcards(`not json`)
	assert.Error(t, err)
}

func TestParseTurn(t *testing.T) {
	turn, err := parseTurn(`{"message":"How would you handle duplicates?","finished":false}`)
	require.NoError(t, err)
	assert.False(t, turn.Finished)
	assert.NotEmpty(t, turn.Message)

	turn, err = parseTurn(`{"message":"That's all from me.","finished":true,"feedback":"Strong on data structures."}`)
	require.NoError(t, err)
	assert.True(t, turn.Finished)
	assert.Equal(t, "Strong on data structures.", turn.Feedback)

	_, err = parseTurn(`{"finished":true}`)
	assert.Error(t, err)
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
