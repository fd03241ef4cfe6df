package fetcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProblemURL(t *testing.T) {
	slug, err := ParseProblemURL("https://leetcode.com/problems/two-sum/")
	require.NoError(t, err)
	assert.Equal(t, "two-sum", slug)

	slug, err = ParseProblemURL("https://www.leetcode.com/problems/lru-cache/description/")
	require.NoError(t, err)
	assert.Equal(t, "lru-cache", slug)
}

func TestParseProblemURLRejectsOtherHosts(t *testing.T) {
	_, err := ParseProblemURL("https://example.com/problems/two-sum/")
	assert.Error(t, err)
}

func TestParseProblemURLRejectsNonProblemPaths(t *testing.T) {
	_, err := ParseProblemURL("https://leetcode.com/discuss/post/12345/")
	assert.Error(t, err)
}
