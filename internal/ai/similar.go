package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
)

const maxSimilarResults = 5

// SimilarProblem is one similarity hit with the model's rationale.
type SimilarProblem struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	CompanySlug string `json:"company_slug"`
	Reason      string `json:"reason"`
}

// SimilarProblems asks the model to pick the candidates most like target.
// Absent or malformed output yields an empty list, not an error: "no similar
// problems found" is a meaningful answer.
func (c *Client) SimilarProblems(ctx context.Context, target model.Problem, candidates []model.Problem) ([]SimilarProblem, error) {
	if len(candidates) == 0 {
		return []SimilarProblem{}, nil
	}

	systemMsg := fmt.Sprintf(`You are a coding-interview tutor. Given a target problem and a candidate list, pick the at most %d candidates most similar to the target (shared technique, data structure, or pattern).

Output ONLY a valid JSON array, no markdown or explanation. Each item:
- "title": the candidate's exact title
- "slug": the candidate's slug, copied exactly
- "company_slug": the candidate's company slug, copied exactly
- "reason": one sentence on why it is similar

Never include the target itself. If nothing is similar, return [].`, maxSimilarResults)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Target problem:\n%s (%s), tags: %s\n\nCandidates:\n",
		target.Title, target.Difficulty, strings.Join(target.Tags, ", "))
	for _, p := range candidates {
		if p.ProblemID == target.ProblemID {
			continue
		}
		fmt.Fprintf(&sb, "- title: %s | slug: %s | company_slug: %s | difficulty: %s | tags: %s\n",
			p.Title, p.Slug, p.CompanySlug, p.Difficulty, strings.Join(p.Tags, ", "))
	}

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemMsg},
			{"role": "user", "content": sb.String()},
		},
		MaxTokens:   1500,
		Temperature: 0.0,
	})
	if err != nil {
		return nil, err
	}

	return parseSimilar(respStr), nil
}

// parseSimilar is forgiving: anything that does not decode into the expected
// array shape degrades to an empty result.
func parseSimilar(raw string) []SimilarProblem {
	var out []SimilarProblem
	if err := json.Unmarshal([]byte(stripFences(raw)), &out); err != nil {
		return []SimilarProblem{}
	}

	valid := make([]SimilarProblem, 0, len(out))
	for _, s := range out {
		if s.Title == "" || s.Slug == "" {
			continue
		}
		valid = append(valid, s)
		if len(valid) == maxSimilarResults {
			break
		}
	}
	return valid
}
