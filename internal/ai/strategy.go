package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
)

const (
	minFocusTopics = 3
	maxFocusTopics = 7
)

// Strategy is the generated preparation plan for one company.
type Strategy struct {
	Markdown    string   `json:"strategy"`
	FocusTopics []string `json:"focus_topics"`
	Checklist   []string `json:"checklist"`
}

// CompanyStrategy generates a preparation strategy from the company's
// problem corpus and an optional target role level. Unlike similarity
// search, an empty strategy is not a meaningful answer, so malformed model
// output is an error.
func (c *Client) CompanyStrategy(ctx context.Context, company model.Company, problems []model.Problem, targetLevel string) (*Strategy, error) {
	systemMsg := fmt.Sprintf(`You are a coding-interview coach. Write a preparation strategy for interviews at a specific company, from the list of questions it is known to ask.

Output ONLY a valid JSON object, no markdown fences:
- "strategy": a markdown preparation strategy (what to practice, in what order, how long)
- "focus_topics": array of %d to %d topic names, most important first
- "checklist": array of 5 to 12 short actionable checklist items

Ground everything in the supplied problems. Do not invent problems.`, minFocusTopics, maxFocusTopics)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Company: %s\n", company.Name)
	if targetLevel != "" {
		fmt.Fprintf(&sb, "Target role level: %s\n", targetLevel)
	}
	fmt.Fprintf(&sb, "Known problems (%d):\n", len(problems))
	for _, p := range problems {
		fmt.Fprintf(&sb, "- %s (%s), tags: %s\n", p.Title, p.Difficulty, strings.Join(p.Tags, ", "))
	}

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemMsg},
			{"role": "user", "content": sb.String()},
		},
		MaxTokens:   3000,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, err
	}

	return parseStrategy(respStr)
}

func parseStrategy(raw string) (*Strategy, error) {
	var s Strategy
	if err := json.Unmarshal([]byte(stripFences(raw)), &s); err != nil {
		return nil, fmt.Errorf("model returned malformed strategy: %w", err)
	}
	if strings.TrimSpace(s.Markdown) == "" {
		return nil, fmt.Errorf("model returned empty strategy")
	}
	if len(s.FocusTopics) < minFocusTopics || len(s.FocusTopics) > maxFocusTopics {
		return nil, fmt.Errorf("model returned %d focus topics, want %d-%d", len(s.FocusTopics), minFocusTopics, maxFocusTopics)
	}
	if len(s.Checklist) == 0 {
		return nil, fmt.Errorf("model returned empty checklist")
	}
	return &s, nil
}
