package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
)

// Message is one entry of a mock-interview transcript.
type Message struct {
	Role    string `json:"role"` // "interviewer" or "candidate"
	Content string `json:"content"`
}

// Turn is the interviewer's next move in the conversation.
type Turn struct {
	Message  string `json:"message"`
	Finished bool   `json:"finished"`
	Feedback string `json:"feedback,omitempty"`
}

// InterviewTurn produces the interviewer's next message for an evolving
// transcript, anchored to one problem at one company. Feedback is only
// present once the model declares the interview finished.
func (c *Client) InterviewTurn(ctx context.Context, transcript []Message, company model.Company, problem model.Problem) (*Turn, error) {
	systemMsg := fmt.Sprintf(`You are a mock technical interviewer at %s, running the candidate through "%s" (%s, tags: %s).

Ask one thing at a time: clarify the approach, probe complexity, push on edge cases. Stay in character.

Output ONLY a valid JSON object:
- "message": your next message to the candidate
- "finished": true once the interview should end
- "feedback": when finished, 2-4 sentences of candid feedback; otherwise omit`,
		company.Name, problem.Title, problem.Difficulty, strings.Join(problem.Tags, ", "))

	messages := []map[string]string{{"role": "system", "content": systemMsg}}
	for _, m := range transcript {
		role := "assistant"
		if m.Role == "candidate" {
			role = "user"
		}
		messages = append(messages, map[string]string{"role": role, "content": m.Content})
	}
	if len(transcript) == 0 {
		messages = append(messages, map[string]string{"role": "user", "content": "I'm ready to start."})
	}

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages:    messages,
		MaxTokens:   1200,
		Temperature: 0.5,
	})
	if err != nil {
		return nil, err
	}

	return parseTurn(respStr)
}

func parseTurn(raw string) (*Turn, error) {
	var t Turn
	if err := json.Unmarshal([]byte(stripFences(raw)), &t); err != nil {
		return nil, fmt.Errorf("model returned malformed turn: %w", err)
	}
	if strings.TrimSpace(t.Message) == "" {
		return nil, fmt.Errorf("model returned empty interviewer message")
	}
	return &t, nil
}
