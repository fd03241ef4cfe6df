package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/arvindri2005/company-leetcode-explorer/pkg/model"
)

const defaultFlashcardCount = 10

// Flashcard is one front/back revision card.
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

// Flashcards generates revision cards from a problem set. Malformed model
// output is an error; an empty deck is never a useful answer.
func (c *Client) Flashcards(ctx context.Context, problems []model.Problem, count int) ([]Flashcard, error) {
	if count <= 0 {
		count = defaultFlashcardCount
	}

	systemMsg := fmt.Sprintf(`You are a coding-interview tutor making flashcards. From the supplied problems, produce %d cards drilling the key technique behind each problem (not the problem statement itself).

Output ONLY a valid JSON array, no markdown. Each item:
- "front": a short prompt or question
- "back": the concise answer or technique summary`, count)

	var sb strings.Builder
	for _, p := range problems {
		fmt.Fprintf(&sb, "- %s (%s), tags: %s\n", p.Title, p.Difficulty, strings.Join(p.Tags, ", "))
	}

	respStr, err := c.Chat(ctx, ChatRequest{
		Messages: []map[string]string{
			{"role": "system", "content": systemMsg},
			{"role": "user", "content": sb.String()},
		},
		MaxTokens:   2500,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, err
	}

	return parseFlashcards(respStr)
}

func parseFlashcards(raw string) ([]Flashcard, error) {
	var cards []Flashcard
	if err := json.Unmarshal([]byte(stripFences(raw)), &cards); err != nil {
		return nil, fmt.Errorf("model returned malformed flashcards: %w", err)
	}

	valid := cards[:0]
	for _, card := range cards {
		if strings.TrimSpace(card.Front) == "" || strings.TrimSpace(card.Back) == "" {
			continue
		}
		valid = append(valid, card)
	}
	if len(valid) == 0 {
		return nil, fmt.Errorf("model returned no usable flashcards")
	}
	return valid, nil
}
