package assistant

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/studypal/backend/internal/models"
)

// ParseFlashcards decodes the model's card list. The prompt asks for a bare
// JSON array, but a {"flashcards": [...]} wrapper is tolerated. Cards with
// an empty side are dropped; an empty result is an error so the caller can
// fall back to the heuristic extractor.
func ParseFlashcards(responseBody string) ([]models.CardInput, error) {
	cleaned := stripCodeFences(responseBody)

	var cards []models.CardInput
	if err := json.Unmarshal([]byte(cleaned), &cards); err != nil {
		var wrapper struct {
			Flashcards []models.CardInput `json:"flashcards"`
		}
		if werr := json.Unmarshal([]byte(cleaned), &wrapper); werr != nil {
			return nil, fmt.Errorf("failed to parse JSON response: %w", err)
		}
		cards = wrapper.Flashcards
	}

	var valid []models.CardInput
	for _, c := range cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		valid = append(valid, models.CardInput{Front: front, Back: back})
	}

	if len(valid) == 0 {
		return nil, fmt.Errorf("no usable flashcards in response")
	}
	return valid, nil
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```json") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimSpace(s)
	} else if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSpace(s)
	}
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
		s = strings.TrimSpace(s)
	}
	return s
}
