package quiz

import (
	"math"

	"github.com/studypal/backend/internal/models"
)

// masteredThreshold is how many correct judgments a card needs before it
// counts as mastered. Incorrect judgments never offset it.
const masteredThreshold = 2

// Mastery returns the percentage of the set's cards, 0-100, that have been
// judged correct at least twice across all sessions. The denominator is the
// current card count, so deleting cards reshapes the score without touching
// any counters.
func Mastery(set *models.StudySet) int {
	if len(set.CardProgress) == 0 || len(set.Flashcards) == 0 {
		return 0
	}

	mastered := 0
	for _, card := range set.Flashcards {
		if stats, ok := set.CardProgress[card.ID]; ok && stats.Correct >= masteredThreshold {
			mastered++
		}
	}

	return int(math.Round(float64(mastered) / float64(len(set.Flashcards)) * 100))
}
