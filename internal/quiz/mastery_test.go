package quiz

import (
	"testing"

	"github.com/studypal/backend/internal/models"
)

func TestMasteryNoProgress(t *testing.T) {
	set := testSet([2]string{"A", "a"}, [2]string{"B", "b"})
	if got := Mastery(set); got != 0 {
		t.Errorf("Mastery with no judgments = %d, want 0", got)
	}
}

func TestMasteryThreshold(t *testing.T) {
	set := testSet([2]string{"A", "a"}, [2]string{"B", "b"}, [2]string{"C", "c"}, [2]string{"D", "d"})

	set.Progress(set.Flashcards[0].ID).Correct = 2
	set.Progress(set.Flashcards[1].ID).Correct = 1
	set.Progress(set.Flashcards[2].ID).Correct = 5

	// 2 of 4 cards at or past the threshold
	if got := Mastery(set); got != 50 {
		t.Errorf("Mastery = %d, want 50", got)
	}
}

func TestMasteryIncorrectDoesNotOffset(t *testing.T) {
	set := testSet([2]string{"A", "a"})

	stats := set.Progress(set.Flashcards[0].ID)
	stats.Correct = 2
	stats.Incorrect = 10

	if got := Mastery(set); got != 100 {
		t.Errorf("Mastery = %d, incorrect judgments must not undo mastery", got)
	}
}

func TestMasteryRounds(t *testing.T) {
	set := testSet([2]string{"A", "a"}, [2]string{"B", "b"}, [2]string{"C", "c"})
	set.Progress(set.Flashcards[0].ID).Correct = 3

	// 1/3 rounds to 33
	if got := Mastery(set); got != 33 {
		t.Errorf("Mastery = %d, want 33", got)
	}

	set.Progress(set.Flashcards[1].ID).Correct = 2

	// 2/3 rounds to 67
	if got := Mastery(set); got != 67 {
		t.Errorf("Mastery = %d, want 67", got)
	}
}

func TestMasteryDenominatorIsCurrentCardCount(t *testing.T) {
	set := testSet([2]string{"A", "a"}, [2]string{"B", "b"})
	set.Progress(set.Flashcards[0].ID).Correct = 2
	set.Progress(set.Flashcards[1].ID).Correct = 2

	if got := Mastery(set); got != 100 {
		t.Fatalf("Mastery = %d, want 100", got)
	}

	// Replacing the cards drops the old counters with them.
	err := set.ReplaceCards([]models.Flashcard{
		{Front: "X", Back: "x"},
		{Front: "Y", Back: "y"},
	})
	if err != nil {
		t.Fatalf("ReplaceCards returned error: %v", err)
	}

	if got := Mastery(set); got != 0 {
		t.Errorf("Mastery after replacing all cards = %d, want 0", got)
	}
}
