package models

import "testing"

func TestNewStudySetValidation(t *testing.T) {
	goodCards := []CardInput{{Front: "Q", Back: "A"}}

	tests := []struct {
		name    string
		title   string
		subject Subject
		cards   []CardInput
		wantErr bool
	}{
		{"valid", "Biology 101", SubjectScience, goodCards, false},
		{"empty title", "", SubjectScience, goodCards, true},
		{"whitespace title", "   ", SubjectScience, goodCards, true},
		{"bad subject", "Biology 101", Subject("Chemistry"), goodCards, true},
		{"no cards", "Biology 101", SubjectScience, nil, true},
		{"only incomplete cards", "Biology 101", SubjectScience, []CardInput{{Front: "Q", Back: ""}, {Front: "", Back: "A"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewStudySet(tt.title, tt.subject, tt.cards)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewStudySet() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStudySetStripsIncompleteCards(t *testing.T) {
	set, err := NewStudySet("Mixed", SubjectHistory, []CardInput{
		{Front: "Keep", Back: "this"},
		{Front: "Drop", Back: "  "},
		{Front: "  Trim  ", Back: "  me  "},
	})
	if err != nil {
		t.Fatalf("NewStudySet returned error: %v", err)
	}

	if len(set.Flashcards) != 2 {
		t.Fatalf("set has %d cards, want 2", len(set.Flashcards))
	}
	if set.Flashcards[1].Front != "Trim" || set.Flashcards[1].Back != "me" {
		t.Errorf("card values not trimmed: %+v", set.Flashcards[1])
	}
	for i, c := range set.Flashcards {
		if c.ID == "" {
			t.Errorf("card %d has no id", i)
		}
	}
	if set.Flashcards[0].ID == set.Flashcards[1].ID {
		t.Error("cards share an id")
	}
}

func TestReplaceCardsKeepsSurvivingProgress(t *testing.T) {
	set, err := NewStudySet("Edits", SubjectMath, []CardInput{
		{Front: "A", Back: "a"},
		{Front: "B", Back: "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	keptID := set.Flashcards[0].ID
	droppedID := set.Flashcards[1].ID
	set.Progress(keptID).Correct = 3
	set.Progress(droppedID).Correct = 2

	err = set.ReplaceCards([]Flashcard{
		{ID: keptID, Front: "A edited", Back: "a"},
		{Front: "C", Back: "c"},
	})
	if err != nil {
		t.Fatalf("ReplaceCards returned error: %v", err)
	}

	if len(set.Flashcards) != 2 {
		t.Fatalf("set has %d cards, want 2", len(set.Flashcards))
	}
	if set.Flashcards[0].ID != keptID {
		t.Error("surviving card lost its id")
	}
	if set.Flashcards[1].ID == "" || set.Flashcards[1].ID == droppedID {
		t.Error("new card should get a fresh id")
	}
	if stats := set.CardProgress[keptID]; stats == nil || stats.Correct != 3 {
		t.Errorf("surviving card progress = %+v, want Correct 3", set.CardProgress[keptID])
	}
	if _, ok := set.CardProgress[droppedID]; ok {
		t.Error("removed card's progress entry should be dropped")
	}
}

func TestReplaceCardsRejectsEmptyResult(t *testing.T) {
	set, err := NewStudySet("Edits", SubjectMath, []CardInput{{Front: "A", Back: "a"}})
	if err != nil {
		t.Fatal(err)
	}

	if err := set.ReplaceCards([]Flashcard{{Front: "", Back: "only a back"}}); err == nil {
		t.Error("ReplaceCards should reject an edit that leaves no complete cards")
	}
	if len(set.Flashcards) != 1 || set.Flashcards[0].Front != "A" {
		t.Error("failed edit must not change the set")
	}
}
