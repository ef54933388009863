package models

import (
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Subject string

const (
	SubjectEnglish Subject = "English"
	SubjectScience Subject = "Science"
	SubjectMath    Subject = "Math"
	SubjectHistory Subject = "History"
	SubjectOther   Subject = "Other"
)

var ValidSubjects = map[Subject]bool{
	SubjectEnglish: true,
	SubjectScience: true,
	SubjectMath:    true,
	SubjectHistory: true,
	SubjectOther:   true,
}

// Flashcard is one front/back card. ID is assigned when the owning set is
// built and stays with the card across edits, so progress counters survive
// reordering and deletion of other cards.
type Flashcard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back"`
}

// CardStats holds cumulative self-graded judgments for one card.
type CardStats struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

type StudySet struct {
	ID           int64                 `json:"id"`
	Title        string                `json:"title"`
	Subject      Subject               `json:"subject"`
	Flashcards   []Flashcard           `json:"flashcards"`
	CardProgress map[string]*CardStats `json:"card_progress"`
	CreatedAt    time.Time             `json:"created_at"`
}

// CardInput is an unvalidated card as submitted by the editor. Cards with an
// empty front or back are silently dropped when the set is built.
type CardInput struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

const cardIDLength = 12

// NewCardID returns a fresh flashcard identifier.
func NewCardID() string {
	id, err := gonanoid.New(cardIDLength)
	if err != nil {
		// nanoid only fails when the OS entropy source does
		panic(fmt.Sprintf("generate card id: %v", err))
	}
	return id
}

// NewStudySet validates and builds a study set from editor input. Empty-sided
// cards are stripped; at least one complete card must remain.
func NewStudySet(title string, subject Subject, cards []CardInput) (*StudySet, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if !ValidSubjects[subject] {
		return nil, fmt.Errorf("invalid subject %q", subject)
	}

	var flashcards []Flashcard
	for _, c := range cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		flashcards = append(flashcards, Flashcard{ID: NewCardID(), Front: front, Back: back})
	}

	if len(flashcards) == 0 {
		return nil, fmt.Errorf("at least one complete flashcard (both front and back) is required")
	}

	now := time.Now()
	return &StudySet{
		ID:           now.UnixMilli(),
		Title:        title,
		Subject:      subject,
		Flashcards:   flashcards,
		CardProgress: make(map[string]*CardStats),
		CreatedAt:    now,
	}, nil
}

// ReplaceCards swaps the set's card list for an edited one, keeping existing
// ids (and therefore progress) for surviving cards and assigning fresh ids to
// new ones. Progress entries for removed cards are dropped.
func (s *StudySet) ReplaceCards(cards []Flashcard) error {
	var kept []Flashcard
	for _, c := range cards {
		front := strings.TrimSpace(c.Front)
		back := strings.TrimSpace(c.Back)
		if front == "" || back == "" {
			continue
		}
		if c.ID == "" {
			c.ID = NewCardID()
		}
		kept = append(kept, Flashcard{ID: c.ID, Front: front, Back: back})
	}
	if len(kept) == 0 {
		return fmt.Errorf("at least one complete flashcard (both front and back) is required")
	}

	s.Flashcards = kept
	alive := make(map[string]bool, len(kept))
	for _, c := range kept {
		alive[c.ID] = true
	}
	for id := range s.CardProgress {
		if !alive[id] {
			delete(s.CardProgress, id)
		}
	}
	return nil
}

// Progress returns the stats entry for a card, creating it on first use.
func (s *StudySet) Progress(cardID string) *CardStats {
	if s.CardProgress == nil {
		s.CardProgress = make(map[string]*CardStats)
	}
	stats, ok := s.CardProgress[cardID]
	if !ok {
		stats = &CardStats{}
		s.CardProgress[cardID] = stats
	}
	return stats
}
