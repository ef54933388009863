package quiz

import (
	"errors"
	"time"

	"github.com/studypal/backend/internal/models"
)

var (
	// ErrEmptySet rejects starting (or retrying) a pass with zero cards.
	ErrEmptySet = errors.New("no flashcards to review")
	// ErrPrematureJudgment rejects a judgment on a card whose answer has not
	// been revealed.
	ErrPrematureJudgment = errors.New("current card has not been revealed")
	// ErrSessionComplete rejects judgments after every card has been judged.
	ErrSessionComplete = errors.New("session is already complete")
	// ErrSessionActive rejects completion or retry while cards remain.
	ErrSessionActive = errors.New("session still has unjudged cards")
	// ErrAlreadyFinalized guards the ledger from double-counting a pass.
	ErrAlreadyFinalized = errors.New("session has already been finalized")
)

// SessionCard is one card snapshotted into a session. It carries the card's
// stable id so a judgment resolves back to the owning set's counters without
// re-matching on front text (which misfires when two cards share a front).
type SessionCard struct {
	CardID string
	Front  string
	Back   string
}

// Result records one judgment.
type Result struct {
	Card    SessionCard
	Correct bool
}

// Session is one self-graded pass over an ordered card list. It is ephemeral:
// nothing here is persisted, and abandoning a session mid-way loses only the
// session itself.
type Session struct {
	Cards         []SessionCard
	CurrentIndex  int
	Correct       int
	Answered      int
	ShowingAnswer bool
	Results       []Result

	complete  bool
	finalized bool
}

// Summary reports a finished pass: the score, a qualitative message, and the
// missed cards in encounter order.
type Summary struct {
	Correct  int
	Answered int
	Message  string
	Missed   []models.Flashcard
}

// Start snapshots the set's cards, in order, into a fresh session.
func Start(set *models.StudySet) (*Session, error) {
	if len(set.Flashcards) == 0 {
		return nil, ErrEmptySet
	}
	cards := make([]SessionCard, len(set.Flashcards))
	for i, c := range set.Flashcards {
		cards[i] = SessionCard{CardID: c.ID, Front: c.Front, Back: c.Back}
	}
	return &Session{Cards: cards, Results: []Result{}}, nil
}

// Current returns the card under review.
func (s *Session) Current() SessionCard {
	return s.Cards[s.CurrentIndex]
}

// IsComplete reports whether every card has been judged.
func (s *Session) IsComplete() bool {
	return s.complete
}

// Reveal flips the current card from question to answer. Revealing an
// already-revealed card is a silent no-op.
func (s *Session) Reveal() {
	if s.complete {
		return
	}
	s.ShowingAnswer = true
}

// Judge records the user's self-grade for the current card, updates the
// owning set's counters, and advances the session. The card must have been
// revealed first.
func (s *Session) Judge(set *models.StudySet, correct bool) error {
	if s.complete {
		return ErrSessionComplete
	}
	if !s.ShowingAnswer {
		return ErrPrematureJudgment
	}

	card := s.Cards[s.CurrentIndex]
	stats := set.Progress(card.CardID)
	if correct {
		stats.Correct++
	} else {
		stats.Incorrect++
	}

	s.Results = append(s.Results, Result{Card: card, Correct: correct})
	s.Answered++
	if correct {
		s.Correct++
	}

	if s.CurrentIndex < len(s.Cards)-1 {
		s.CurrentIndex++
		s.ShowingAnswer = false
	} else {
		s.complete = true
	}
	return nil
}

// Complete folds the finished pass into the user's progress ledger and
// returns the summary. Callable exactly once, and only after the last card
// has been judged. Persisting the set and ledger is the caller's job; the
// engine only mutates the in-memory records.
func (s *Session) Complete(set *models.StudySet, ledger *models.ProgressLedger) (*Summary, error) {
	if !s.complete {
		return nil, ErrSessionActive
	}
	if s.finalized {
		return nil, ErrAlreadyFinalized
	}
	s.finalized = true

	ledger.Record(set.Title, s.Correct, s.Answered, time.Now())

	return &Summary{
		Correct:  s.Correct,
		Answered: s.Answered,
		Message:  scoreMessage(s.Correct, s.Answered),
		Missed:   s.missedCards(),
	}, nil
}

// Retry builds a fresh session over the cards missed in this pass, in the
// order they were encountered.
func (s *Session) Retry() (*Session, error) {
	if !s.complete {
		return nil, ErrSessionActive
	}
	var cards []SessionCard
	for _, r := range s.Results {
		if !r.Correct {
			cards = append(cards, r.Card)
		}
	}
	if len(cards) == 0 {
		return nil, ErrEmptySet
	}
	return &Session{Cards: cards, Results: []Result{}}, nil
}

func (s *Session) missedCards() []models.Flashcard {
	missed := []models.Flashcard{}
	for _, r := range s.Results {
		if !r.Correct {
			missed = append(missed, models.Flashcard{ID: r.Card.CardID, Front: r.Card.Front, Back: r.Card.Back})
		}
	}
	return missed
}

// scoreMessage picks the qualitative tier for a final score. Exactly half
// right lands in the lowest tier; the "good" tier needs a strict majority.
func scoreMessage(correct, answered int) string {
	switch {
	case correct == answered:
		return "Perfect score! You know this material well!"
	case correct*5 >= answered*4:
		return "Excellent work! Almost perfect!"
	case correct*2 > answered:
		return "Great job! Keep practicing the ones you missed."
	default:
		return "Good effort! Review the material and try again."
	}
}
