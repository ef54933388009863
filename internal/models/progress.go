package models

import "time"

// QuizHistoryLimit bounds the per-user history; the oldest entries are
// dropped first.
const QuizHistoryLimit = 50

// QuizRecord is one completed quiz pass.
type QuizRecord struct {
	Date     time.Time `json:"date"`
	SetTitle string    `json:"set_title"`
	Correct  int       `json:"correct"`
	Total    int       `json:"total"`
}

// ProgressLedger holds a user's running quiz totals and bounded history.
type ProgressLedger struct {
	TotalQuizzes  int          `json:"total_quizzes"`
	TotalCorrect  int          `json:"total_correct"`
	TotalAnswered int          `json:"total_answered"`
	QuizHistory   []QuizRecord `json:"quiz_history"`
}

// Record folds one completed quiz into the ledger, truncating history to the
// most recent QuizHistoryLimit entries.
func (p *ProgressLedger) Record(setTitle string, correct, answered int, when time.Time) {
	if correct > answered {
		correct = answered
	}
	p.TotalQuizzes++
	p.TotalCorrect += correct
	p.TotalAnswered += answered
	p.QuizHistory = append(p.QuizHistory, QuizRecord{
		Date:     when,
		SetTitle: setTitle,
		Correct:  correct,
		Total:    answered,
	})
	if len(p.QuizHistory) > QuizHistoryLimit {
		p.QuizHistory = p.QuizHistory[len(p.QuizHistory)-QuizHistoryLimit:]
	}
}

// Accuracy returns the lifetime percentage of correct judgments, 0 when
// nothing has been answered yet.
func (p *ProgressLedger) Accuracy() int {
	if p.TotalAnswered == 0 {
		return 0
	}
	return int(float64(p.TotalCorrect)/float64(p.TotalAnswered)*100 + 0.5)
}
