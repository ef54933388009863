package models

import "time"

// ── Study Set API ─────────────────────────────────────────

type CreateSetRequest struct {
	Title   string      `json:"title"`
	Subject Subject     `json:"subject"`
	Cards   []CardInput `json:"cards"`
}

type UpdateSetRequest struct {
	Title   string      `json:"title"`
	Subject Subject     `json:"subject"`
	Cards   []Flashcard `json:"cards"`
}

// SetSummary is the dashboard view of one set.
type SetSummary struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Subject   Subject   `json:"subject"`
	CardCount int       `json:"card_count"`
	Mastery   int       `json:"mastery"`
	CreatedAt time.Time `json:"created_at"`
}

type SetListResponse struct {
	Sets       []SetSummary `json:"sets"`
	TotalCards int          `json:"total_cards"`
}

// ── Quiz API ──────────────────────────────────────────────

type JudgeRequest struct {
	Correct bool `json:"correct"`
}

// QuizStateResponse is the client's view of an active session.
type QuizStateResponse struct {
	SessionID     string       `json:"session_id"`
	SetID         int64        `json:"set_id"`
	SetTitle      string       `json:"set_title"`
	CardCount     int          `json:"card_count"`
	CurrentIndex  int          `json:"current_index"`
	Correct       int          `json:"correct"`
	Answered      int          `json:"answered"`
	ShowingAnswer bool         `json:"showing_answer"`
	Front         string       `json:"front"`
	Back          string       `json:"back,omitempty"`
	Complete      bool         `json:"complete"`
	Summary       *QuizSummary `json:"summary,omitempty"`
}

// QuizSummary reports a finished pass.
type QuizSummary struct {
	Correct  int         `json:"correct"`
	Answered int         `json:"answered"`
	Message  string      `json:"message"`
	Missed   []Flashcard `json:"missed"`
	Mastery  int         `json:"mastery"`
}

// ── Progress API ──────────────────────────────────────────

type ProgressResponse struct {
	TotalQuizzes  int          `json:"total_quizzes"`
	TotalCorrect  int          `json:"total_correct"`
	TotalAnswered int          `json:"total_answered"`
	Accuracy      int          `json:"accuracy"`
	SetCount      int          `json:"set_count"`
	CardCount     int          `json:"card_count"`
	QuizHistory   []QuizRecord `json:"quiz_history"`
}

// ── Assistant API ─────────────────────────────────────────

type GenerateFlashcardsRequest struct {
	Notes   string  `json:"notes"`
	Subject Subject `json:"subject,omitempty"`
}

type GenerateFlashcardsResponse struct {
	Flashcards []CardInput `json:"flashcards"`
	Source     string      `json:"source"` // "assistant" or "extractor"
}

type SummarizeRequest struct {
	Text  string `json:"text"`
	Style string `json:"style,omitempty"` // bullets | eli5 | detailed
}

type SummarizeResponse struct {
	Summary string `json:"summary"`
}

type ExplainRequest struct {
	Question string  `json:"question"`
	Subject  Subject `json:"subject,omitempty"`
}

type ExplainResponse struct {
	Explanation string `json:"explanation"`
}
