package progress

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/studypal/backend/internal/auth"
	"github.com/studypal/backend/internal/models"
	"github.com/studypal/backend/internal/users"
)

type Handler struct {
	store *users.Store
}

func NewHandler(store *users.Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/progress", h.GetProgress).Methods("GET")
}

// GetProgress returns the user's quiz totals, bounded history, and the
// dashboard stat block (set and card counts).
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	email, ok := r.Context().Value(auth.UserEmailKey).(string)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	rec, err := h.store.Get(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load progress"})
		return
	}

	cardCount := 0
	for _, set := range rec.StudySets {
		cardCount += len(set.Flashcards)
	}

	history := rec.Progress.QuizHistory
	if history == nil {
		history = []models.QuizRecord{}
	}

	writeJSON(w, http.StatusOK, models.ProgressResponse{
		TotalQuizzes:  rec.Progress.TotalQuizzes,
		TotalCorrect:  rec.Progress.TotalCorrect,
		TotalAnswered: rec.Progress.TotalAnswered,
		Accuracy:      rec.Progress.Accuracy(),
		SetCount:      len(rec.StudySets),
		CardCount:     cardCount,
		QuizHistory:   history,
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
