package quiz

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/studypal/backend/internal/auth"
	"github.com/studypal/backend/internal/models"
	"github.com/studypal/backend/internal/users"
)

type Handler struct {
	store    *users.Store
	registry *Registry
}

func NewHandler(store *users.Store) *Handler {
	return &Handler{store: store, registry: NewRegistry()}
}

// RegisterRoutes registers the quiz endpoints on the protected subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/sets/{setID}/quiz", h.StartQuiz).Methods("POST")
	protected.HandleFunc("/quiz/{sessionID}", h.GetSession).Methods("GET")
	protected.HandleFunc("/quiz/{sessionID}", h.ExitSession).Methods("DELETE")
	protected.HandleFunc("/quiz/{sessionID}/reveal", h.Reveal).Methods("POST")
	protected.HandleFunc("/quiz/{sessionID}/judge", h.Judge).Methods("POST")
	protected.HandleFunc("/quiz/{sessionID}/retry", h.RetryMissed).Methods("POST")
}

func getEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(auth.UserEmailKey).(string)
	return email, ok
}

func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	email, ok := getEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	setID, err := strconv.ParseInt(mux.Vars(r)["setID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid set ID"})
		return
	}

	rec, err := h.store.Get(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load study sets"})
		return
	}

	var set *models.StudySet
	for _, s := range rec.StudySets {
		if s.ID == setID {
			set = s
			break
		}
	}
	if set == nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Study set not found"})
		return
	}

	session, err := Start(set)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No flashcards in this study set"})
		return
	}

	id := h.registry.Add(email, set, session)
	a, _ := h.registry.Get(id, email)
	writeJSON(w, http.StatusCreated, stateResponse(id, a))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	a, id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	a.Lock()
	defer a.Unlock()

	// A finished pass whose completion write failed leaves Summary nil;
	// retry it here so the result is not lost.
	if a.Session.IsComplete() && a.Summary == nil {
		if err := h.finalize(a); err != nil {
			log.Printf("[quiz] finalize session %s: %v", id, err)
		}
	}

	writeJSON(w, http.StatusOK, stateResponse(id, a))
}

func (h *Handler) ExitSession(w http.ResponseWriter, r *http.Request) {
	_, id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.registry.Remove(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Reveal(w http.ResponseWriter, r *http.Request) {
	a, id, ok := h.lookup(w, r)
	if !ok {
		return
	}
	a.Lock()
	defer a.Unlock()

	a.Session.Reveal()
	writeJSON(w, http.StatusOK, stateResponse(id, a))
}

func (h *Handler) Judge(w http.ResponseWriter, r *http.Request) {
	a, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req models.JudgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	a.Lock()
	defer a.Unlock()

	if err := a.Session.Judge(a.Set, req.Correct); err != nil {
		switch {
		case errors.Is(err, ErrPrematureJudgment):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Reveal the answer before judging the card"})
		case errors.Is(err, ErrSessionComplete):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Session is already complete"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to record judgment"})
		}
		return
	}

	if a.Session.IsComplete() && a.Summary == nil {
		if err := h.finalize(a); err != nil {
			log.Printf("[quiz] finalize session %s: %v", id, err)
		}
	}

	writeJSON(w, http.StatusOK, stateResponse(id, a))
}

func (h *Handler) RetryMissed(w http.ResponseWriter, r *http.Request) {
	a, id, ok := h.lookup(w, r)
	if !ok {
		return
	}

	a.Lock()
	retry, err := a.Session.Retry()
	a.Unlock()
	if err != nil {
		switch {
		case errors.Is(err, ErrEmptySet):
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "No missed cards to retry"})
		default:
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Finish the current pass before retrying"})
		}
		return
	}

	newID := h.registry.Add(a.Email, a.Set, retry)
	h.registry.Remove(id)
	na, _ := h.registry.Get(newID, a.Email)
	writeJSON(w, http.StatusCreated, stateResponse(newID, na))
}

// finalize folds the finished pass into the user's durable records: the
// owning set's mastery counters and the progress ledger, written together in
// one save so a crash cannot split them.
func (h *Handler) finalize(a *Active) error {
	rec, err := h.store.Get(a.Email)
	if err != nil {
		return err
	}

	summary, err := a.Session.Complete(a.Set, &rec.Progress)
	if err != nil {
		return err
	}

	// Merge the session's counters into the freshest copy of the set, card
	// by card, so an edit that removed cards mid-session keeps them removed.
	// If the set was deleted mid-session, only the ledger entry survives.
	for _, set := range rec.StudySets {
		if set.ID == a.Set.ID {
			for _, card := range set.Flashcards {
				if stats, ok := a.Set.CardProgress[card.ID]; ok {
					*set.Progress(card.ID) = *stats
				}
			}
			break
		}
	}

	a.Summary = &models.QuizSummary{
		Correct:  summary.Correct,
		Answered: summary.Answered,
		Message:  summary.Message,
		Missed:   summary.Missed,
		Mastery:  Mastery(a.Set),
	}

	if err := h.store.SaveStudyData(a.Email, rec.StudySets, rec.Progress); err != nil {
		// Persistence is fire-and-forget; the session result still reaches
		// the client.
		log.Printf("[quiz] persist completion for %s: %v", a.Email, err)
	}
	return nil
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*Active, string, bool) {
	email, ok := getEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, "", false
	}
	id := mux.Vars(r)["sessionID"]
	a, ok := h.registry.Get(id, email)
	if !ok {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Quiz session not found"})
		return nil, "", false
	}
	return a, id, true
}

func stateResponse(id string, a *Active) models.QuizStateResponse {
	s := a.Session
	resp := models.QuizStateResponse{
		SessionID:     id,
		SetID:         a.Set.ID,
		SetTitle:      a.Set.Title,
		CardCount:     len(s.Cards),
		CurrentIndex:  s.CurrentIndex,
		Correct:       s.Correct,
		Answered:      s.Answered,
		ShowingAnswer: s.ShowingAnswer,
		Complete:      s.IsComplete(),
		Summary:       a.Summary,
	}
	if !s.IsComplete() {
		card := s.Current()
		resp.Front = card.Front
		if s.ShowingAnswer {
			resp.Back = card.Back
		}
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
