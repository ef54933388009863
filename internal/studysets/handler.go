package studysets

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/studypal/backend/internal/auth"
	"github.com/studypal/backend/internal/models"
	"github.com/studypal/backend/internal/quiz"
	"github.com/studypal/backend/internal/users"
)

type Handler struct {
	store *users.Store
}

func NewHandler(store *users.Store) *Handler {
	return &Handler{store: store}
}

// RegisterRoutes registers the study set CRUD endpoints on the protected
// subrouter.
func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/sets", h.ListSets).Methods("GET")
	protected.HandleFunc("/sets", h.CreateSet).Methods("POST")
	protected.HandleFunc("/sets/{setID}", h.GetSet).Methods("GET")
	protected.HandleFunc("/sets/{setID}", h.UpdateSet).Methods("PUT")
	protected.HandleFunc("/sets/{setID}", h.DeleteSet).Methods("DELETE")
}

func getEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(auth.UserEmailKey).(string)
	return email, ok
}

func (h *Handler) ListSets(w http.ResponseWriter, r *http.Request) {
	email, ok := getEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	rec, err := h.store.Get(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load study sets"})
		return
	}

	resp := models.SetListResponse{Sets: []models.SetSummary{}}
	for _, set := range rec.StudySets {
		resp.TotalCards += len(set.Flashcards)
		resp.Sets = append(resp.Sets, models.SetSummary{
			ID:        set.ID,
			Title:     set.Title,
			Subject:   set.Subject,
			CardCount: len(set.Flashcards),
			Mastery:   quiz.Mastery(set),
			CreatedAt: set.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) CreateSet(w http.ResponseWriter, r *http.Request) {
	email, ok := getEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.CreateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	set, err := models.NewStudySet(req.Title, req.Subject, req.Cards)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	rec, err := h.store.Get(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load study sets"})
		return
	}

	// Newest first, matching the dashboard ordering.
	sets := append([]*models.StudySet{set}, rec.StudySets...)
	if err := h.store.SaveSets(email, sets); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save study set"})
		return
	}

	writeJSON(w, http.StatusCreated, set)
}

func (h *Handler) GetSet(w http.ResponseWriter, r *http.Request) {
	set, ok := h.findSet(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) UpdateSet(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
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

	if req.Title != "" {
		title := strings.TrimSpace(req.Title)
		if title == "" {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Title cannot be blank"})
			return
		}
		set.Title = title
	}
	if req.Subject != "" {
		if !models.ValidSubjects[req.Subject] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
			return
		}
		set.Subject = req.Subject
	}
	if req.Cards != nil {
		if err := set.ReplaceCards(req.Cards); err != nil {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
	}

	if err := h.store.SaveSets(email, rec.StudySets); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save study set"})
		return
	}

	writeJSON(w, http.StatusOK, set)
}

func (h *Handler) DeleteSet(w http.ResponseWriter, r *http.Request) {
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

	kept := rec.StudySets[:0]
	found := false
	for _, s := range rec.StudySets {
		if s.ID == setID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Study set not found"})
		return
	}

	if err := h.store.SaveSets(email, kept); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to delete study set"})
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) findSet(w http.ResponseWriter, r *http.Request) (*models.StudySet, bool) {
	email, ok := getEmail(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return nil, false
	}

	setID, err := strconv.ParseInt(mux.Vars(r)["setID"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid set ID"})
		return nil, false
	}

	rec, err := h.store.Get(email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load study sets"})
		return nil, false
	}

	for _, s := range rec.StudySets {
		if s.ID == setID {
			return s, true
		}
	}

	writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Study set not found"})
	return nil, false
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
