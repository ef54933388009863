package assistant

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/studypal/backend/internal/models"
)

type Handler struct {
	assistant *Assistant
}

func NewHandler(assistant *Assistant) *Handler {
	return &Handler{assistant: assistant}
}

func (h *Handler) RegisterRoutes(protected *mux.Router) {
	protected.HandleFunc("/assistant/flashcards", h.GenerateFlashcards).Methods("POST")
	protected.HandleFunc("/assistant/summarize", h.Summarize).Methods("POST")
	protected.HandleFunc("/assistant/explain", h.Explain).Methods("POST")
}

// GenerateFlashcards extracts cards from pasted notes. Any assistant failure
// (missing key, upstream error, unparseable output) falls back to the local
// heuristic extractor; the editor always gets at least one card to show.
func (h *Handler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var req models.GenerateFlashcardsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Notes) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Notes are required"})
		return
	}

	source := "assistant"
	cards, err := h.assistant.GenerateFlashcards(r.Context(), req.Notes, req.Subject)
	if err != nil || len(cards) == 0 {
		if err != nil {
			log.Printf("[assistant] flashcard generation failed, using extractor: %v", err)
		}
		source = "extractor"
		cards = ExtractFlashcards(req.Notes)
	}

	if len(cards) == 0 {
		// One empty card so the review editor still opens.
		cards = []models.CardInput{{}}
	}

	writeJSON(w, http.StatusOK, models.GenerateFlashcardsResponse{Flashcards: cards, Source: source})
}

func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Text is required"})
		return
	}

	summary, err := h.assistant.Summarize(r.Context(), req.Text, req.Style)
	if err != nil {
		writeUpstreamError(w, err, "Failed to generate summary. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, models.SummarizeResponse{Summary: summary})
}

func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	var req models.ExplainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Question) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Question is required"})
		return
	}

	explanation, err := h.assistant.Explain(r.Context(), req.Question, req.Subject)
	if err != nil {
		writeUpstreamError(w, err, "Failed to get explanation. Please try again.")
		return
	}

	writeJSON(w, http.StatusOK, models.ExplainResponse{Explanation: explanation})
}

func writeUpstreamError(w http.ResponseWriter, err error, retryMsg string) {
	if errors.Is(err, ErrNotConfigured) {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "API key not configured"})
		return
	}
	log.Printf("[assistant] upstream error: %v", err)
	writeJSON(w, http.StatusBadGateway, models.ErrorResponse{Error: retryMsg})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
