package quiz

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/studypal/backend/internal/auth"
	"github.com/studypal/backend/internal/models"
	"github.com/studypal/backend/internal/storage"
	"github.com/studypal/backend/internal/users"
)

// flakyGateway fails the next failLoads Load calls, then delegates.
type flakyGateway struct {
	inner     *storage.MemoryGateway
	failLoads int
}

func (g *flakyGateway) Load(key string) (json.RawMessage, bool, error) {
	if g.failLoads > 0 {
		g.failLoads--
		return nil, false, errors.New("storage offline")
	}
	return g.inner.Load(key)
}

func (g *flakyGateway) Save(key string, value interface{}) error {
	return g.inner.Save(key, value)
}

func authedRequest(method, target, body, email, sessionID string) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req = req.WithContext(context.WithValue(req.Context(), auth.UserEmailKey, email))
	return mux.SetURLVars(req, map[string]string{"sessionID": sessionID})
}

func TestGetSessionRetriesFailedFinalize(t *testing.T) {
	const email = "ana@example.com"
	gw := &flakyGateway{inner: storage.NewMemoryGateway()}
	store := users.NewStore(gw)
	if _, err := store.Create(email, "hash"); err != nil {
		t.Fatal(err)
	}
	set, err := models.NewStudySet("Biology", models.SubjectScience, []models.CardInput{{Front: "Q", Back: "A"}})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSets(email, []*models.StudySet{set}); err != nil {
		t.Fatal(err)
	}

	h := NewHandler(store)
	session, err := Start(set)
	if err != nil {
		t.Fatal(err)
	}
	session.Reveal()
	id := h.registry.Add(email, set, session)

	// The store is unreachable when the final judgment lands.
	gw.failLoads = 1
	w := httptest.NewRecorder()
	h.Judge(w, authedRequest("POST", "/quiz/"+id+"/judge", `{"correct": true}`, email, id))
	if w.Code != http.StatusOK {
		t.Fatalf("Judge status = %d, body %s", w.Code, w.Body.String())
	}

	var state models.QuizStateResponse
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if !state.Complete || state.Summary != nil {
		t.Fatalf("after failed finalize: complete %v, summary %+v", state.Complete, state.Summary)
	}

	// Fetching the session retries the write and surfaces the summary.
	w = httptest.NewRecorder()
	h.GetSession(w, authedRequest("GET", "/quiz/"+id, "", email, id))
	if w.Code != http.StatusOK {
		t.Fatalf("GetSession status = %d", w.Code)
	}
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatal(err)
	}
	if state.Summary == nil {
		t.Fatal("summary still missing after retry")
	}
	if state.Summary.Correct != 1 || state.Summary.Answered != 1 {
		t.Errorf("summary = %+v, want 1/1", state.Summary)
	}

	rec, err := store.Get(email)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Progress.TotalQuizzes != 1 || len(rec.Progress.QuizHistory) != 1 {
		t.Errorf("ledger = %+v, pass must be recorded exactly once", rec.Progress)
	}
}

func TestFinalizeMergesOnlySurvivingCards(t *testing.T) {
	const email = "ana@example.com"
	store := users.NewStore(storage.NewMemoryGateway())
	if _, err := store.Create(email, "hash"); err != nil {
		t.Fatal(err)
	}
	set, err := models.NewStudySet("Biology", models.SubjectScience, []models.CardInput{
		{Front: "A", Back: "a"},
		{Front: "B", Back: "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	keptID := set.Flashcards[0].ID
	droppedID := set.Flashcards[1].ID
	if err := store.SaveSets(email, []*models.StudySet{set}); err != nil {
		t.Fatal(err)
	}

	h := NewHandler(store)
	rec, err := store.Get(email)
	if err != nil {
		t.Fatal(err)
	}
	working := rec.StudySets[0]
	session, err := Start(working)
	if err != nil {
		t.Fatal(err)
	}
	for range working.Flashcards {
		session.Reveal()
		if err := session.Judge(working, true); err != nil {
			t.Fatal(err)
		}
	}

	// Mid-session, another request edits the set and removes card B.
	edit, err := store.Get(email)
	if err != nil {
		t.Fatal(err)
	}
	err = edit.StudySets[0].ReplaceCards([]models.Flashcard{
		{ID: keptID, Front: "A", Back: "a"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := store.SaveSets(email, edit.StudySets); err != nil {
		t.Fatal(err)
	}

	a := &Active{Email: email, Set: working, Session: session}
	if err := h.finalize(a); err != nil {
		t.Fatalf("finalize returned error: %v", err)
	}

	saved, err := store.Get(email)
	if err != nil {
		t.Fatal(err)
	}
	progress := saved.StudySets[0].CardProgress
	if stats := progress[keptID]; stats == nil || stats.Correct != 1 {
		t.Errorf("surviving card stats = %+v, want Correct 1", stats)
	}
	if _, ok := progress[droppedID]; ok {
		t.Error("removed card's counters must not be resurrected by completion")
	}
	if saved.Progress.TotalQuizzes != 1 {
		t.Errorf("ledger = %+v, want the pass recorded", saved.Progress)
	}
}
