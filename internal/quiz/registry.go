package quiz

import (
	"sync"

	"github.com/google/uuid"
	"github.com/studypal/backend/internal/models"
)

// Active pairs a session with the working copy of its owning set. The set
// copy accumulates counter updates as cards are judged; it is written back
// through the store only when the pass completes.
type Active struct {
	mu      sync.Mutex
	Email   string
	Set     *models.StudySet
	Session *Session
	Summary *models.QuizSummary
}

// Registry holds the in-flight quiz sessions, keyed by opaque id and scoped
// to the owning user. Sessions are never persisted; dropping one is the
// whole abandonment story.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Active
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Active)}
}

// Add registers a session and returns its id.
func (r *Registry) Add(email string, set *models.StudySet, session *Session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &Active{Email: email, Set: set, Session: session}
	r.mu.Unlock()
	return id
}

// Get returns the session for id if it belongs to email.
func (r *Registry) Get(id, email string) (*Active, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.sessions[id]
	if !ok || a.Email != email {
		return nil, false
	}
	return a, true
}

// Remove discards a session. No partial state is persisted.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Lock serializes operations on one active session.
func (a *Active) Lock()   { a.mu.Lock() }
func (a *Active) Unlock() { a.mu.Unlock() }
