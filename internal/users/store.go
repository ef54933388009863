package users

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/studypal/backend/internal/models"
	"github.com/studypal/backend/internal/storage"
)

// storageKey holds the whole email-keyed account map as one document.
const storageKey = "studypal_users"

var (
	ErrNotFound = errors.New("user not found")
	ErrExists   = errors.New("an account with this email already exists")
)

// Store mediates all reads and writes of user records through the
// persistence gateway. The mutex serializes read-modify-write cycles on the
// shared account map.
type Store struct {
	mu sync.Mutex
	gw storage.Gateway
}

func NewStore(gw storage.Gateway) *Store {
	return &Store{gw: gw}
}

func (s *Store) load() (map[string]*models.UserRecord, error) {
	raw, ok, err := s.gw.Load(storageKey)
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	users := make(map[string]*models.UserRecord)
	if ok {
		if err := json.Unmarshal(raw, &users); err != nil {
			return nil, fmt.Errorf("decode users: %w", err)
		}
	}
	return users, nil
}

func (s *Store) save(users map[string]*models.UserRecord) error {
	if err := s.gw.Save(storageKey, users); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// Get returns the record for email, or ErrNotFound.
func (s *Store) Get(email string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	rec, ok := users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return rec, nil
}

// Create registers a new account with the given password hash. Fails with
// ErrExists when the email is already taken.
func (s *Store) Create(email, passwordHash string) (*models.UserRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return nil, err
	}
	if _, ok := users[email]; ok {
		return nil, ErrExists
	}

	rec := &models.UserRecord{
		Password:  passwordHash,
		StudySets: []*models.StudySet{},
		CreatedAt: time.Now(),
	}
	users[email] = rec
	if err := s.save(users); err != nil {
		return nil, err
	}
	return rec, nil
}

// SaveSets replaces the user's study set list.
func (s *Store) SaveSets(email string, sets []*models.StudySet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	rec, ok := users[email]
	if !ok {
		return ErrNotFound
	}
	rec.StudySets = sets
	return s.save(users)
}

// SaveStudyData writes the user's sets and progress ledger together. Quiz
// completion touches both, and a single save keeps mastery counters and the
// ledger from drifting apart on a crash.
func (s *Store) SaveStudyData(email string, sets []*models.StudySet, progress models.ProgressLedger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.load()
	if err != nil {
		return err
	}
	rec, ok := users[email]
	if !ok {
		return ErrNotFound
	}
	rec.StudySets = sets
	rec.Progress = progress
	return s.save(users)
}
