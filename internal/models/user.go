package models

import (
	"strings"
	"time"
)

// UserRecord is everything stored for one account. Records live in a single
// email-keyed map persisted under one storage key, so the password hash
// travels with the user's study data.
type UserRecord struct {
	Password  string         `json:"password"`
	StudySets []*StudySet    `json:"study_sets"`
	Progress  ProgressLedger `json:"progress"`
	CreatedAt time.Time      `json:"created_at"`
}

// User is the public account shape returned to clients.
type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// DisplayNameFor derives a display name from an email address: the local
// part before the @.
func DisplayNameFor(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
