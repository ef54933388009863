package auth

type contextKey string

// UserEmailKey locates the authenticated account email in a request context.
const UserEmailKey contextKey = "user_email"
