package store

import "time"

// Session is the server side of a refresh token. Access tokens are
// stateless JWTs; refresh tokens resolve to one of these, so logout can
// revoke them before they expire.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
