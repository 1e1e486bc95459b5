package models

import "time"

// Session is a server-side session record bound to a user and an absolute expiry.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Expiry    time.Time `json:"expiry"`
}

// Expired reports whether the session is no longer valid at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.Expiry)
}
