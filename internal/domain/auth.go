package domain

import "time"

// Identity is the authenticated context bound to a session.
type Identity struct {
	UserID       int64  `json:"user_id"`
	Username     string `json:"username"`
	IsManagement bool   `json:"is_management"`
}

// Session is a server-side login record.
type Session struct {
	ID        string    `json:"id"`
	Identity  Identity  `json:"identity"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
