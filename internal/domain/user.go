package domain

import "time"

// User is an account that can log in and book beds.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	IsManagement bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity returns the session identity for the user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username, IsManagement: u.IsManagement}
}
