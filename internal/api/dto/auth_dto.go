package dto

import (
	"time"

	"github.com/spec-kit/bedbook/internal/domain"
)

// CredentialsRequest is the login and registration payload.
type CredentialsRequest struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// AuthResponse carries the issued session token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	IsManagement bool   `json:"is_management"`
}

// MessageResponse is a notice for the user plus where to go next.
type MessageResponse struct {
	Message  string `json:"message,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}

// NewUserResponse maps an identity.
func NewUserResponse(identity domain.Identity) UserResponse {
	return UserResponse{ID: identity.UserID, Username: identity.Username, IsManagement: identity.IsManagement}
}
