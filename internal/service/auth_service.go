package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bedbook/internal/auth"
	"github.com/spec-kit/bedbook/internal/config"
	"github.com/spec-kit/bedbook/internal/domain"
	"github.com/spec-kit/bedbook/internal/events"
	"github.com/spec-kit/bedbook/internal/repository"
	apperrors "github.com/spec-kit/bedbook/pkg/util"
)

// AuthService coordinates registration, login and password maintenance.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// AuthDependencies encapsulates requirements for the auth service. Sessions
// may be nil for callers that never log users in, such as maintenance tools.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Sessions   *auth.SessionManager
	Dispatcher events.Dispatcher
}

// LoginResult carries the identity and session token issued at login.
type LoginResult struct {
	Identity  domain.Identity
	Token     string
	ExpiresAt time.Time
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		sessions:   deps.Sessions,
		dispatcher: deps.Dispatcher,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a regular (non-management) account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, username, password, false)
	if err != nil {
		return nil, err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventUserRegistered,
		Actor: actorOf(user.Identity()),
	})
	return user, nil
}

// Authenticate checks credentials and returns the caller's identity.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (domain.Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		auth.CompareDecoy(password, s.bcryptCost)
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Identity{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}
	return user.Identity(), nil
}

// Login authenticates and opens a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.sessions == nil {
		return nil, errors.New("sessions not configured")
	}
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	token, session, err := s.sessions.Create(ctx, identity)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Identity: identity, Token: token, ExpiresAt: session.ExpiresAt}, nil
}

// Logout revokes the session behind token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.sessions == nil || token == "" {
		return nil
	}
	return s.sessions.Destroy(ctx, token)
}

// ResetPassword overwrites the password of a management account. It needs no
// session and running it twice with the same password is harmless.
func (s *AuthService) ResetPassword(ctx context.Context, username, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return apperrors.NewValidationError("new password required", nil)
	}
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrUserNotFound
	}
	if err != nil {
		return err
	}
	if !user.IsManagement {
		return apperrors.ErrNotManagementUser
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, user.ID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrUserNotFound
		}
		return err
	}
	publishEvent(ctx, s.dispatcher, events.Event{
		Type:  events.EventPasswordReset,
		Actor: events.Actor{Username: user.Username},
	})
	return nil
}

// EnsureManagementUser creates a management account when username is unused.
// An existing account is left untouched. It reports whether an account was created.
func (s *AuthService) EnsureManagementUser(ctx context.Context, username, password string) (bool, error) {
	if err := validateCredentials(username, password); err != nil {
		return false, err
	}
	_, err := s.createUser(ctx, username, password, true)
	if errors.Is(err, apperrors.ErrDuplicateUsername) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) createUser(ctx context.Context, username, password string, management bool) (*domain.User, error) {
	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsManagement: management,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

func validateCredentials(username, password string) error {
	details := map[string]any{}
	if strings.TrimSpace(username) == "" {
		details["username"] = "required"
	}
	if password == "" {
		details["password"] = "required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("username and password required", details)
	}
	return nil
}
