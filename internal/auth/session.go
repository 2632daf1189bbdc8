package auth

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/bedbook/internal/domain"
)

// SessionManager binds identities to signed session tokens backed by a store,
// so that logout revokes a token before it expires.
type SessionManager struct {
	tokens *TokenManager
	store  SessionStore
	now    func() time.Time
}

// NewSessionManager constructs a manager.
func NewSessionManager(tokens *TokenManager, store SessionStore) *SessionManager {
	return &SessionManager{tokens: tokens, store: store, now: time.Now}
}

// Create opens a session for identity and returns its token.
func (m *SessionManager) Create(ctx context.Context, identity domain.Identity) (string, domain.Session, error) {
	issuedAt := m.now()
	sessionID := uuid.NewString()

	token, expiresAt, err := m.tokens.GenerateToken(sessionID, identity, issuedAt)
	if err != nil {
		return "", domain.Session{}, err
	}

	session := domain.Session{
		ID:        sessionID,
		Identity:  identity,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	if err := m.store.Save(ctx, session, m.tokens.TTL()); err != nil {
		return "", domain.Session{}, err
	}
	return token, session, nil
}

// Resolve returns the live session for token.
func (m *SessionManager) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	session, err := m.store.Get(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if session.Identity.UserID != claims.UserID {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Destroy revokes the session behind token. Unknown or invalid tokens are ignored.
func (m *SessionManager) Destroy(ctx context.Context, token string) error {
	claims, err := m.tokens.ParseToken(token)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, claims.ID)
}

// TTL returns the session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.tokens.TTL()
}
