package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/bedbook/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller.
type Principal struct {
	SessionID string
	Token     string
	Identity  domain.Identity
}

// AuthMiddleware loads the session identity from the session cookie or a
// bearer token. Requests without a valid session pass through anonymously.
type AuthMiddleware struct {
	sessions   *SessionManager
	cookieName string
	logger     *zap.Logger
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(sessions *SessionManager, cookieName string, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions, cookieName: cookieName, logger: logger}
}

// Handle resolves the caller's session, if any.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	token := m.TokenFromRequest(c)
	if token == "" {
		return c.Next()
	}

	session, err := m.sessions.Resolve(c.UserContext(), token)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			m.logger.Warn("session lookup failed", zap.Error(err))
		}
		return c.Next()
	}

	c.Locals(principalKey, &Principal{SessionID: session.ID, Token: token, Identity: session.Identity})
	return c.Next()
}

// TokenFromRequest returns the session token from the cookie or Authorization header.
func (m *AuthMiddleware) TokenFromRequest(c *fiber.Ctx) string {
	if token := c.Cookies(m.cookieName); token != "" {
		return token
	}
	parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
