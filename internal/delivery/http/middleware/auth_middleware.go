package middleware

import (
	"errors"
	"strings"

	"mentorlink/internal/domain"
	"mentorlink/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxAuthKey = "auth"

type Authenticator interface {
	Authenticate(token string) (domain.AuthContext, error)
}

type AuthMiddleware struct {
	auth Authenticator
}

func NewAuthMiddleware(auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Middleware rejects requests without a valid bearer access token and
// stores the resolved identity for handlers.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		actor, err := m.auth.Authenticate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxAuthKey, actor)
		return c.Next()
	}
}

// AuthFromContext returns the identity stored by AuthMiddleware, or the
// anonymous zero value.
func AuthFromContext(c fiber.Ctx) domain.AuthContext {
	if actor, ok := c.Locals(CtxAuthKey).(domain.AuthContext); ok {
		return actor
	}
	return domain.AuthContext{}
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
