package middleware

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"travelapi/internal/service"
)

const (
	// UserIDLocalKey holds the authenticated user's ID in Fiber's context locals.
	UserIDLocalKey = "user_id"
	// TokenLocalKey holds the raw bearer token.
	TokenLocalKey = "auth_token"
)

// Authenticator resolves a bearer token to a user ID.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// RequireAuth rejects requests without a valid bearer token with 401. Authenticator
// failures other than service.ErrUnauthorized go to the app's error handler.
func RequireAuth(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := BearerToken(c)
		if token == "" {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
		}
		userID, err := a.Authenticate(c.UserContext(), token)
		if err != nil && !errors.Is(err, service.ErrUnauthorized) {
			return fmt.Errorf("authenticate: %w", err)
		}
		if err != nil || userID == "" {
			return WriteError(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
		}

		c.Locals(UserIDLocalKey, userID)
		c.Locals(TokenLocalKey, token)
		return c.Next()
	}
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(c *fiber.Ctx) string {
	h := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the ID set by RequireAuth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDLocalKey).(string)
	return id
}
