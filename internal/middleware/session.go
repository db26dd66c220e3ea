package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"task-tracker/web/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const userIDContextKey = "user_id"

// SessionResolver is the subset of the session store the gate needs.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// RequireSession resolves the session cookie once per request and injects the
// authenticated user ID into the gin context. Anonymous requests are redirected
// to the login page with no side effect.
func RequireSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		userID, err := resolver.Resolve(c.Request.Context(), token)
		if err != nil {
			if err != session.ErrSessionNotFound {
				slog.Error("failed to resolve session", slog.String("error", err.Error()))
			}
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}

		c.Set(userIDContextKey, userID)
		c.Next()
	}
}

// CurrentUserID returns the user bound by RequireSession. The second return is
// false on routes the gate did not run on.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(userIDContextKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// SetCurrentUserID seeds the context the way RequireSession does. Intended for
// handler tests.
func SetCurrentUserID(c *gin.Context, userID uuid.UUID) {
	c.Set(userIDContextKey, userID)
}
