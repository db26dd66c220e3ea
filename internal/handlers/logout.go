package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

type LogoutHandler struct {
	sessions   SessionManager
	cookieName string
}

func NewLogoutHandler(sessions SessionManager, cookieName string) *LogoutHandler {
	return &LogoutHandler{sessions: sessions, cookieName: cookieName}
}

// Logout invalidates the server-side session and clears the cookie.
func (h *LogoutHandler) Logout(c *gin.Context) {
	token, err := c.Cookie(h.cookieName)
	if err == nil && token != "" {
		if err := h.sessions.Destroy(c.Request.Context(), token); err != nil {
			slog.Error("failed to destroy session", slog.String("error", err.Error()))
		}
	}

	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, "/")
}
