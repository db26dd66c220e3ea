package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"task-tracker/web/internal/config"
	"task-tracker/web/internal/flash"
	"task-tracker/web/internal/forms"
	"task-tracker/web/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SessionManager is the subset of the session store the page handlers need.
type SessionManager interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Destroy(ctx context.Context, token string) error
}

type LoginHandler struct {
	db              *gorm.DB
	authService     services.AuthService
	activityService services.ActivityService
	sessions        SessionManager
	cookie          config.SessionConfig
}

func NewLoginHandler(
	db *gorm.DB,
	authService services.AuthService,
	activityService services.ActivityService,
	sessions SessionManager,
	cookie config.SessionConfig,
) *LoginHandler {
	return &LoginHandler{
		db:              db,
		authService:     authService,
		activityService: activityService,
		sessions:        sessions,
		cookie:          cookie,
	}
}

func (h *LoginHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Flashes": flash.Pop(c),
		"Errors":  forms.FieldErrors{},
		"Form":    forms.LoginInput{},
	})
}

// Submit verifies credentials, records the login in the activity log, and
// establishes a session. Failed attempts leave no activity record.
func (h *LoginHandler) Submit(c *gin.Context) {
	input, errs := forms.ParseLogin(c.PostForm("email"), c.PostForm("password"))
	if !errs.Valid() {
		c.HTML(http.StatusBadRequest, "login.html", gin.H{
			"Flashes": flash.Pop(c),
			"Errors":  errs,
			"Form":    input,
		})
		return
	}

	user, err := h.authService.LoginUser(h.db, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"Flashes": []flash.Message{{Category: "danger", Text: "Login failed. Check email and password."}},
				"Errors":  forms.FieldErrors{},
				"Form":    input,
			})
			return
		}
		slog.Error("login failed", slog.String("error", err.Error()))
		h.renderServerError(c, input)
		return
	}

	if _, err := h.activityService.RecordLogin(h.db, user.ID, c.ClientIP(), c.Request.UserAgent()); err != nil {
		// The audit trail is best-effort visibility; the login itself proceeds.
		slog.Warn("failed to record login activity",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	token, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		slog.Error("failed to create session",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
		h.renderServerError(c, input)
		return
	}

	c.SetCookie(h.cookie.CookieName, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.SecureCookie, true)
	c.Redirect(http.StatusSeeOther, "/dashboard")
}

func (h *LoginHandler) renderServerError(c *gin.Context, input forms.LoginInput) {
	c.HTML(http.StatusInternalServerError, "login.html", gin.H{
		"Flashes": []flash.Message{{Category: "danger", Text: "Something went wrong. Please try again."}},
		"Errors":  forms.FieldErrors{},
		"Form":    input,
	})
}
