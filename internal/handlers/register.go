package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"task-tracker/web/internal/flash"
	"task-tracker/web/internal/forms"
	"task-tracker/web/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService) *RegisterHandler {
	return &RegisterHandler{db: db, registerService: registerService}
}

func (h *RegisterHandler) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"Flashes": flash.Pop(c),
		"Errors":  forms.FieldErrors{},
		"Form":    forms.RegisterInput{},
	})
}

func (h *RegisterHandler) Submit(c *gin.Context) {
	input, errs := forms.ParseRegister(
		c.PostForm("username"),
		c.PostForm("email"),
		c.PostForm("password"),
	)
	if !errs.Valid() {
		c.HTML(http.StatusBadRequest, "register.html", gin.H{
			"Flashes": flash.Pop(c),
			"Errors":  errs,
			"Form":    input,
		})
		return
	}

	_, err := h.registerService.RegisterUser(h.db, input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			errs["email"] = "An account with this email already exists"
		case errors.Is(err, services.ErrDuplicateUsername):
			errs["username"] = "This username is already taken"
		default:
			slog.Error("registration failed", slog.String("error", err.Error()))
			c.HTML(http.StatusInternalServerError, "register.html", gin.H{
				"Flashes": []flash.Message{{Category: "danger", Text: "Something went wrong. Please try again."}},
				"Errors":  errs,
				"Form":    input,
			})
			return
		}
		c.HTML(http.StatusConflict, "register.html", gin.H{
			"Flashes": flash.Pop(c),
			"Errors":  errs,
			"Form":    input,
		})
		return
	}

	flash.Set(c, "success", "Registration successful! You can now login.")
	c.Redirect(http.StatusSeeOther, "/login")
}
