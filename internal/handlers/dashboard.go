package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"task-tracker/web/internal/flash"
	"task-tracker/web/internal/forms"
	"task-tracker/web/internal/middleware"
	"task-tracker/web/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db          *gorm.DB
	taskService services.TaskService
}

func NewDashboardHandler(db *gorm.DB, taskService services.TaskService) *DashboardHandler {
	return &DashboardHandler{db: db, taskService: taskService}
}

func (h *DashboardHandler) Show(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	h.render(c, http.StatusOK, userID, forms.FieldErrors{}, forms.TaskInput{}, flash.Pop(c))
}

// CreateTask adds a task for the current user and redirects back to the
// dashboard so a refresh cannot resubmit the form.
func (h *DashboardHandler) CreateTask(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	input, errs := forms.ParseTask(c.PostForm("title"))
	if !errs.Valid() {
		h.render(c, http.StatusBadRequest, userID, errs, input, flash.Pop(c))
		return
	}

	if _, err := h.taskService.CreateTask(h.db, userID, input.Title); err != nil {
		slog.Error("failed to create task",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		h.render(c, http.StatusInternalServerError, userID, errs, input,
			[]flash.Message{{Category: "danger", Text: "Something went wrong. Please try again."}})
		return
	}

	c.Redirect(http.StatusSeeOther, "/dashboard")
}

// Delete removes a task after the service verifies ownership. A foreign task
// is refused with a visible message, never silently ignored.
func (h *DashboardHandler) Delete(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.Redirect(http.StatusSeeOther, "/login")
		return
	}

	taskID := uuid.FromStringOrNil(c.Param("id"))
	if taskID == uuid.Nil {
		c.String(http.StatusNotFound, "404 page not found")
		return
	}

	err := h.taskService.DeleteTask(h.db, taskID, userID)
	switch {
	case err == nil:
		c.Redirect(http.StatusSeeOther, "/dashboard")
	case errors.Is(err, services.ErrTaskNotFound):
		c.String(http.StatusNotFound, "404 page not found")
	case errors.Is(err, services.ErrNotTaskOwner):
		flash.Set(c, "danger", "You cannot delete this task.")
		c.Redirect(http.StatusSeeOther, "/dashboard")
	default:
		slog.Error("failed to delete task",
			slog.String("task_id", taskID.String()),
			slog.String("error", err.Error()),
		)
		flash.Set(c, "danger", "Something went wrong. Please try again.")
		c.Redirect(http.StatusSeeOther, "/dashboard")
	}
}

func (h *DashboardHandler) render(c *gin.Context, status int, userID uuid.UUID, errs forms.FieldErrors, input forms.TaskInput, flashes []flash.Message) {
	tasks, err := h.taskService.GetTasksByOwner(h.db, userID)
	if err != nil {
		slog.Error("failed to list tasks",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()),
		)
		c.HTML(http.StatusInternalServerError, "dashboard.html", gin.H{
			"Flashes": []flash.Message{{Category: "danger", Text: "Something went wrong. Please try again."}},
			"Errors":  forms.FieldErrors{},
			"Form":    forms.TaskInput{},
		})
		return
	}

	c.HTML(status, "dashboard.html", gin.H{
		"Flashes": flashes,
		"Errors":  errs,
		"Form":    input,
		"Tasks":   tasks,
	})
}
