package handlers

import (
	"net/http"

	"task-tracker/web/internal/flash"

	"github.com/gin-gonic/gin"
)

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Flashes": flash.Pop(c),
	})
}
