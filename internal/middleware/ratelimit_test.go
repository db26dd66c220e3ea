package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"task-tracker/web/internal/middleware"

	"github.com/gin-gonic/gin"
)

func setupLimitedRouter(rpm, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	limiter := middleware.NewRateLimiter(rpm, burst)
	router.POST("/login", limiter.Middleware(), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	return router
}

func TestRateLimiter_AllowsWithinBurst(t *testing.T) {
	router := setupLimitedRouter(10, 3)

	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Request %d: expected status %d, got %d", i+1, http.StatusOK, w.Code)
		}
	}
}

func TestRateLimiter_RejectsOverBurst(t *testing.T) {
	router := setupLimitedRouter(1, 2)

	var last *httptest.ResponseRecorder
	for i := 0; i < 3; i++ {
		req, _ := http.NewRequest("POST", "/login", nil)
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
	}

	if last.Code != http.StatusSeeOther {
		t.Fatalf("Expected status %d, got %d", http.StatusSeeOther, last.Code)
	}
	if loc := last.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
	if !strings.Contains(last.Header().Get("Set-Cookie"), "flash=") {
		t.Error("Expected a danger flash cookie on the throttled response")
	}
}
