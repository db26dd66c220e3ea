package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"task-tracker/web/internal/config"
	"task-tracker/web/internal/forms"
	"task-tracker/web/internal/handlers"
	"task-tracker/web/internal/middleware"
	"task-tracker/web/internal/models"
	"task-tracker/web/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

const templatesGlob = "../../web/templates/*.html"

type mockRegisterService struct {
	duplicateEmail    bool
	duplicateUsername bool
	registered        []forms.RegisterInput
}

func (m *mockRegisterService) RegisterUser(db *gorm.DB, input forms.RegisterInput) (*models.User, error) {
	if m.duplicateEmail {
		return nil, services.ErrDuplicateEmail
	}
	if m.duplicateUsername {
		return nil, services.ErrDuplicateUsername
	}
	m.registered = append(m.registered, input)
	return &models.User{ID: uuid.Must(uuid.NewV4()), Username: input.Username, Email: input.Email}, nil
}

type mockAuthService struct {
	user *models.User
}

func (m *mockAuthService) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	if m.user == nil {
		return nil, services.ErrInvalidCredentials
	}
	return m.user, nil
}

type mockActivityService struct {
	recorded int
}

func (m *mockActivityService) RecordLogin(db *gorm.DB, userID uuid.UUID, ip, userAgent string) (*models.LoginActivity, error) {
	m.recorded++
	return &models.LoginActivity{ID: uuid.Must(uuid.NewV4()), UserID: &userID}, nil
}

type mockSessions struct {
	created   int
	destroyed []string
	failNext  bool
}

func (m *mockSessions) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.failNext {
		return "", errors.New("redis down")
	}
	m.created++
	return "test-token", nil
}

func (m *mockSessions) Destroy(ctx context.Context, token string) error {
	m.destroyed = append(m.destroyed, token)
	return nil
}

type mockTaskService struct {
	tasks       []models.Task
	deleteErr   error
	created     []string
	shouldError bool
}

func (m *mockTaskService) CreateTask(db *gorm.DB, ownerID uuid.UUID, title string) (*models.Task, error) {
	if m.shouldError {
		return nil, gorm.ErrInvalidData
	}
	task := models.Task{ID: uuid.Must(uuid.NewV4()), OwnerID: ownerID, Title: title, CreatedAt: time.Now()}
	m.tasks = append(m.tasks, task)
	m.created = append(m.created, title)
	return &task, nil
}

func (m *mockTaskService) GetTasksByOwner(db *gorm.DB, ownerID uuid.UUID) ([]models.Task, error) {
	if m.shouldError {
		return nil, gorm.ErrInvalidData
	}
	return m.tasks, nil
}

func (m *mockTaskService) DeleteTask(db *gorm.DB, taskID, requestingUserID uuid.UUID) error {
	return m.deleteErr
}

func newTestEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.LoadHTMLGlob(templatesGlob)
	return router
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterSubmit_Success(t *testing.T) {
	router := newTestEngine()
	mockService := &mockRegisterService{}
	handler := handlers.NewRegisterHandler(nil, mockService)
	router.POST("/register", handler.Submit)

	w := postForm(router, "/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"password1"},
	})

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("Expected redirect to /login, got %q", loc)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "flash=") {
		t.Error("Expected a success flash cookie")
	}
	if len(mockService.registered) != 1 {
		t.Errorf("Expected 1 registration, got %d", len(mockService.registered))
	}
}

func TestRegisterSubmit_DuplicateEmail(t *testing.T) {
	router := newTestEngine()
	handler := handlers.NewRegisterHandler(nil, &mockRegisterService{duplicateEmail: true})
	router.POST("/register", handler.Submit)

	w := postForm(router, "/register", url.Values{
		"username": {"alice"},
		"email":    {"a@x.com"},
		"password": {"password1"},
	})

	if w.Code != http.StatusConflict {
		t.Errorf("Expected status %d, got %d", http.StatusConflict, w.Code)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Error("Expected the form to re-render with a duplicate-email error")
	}
}

func TestRegisterSubmit_InvalidForm(t *testing.T) {
	router := newTestEngine()
	mockService := &mockRegisterService{}
	handler := handlers.NewRegisterHandler(nil, mockService)
	router.POST("/register", handler.Submit)

	w := postForm(router, "/register", url.Values{
		"username": {"al"},
		"email":    {"bad"},
		"password": {"x"},
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if len(mockService.registered) != 0 {
		t.Error("Expected no registration on invalid input")
	}
}

func loginTestSetup(user *models.User) (*gin.Engine, *mockActivityService, *mockSessions) {
	router := newTestEngine()
	activity := &mockActivityService{}
	sessions := &mockSessions{}
	handler := handlers.NewLoginHandler(nil, &mockAuthService{user: user}, activity, sessions, config.SessionConfig{
		CookieName: "session_token",
		TTL:        time.Hour,
	})
	router.POST("/login", handler.Submit)
	return router, activity, sessions
}

func TestLoginSubmit_Success(t *testing.T) {
	user := &models.User{ID: uuid.Must(uuid.NewV4()), Username: "alice", Email: "a@x.com"}
	router, activity, sessions := loginTestSetup(user)

	w := postForm(router, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"password1"},
	})

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %q", loc)
	}
	if activity.recorded != 1 {
		t.Errorf("Expected 1 activity record, got %d", activity.recorded)
	}
	if sessions.created != 1 {
		t.Errorf("Expected 1 session, got %d", sessions.created)
	}

	foundCookie := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" && cookie.Value == "test-token" && cookie.HttpOnly {
			foundCookie = true
		}
	}
	if !foundCookie {
		t.Error("Expected an HTTP-only session cookie")
	}
}

func TestLoginSubmit_BadCredentials(t *testing.T) {
	router, activity, sessions := loginTestSetup(nil)

	w := postForm(router, "/login", url.Values{
		"email":    {"a@x.com"},
		"password": {"wrong"},
	})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("Expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Login failed. Check email and password.") {
		t.Error("Expected the generic failure message")
	}
	if activity.recorded != 0 {
		t.Error("Failed logins must not be recorded in the activity log")
	}
	if sessions.created != 0 {
		t.Error("Failed logins must not create a session")
	}
}

func dashboardTestSetup(taskService *mockTaskService, userID uuid.UUID) *gin.Engine {
	router := newTestEngine()
	handler := handlers.NewDashboardHandler(nil, taskService)

	router.Use(func(c *gin.Context) {
		middleware.SetCurrentUserID(c, userID)
		c.Next()
	})
	router.GET("/dashboard", handler.Show)
	router.POST("/dashboard", handler.CreateTask)
	router.GET("/delete/:id", handler.Delete)
	return router
}

func TestDashboardShow(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	taskService := &mockTaskService{tasks: []models.Task{
		{ID: uuid.Must(uuid.NewV4()), OwnerID: userID, Title: "Buy milk", CreatedAt: time.Now()},
	}}
	router := dashboardTestSetup(taskService, userID)

	req, _ := http.NewRequest("GET", "/dashboard", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "Buy milk") {
		t.Error("Expected the task list to contain 'Buy milk'")
	}
}

func TestDashboardCreateTask(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	taskService := &mockTaskService{}
	router := dashboardTestSetup(taskService, userID)

	w := postForm(router, "/dashboard", url.Values{"title": {"Buy milk"}})

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %q", loc)
	}
	if len(taskService.created) != 1 || taskService.created[0] != "Buy milk" {
		t.Errorf("Expected one created task 'Buy milk', got %v", taskService.created)
	}
}

func TestDashboardCreateTask_BlankTitle(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	taskService := &mockTaskService{}
	router := dashboardTestSetup(taskService, userID)

	w := postForm(router, "/dashboard", url.Values{"title": {"   "}})

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	if len(taskService.created) != 0 {
		t.Error("Expected no task created for blank title")
	}
}

func TestDelete_Forbidden(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	taskService := &mockTaskService{deleteErr: services.ErrNotTaskOwner}
	router := dashboardTestSetup(taskService, userID)

	req, _ := http.NewRequest("GET", "/delete/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/dashboard" {
		t.Errorf("Expected redirect to /dashboard, got %q", loc)
	}
	if !strings.Contains(w.Header().Get("Set-Cookie"), "flash=") {
		t.Error("Expected a danger flash cookie on the refused delete")
	}
}

func TestDelete_NotFound(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	taskService := &mockTaskService{deleteErr: services.ErrTaskNotFound}
	router := dashboardTestSetup(taskService, userID)

	req, _ := http.NewRequest("GET", "/delete/"+uuid.Must(uuid.NewV4()).String(), nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestDelete_MalformedID(t *testing.T) {
	userID := uuid.Must(uuid.NewV4())
	router := dashboardTestSetup(&mockTaskService{}, userID)

	req, _ := http.NewRequest("GET", "/delete/not-a-uuid", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestLogout(t *testing.T) {
	router := newTestEngine()
	sessions := &mockSessions{}
	handler := handlers.NewLogoutHandler(sessions, "session_token")
	router.GET("/logout", handler.Logout)

	req, _ := http.NewRequest("GET", "/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: "test-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d", http.StatusSeeOther, w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("Expected redirect to /, got %q", loc)
	}
	if len(sessions.destroyed) != 1 || sessions.destroyed[0] != "test-token" {
		t.Errorf("Expected the session to be destroyed, got %v", sessions.destroyed)
	}

	cleared := false
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session_token" && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("Expected the session cookie to be cleared")
	}
}
