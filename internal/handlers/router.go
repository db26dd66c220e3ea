package handlers

import (
	"context"

	"task-tracker/web/internal/config"
	"task-tracker/web/internal/middleware"
	"task-tracker/web/internal/monitoring"
	"task-tracker/web/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// SessionStore is the full session contract the router wires up: the gate
// resolves, the login/logout handlers create and destroy.
type SessionStore interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
	Destroy(ctx context.Context, token string) error
	Health(ctx context.Context) error
}

// NewRouter builds the full page-flow router over the given database and
// session store.
func NewRouter(cfg *config.Config, db *gorm.DB, sessions SessionStore) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(monitoring.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
	}))
	router.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	registerService := services.NewRegisterService(cfg.Auth.BCryptCost)
	authService := services.NewAuthService()
	taskService := services.NewTaskService()
	activityService := services.NewActivityService()

	pages := NewPageHandler()
	register := NewRegisterHandler(db, registerService)
	login := NewLoginHandler(db, authService, activityService, sessions, cfg.Session)
	dashboard := NewDashboardHandler(db, taskService)
	logout := NewLogoutHandler(sessions, cfg.Session.CookieName)

	router.GET("/", pages.Home)
	router.GET("/register", register.ShowForm)
	router.POST("/register", register.Submit)
	router.GET("/login", login.ShowForm)

	loginPost := router.Group("/")
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.LoginPerMinute, cfg.RateLimit.BurstSize)
		loginPost.Use(limiter.Middleware())
	}
	loginPost.POST("/login", login.Submit)

	protected := router.Group("/")
	protected.Use(middleware.RequireSession(sessions, cfg.Session.CookieName))
	protected.GET("/dashboard", dashboard.Show)
	protected.POST("/dashboard", dashboard.CreateTask)
	protected.GET("/delete/:id", dashboard.Delete)
	protected.POST("/delete/:id", dashboard.Delete)
	protected.GET("/logout", logout.Logout)

	router.GET("/healthz", monitoring.HealthHandler(map[string]monitoring.HealthCheckFunc{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"sessions": sessions.Health,
	}))
	router.GET("/metrics", monitoring.MetricsHandler())

	return router
}
