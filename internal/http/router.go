package http

import (
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Uses RouterConfig to receive all dependencies. The returned cleanup
// function stops background work owned by the router's controllers and
// must be called on shutdown.
func NewRouter(cfg RouterConfig) (*gin.Engine, func()) {
	router := gin.New()
	cleanup := func() {}
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())
	if cfg.SecureCookies {
		router.Use(auth.StrictTransportSecurityMiddleware())
	}

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}

	// Development auto-login bypass, inert unless enabled
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.AutoLoginHandler())
	}

	hasTemplates := false
	if cfg.TemplatesPath != "" {
		if matches, err := filepath.Glob(filepath.Join(cfg.TemplatesPath, "*.html")); err == nil && len(matches) > 0 {
			router.LoadHTMLGlob(filepath.Join(cfg.TemplatesPath, "*.html"))
			hasTemplates = true
		} else {
			log.Printf("No HTML templates found under %s, page routes disabled", cfg.TemplatesPath)
		}
	}

	if cfg.StaticPath != "" {
		router.Static("/static", cfg.StaticPath)
	}

	// Health endpoints
	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Login, logout and registration forms
	if cfg.AuthService != nil && cfg.SessionManager != nil {
		authController, err := auth.NewAuthController(cfg.AuthService, cfg.SessionManager, cfg.TemplatesPath, cfg.AuthConfig)
		if err == nil {
			cleanup = authController.Stop
			authController.RegisterRoutes(router)

			if cfg.AuthMiddleware != nil {
				router.GET("/profile", cfg.AuthMiddleware.RequirePage(), authController.ProfilePage)
				router.POST("/profile/password", cfg.AuthMiddleware.RequirePage(), authController.ChangePassword)
			}
		}
	}

	dashboardController := NewDashboardController(cfg.StudentStats, cfg.MeetingCounts, cfg.ActivityCount)
	studentsController := NewStudentsController(cfg.StudentStore, cfg.Recorder)
	meetingsController := NewMeetingsController(cfg.MeetingStore, cfg.StudentStore, cfg.Recorder)
	activitiesController := NewActivitiesController(cfg.ActivityStore, cfg.Recorder)
	reportsController := NewReportsController(cfg.MeetingStore, cfg.ActivityStore)

	// Server-rendered pages, session gated
	if hasTemplates && cfg.AuthMiddleware != nil {
		gate := cfg.AuthMiddleware
		uiController := NewUIController(cfg.StudentStore, cfg.MeetingStore, cfg.ActivityStore, dashboardController)

		pages := router.Group("/", gate.RequirePage())
		pages.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusFound, "/dashboard")
		})
		pages.GET("/dashboard", uiController.DashboardPage)
		pages.GET("/students", uiController.StudentsPage)
		pages.GET("/students/:id", uiController.StudentPage)
		pages.GET("/meetings", uiController.MeetingsPage)
		pages.GET("/activities", uiController.ActivitiesPage)
		pages.GET("/reports", uiController.ReportsPage)
	}

	// CSV downloads, session gated like the pages but independent of
	// templates being present
	if cfg.AuthMiddleware != nil {
		downloads := router.Group("/reports", cfg.AuthMiddleware.RequirePage())
		downloads.GET("/meetings.csv", reportsController.MeetingsCSV)
		downloads.GET("/activities.csv", reportsController.ActivitiesCSV)
	}

	// JSON API, bearer-token gated except login
	apiAuth := NewAPIAuthController(cfg.AuthService)
	router.POST("/api/auth/login", apiAuth.Login)

	if cfg.AuthMiddleware != nil {
		gate := cfg.AuthMiddleware
		api := router.Group("/api", gate.RequireAPI())

		api.GET("/auth/me", apiAuth.Me)
		api.POST("/auth/logout", apiAuth.Logout)

		api.GET("/dashboard/stats", dashboardController.Stats)
		api.GET("/dashboard/recent-students", dashboardController.RecentStudents)

		api.GET("/students", studentsController.List)
		api.POST("/students", gate.ActivityLog("student_create"), studentsController.Create)
		api.GET("/students/:id", studentsController.Get)
		api.PUT("/students/:id", gate.ActivityLog("student_update"), studentsController.Update)
		api.DELETE("/students/:id", gate.RequireAdmin(), studentsController.Delete)

		api.GET("/meetings", meetingsController.List)
		api.POST("/meetings", gate.ActivityLog("meeting_create"), meetingsController.Create)
		api.GET("/meetings/:id", meetingsController.Get)
		api.PUT("/meetings/:id", gate.ActivityLog("meeting_update"), meetingsController.Update)
		api.DELETE("/meetings/:id", meetingsController.Delete)

		api.GET("/activities", activitiesController.List)
		api.POST("/activities", gate.ActivityLog("activity_create"), activitiesController.Create)
		api.GET("/activities/:id", activitiesController.Get)
		api.PUT("/activities/:id", gate.ActivityLog("activity_update"), activitiesController.Update)
		api.DELETE("/activities/:id", activitiesController.Delete)

		api.GET("/reports/meetings.csv", reportsController.MeetingsCSV)
		api.GET("/reports/activities.csv", reportsController.ActivitiesCSV)
	}

	return router, cleanup
}
