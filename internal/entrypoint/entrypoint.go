package entrypoint

import (
	"context"
	"encoding/hex"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/audit"
	"github.com/ekurtoglu/guidance/internal/auth"
	"github.com/ekurtoglu/guidance/internal/config"
	"github.com/ekurtoglu/guidance/internal/database"
	"github.com/ekurtoglu/guidance/internal/database/activities"
	"github.com/ekurtoglu/guidance/internal/database/meetings"
	"github.com/ekurtoglu/guidance/internal/database/students"
	http_controllers "github.com/ekurtoglu/guidance/internal/http"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

// Serve runs the HTTP server until SIGINT or SIGTERM, then drains it
// within the configured shutdown timeout.
func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting up to %v", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting Guidance v%s", version)

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	authService := auth.NewService(db.DB, cfg.Auth)

	sqlDB, err := db.DB.DB()
	if err != nil {
		log.Fatalf("Failed to get SQL DB for sessions: %v", err)
	}
	sessionManager, err := auth.NewSessionManager(sqlDB, cfg.Auth)
	if err != nil {
		log.Fatalf("Failed to initialize session manager: %v", err)
	}

	authMiddleWare := auth.NewMiddleware(authService, sessionManager, cfg.AutoLogin)

	// The CSRF key derives from the session secret; Validate already
	// guaranteed the secret is set.
	csrfSecret, err := hex.DecodeString(cfg.Auth.SessionSecret)
	if err != nil {
		csrfSecret = []byte(cfg.Auth.SessionSecret)
	}

	// Provision the development user so the auto-login bypass has a
	// principal to sign in as.
	if cfg.AutoLogin.Enabled {
		log.Printf("WARNING: auto-login bypass is enabled; do not run this configuration in production")
		password := cfg.AutoLogin.Password
		if password == "" {
			password, err = auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate dev user password: %v", err)
			}
		}
		if _, err := authService.EnsureUser(cfg.AutoLogin.Email, password, cfg.AutoLogin.FirstName, cfg.AutoLogin.LastName); err != nil {
			log.Fatalf("Failed to provision auto-login user %s: %v", cfg.AutoLogin.Email, err)
		}
	}

	if hasUsers, _ := authService.HasUsers(); !hasUsers {
		log.Printf("No users found. Run 'create-user' or visit /register to create an account.")
	}

	recorder := audit.NewRecorder(cfg.Audit.Dir)

	studentRepo := students.NewRepository(db.DB)
	meetingRepo := meetings.NewRepository(db.DB)
	activityRepo := activities.NewRepository(db.DB)

	router, cleanup := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:       db,
		Recorder:       recorder,
		StudentStore:   studentRepo,
		MeetingStore:   meetingRepo,
		ActivityStore:  activityRepo,
		StudentStats:   studentRepo,
		MeetingCounts:  meetingRepo,
		ActivityCount:  activityRepo,
		AuthService:    authService,
		SessionManager: sessionManager,
		AuthMiddleware: authMiddleWare,
		AuthConfig:     cfg.Auth,
		CSRFSecret:     csrfSecret,
		SecureCookies:  cfg.Auth.SecureCookies,
		TemplatesPath:  cfg.UI.TemplatesPath,
		StaticPath:     cfg.UI.StaticPath,
		Version:        version,
	})

	Serve(router, cfg, func(ctx context.Context) {
		cleanup()
	})
}
