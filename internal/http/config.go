package http

import (
	"github.com/ekurtoglu/guidance/internal/audit"
	"github.com/ekurtoglu/guidance/internal/auth"
	"github.com/ekurtoglu/guidance/internal/config"
	"github.com/ekurtoglu/guidance/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to
// create the HTTP router. This replaces a long parameter list in
// NewRouter for better testability.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Recorder *audit.Recorder

	// Stores
	StudentStore  StudentStore
	MeetingStore  MeetingStore
	ActivityStore ActivityStore
	StudentStats  StudentStatsStore
	MeetingCounts RangeCounter
	ActivityCount RangeCounter

	// Authentication
	AuthService    *auth.Service
	SessionManager *auth.SessionManager
	AuthMiddleware *auth.Middleware
	AuthConfig     config.Auth
	CSRFSecret     []byte
	SecureCookies  bool

	// UI paths
	TemplatesPath string
	StaticPath    string

	// Application info
	Version string
}
