package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var (
	// ErrSessionSecretRequired is returned by Validate when no signing
	// secret is configured. The process must refuse to start in that case:
	// sessions and API tokens are both signed with this secret.
	ErrSessionSecretRequired = errors.New("SESSION_SECRET environment variable is required")

	// ErrAutoLoginEmailRequired is returned when the development auto-login
	// is enabled without a principal to log in as.
	ErrAutoLoginEmailRequired = errors.New("AUTO_LOGIN_EMAIL is required when AUTO_LOGIN_ENABLED is set")
)

type (
	Config struct {
		HTTP
		Global
		Database
		UI
		Audit
		Auth
		AutoLogin
	}

	HTTP struct {
		Port int32
		Host string
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}

	Database struct {
		Path string
	}

	UI struct {
		TemplatesPath string
		StaticPath    string
	}

	Audit struct {
		Dir string
	}

	Auth struct {
		SessionSecret   string
		SessionLifetime time.Duration
		TokenExpiry     time.Duration
		BcryptCost      int
		SecureCookies   bool // Set to false for local dev without HTTPS

		// Login rate limiting
		MaxLoginAttempts int           // Max failed attempts before lockout (default: 5)
		RateLimitWindow  time.Duration // Time window for counting attempts (default: 15m)
		LockoutDuration  time.Duration // How long to lock out (default: 30m)
	}

	// AutoLogin configures the development-only login bypass. It is off
	// unless AUTO_LOGIN_ENABLED is set explicitly; production deployments
	// must not define any of these variables at all.
	AutoLogin struct {
		Enabled   bool
		Email     string
		Password  string
		FirstName string
		LastName  string
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8190)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("audit_dir", "./audit")

	// Auth defaults
	v.SetDefault("session_secret", "")
	v.SetDefault("session_lifetime", "24h")
	v.SetDefault("token_expiry", TokenLifetime.String())
	v.SetDefault("bcrypt_cost", 12)
	v.SetDefault("secure_cookies", true)
	v.SetDefault("max_login_attempts", 5)
	v.SetDefault("rate_limit_window", "15m")
	v.SetDefault("lockout_duration", "30m")

	// Development auto-login defaults (disabled)
	v.SetDefault("auto_login_enabled", false)
	v.SetDefault("auto_login_email", "")
	v.SetDefault("auto_login_password", "")
	v.SetDefault("auto_login_first_name", "Dev")
	v.SetDefault("auto_login_last_name", "Counselor")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
		},
		Audit: Audit{
			Dir: v.GetString("AUDIT_DIR"),
		},
		Auth: Auth{
			SessionSecret:    v.GetString("SESSION_SECRET"),
			SessionLifetime:  v.GetDuration("SESSION_LIFETIME"),
			TokenExpiry:      v.GetDuration("TOKEN_EXPIRY"),
			BcryptCost:       v.GetInt("BCRYPT_COST"),
			SecureCookies:    v.GetBool("SECURE_COOKIES"),
			MaxLoginAttempts: v.GetInt("MAX_LOGIN_ATTEMPTS"),
			RateLimitWindow:  v.GetDuration("RATE_LIMIT_WINDOW"),
			LockoutDuration:  v.GetDuration("LOCKOUT_DURATION"),
		},
		AutoLogin: AutoLogin{
			Enabled:   v.GetBool("AUTO_LOGIN_ENABLED"),
			Email:     v.GetString("AUTO_LOGIN_EMAIL"),
			Password:  v.GetString("AUTO_LOGIN_PASSWORD"),
			FirstName: v.GetString("AUTO_LOGIN_FIRST_NAME"),
			LastName:  v.GetString("AUTO_LOGIN_LAST_NAME"),
		},
	}
}

// Validate checks for configuration the process cannot run without.
func (c *Config) Validate() error {
	if c.Auth.SessionSecret == "" {
		return ErrSessionSecretRequired
	}
	if c.AutoLogin.Enabled && c.AutoLogin.Email == "" {
		return ErrAutoLoginEmailRequired
	}
	return nil
}
