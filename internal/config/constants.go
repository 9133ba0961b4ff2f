package config

import "time"

const (
	// DefaultDatabasePath is the default path for the application database
	DefaultDatabasePath = "./guidance.db"

	// TokenLifetime is how long an issued API token stays valid. There is
	// no refresh or revocation: an expired token requires a fresh login.
	TokenLifetime = 24 * time.Hour
)
