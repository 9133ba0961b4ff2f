// Package auth provides authentication for the application.
//
// Two mechanisms coexist:
//   - Session cookies for the server-rendered pages, backed by a SQLite
//     session store. Login verifies credentials against the user table
//     and establishes a session; "remember me" extends the cookie beyond
//     the browser session.
//   - Signed bearer tokens (JWT, 24 hour lifetime) for the JSON API.
//     Tokens are stateless: validity is signature plus expiry plus the
//     subject still resolving to an active user. There is no revocation
//     list; deactivating the user is the only way to cut off an
//     outstanding token before it expires.
//
// # Configuration
//
//	SESSION_SECRET=<secret>      # Required; signs sessions and API tokens
//	SESSION_LIFETIME=24h         # Session duration
//	TOKEN_EXPIRY=24h             # API token lifetime
//	BCRYPT_COST=12               # bcrypt cost factor
//	SECURE_COOKIES=true          # HTTPS-only cookies
//
// A development-only auto-login bypass can be enabled with
// AUTO_LOGIN_ENABLED plus AUTO_LOGIN_EMAIL/_PASSWORD; it silently signs
// in the configured user on any request that has no session, except for
// static assets and the logout route. It must never be configured in
// production.
//
// # Usage
//
//	authService := auth.NewService(db, cfg.Auth)
//	gate := auth.NewMiddleware(authService, sessionManager, cfg.AutoLogin)
//	pages.Use(gate.RequirePage())
//	api.Use(gate.RequireAPI())
//
// Handlers read the resolved user with auth.CurrentUser(c).
package auth
