package auth

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/config"
	"github.com/ekurtoglu/guidance/internal/entities"
)

// Context keys for the resolved principal
const (
	ContextKeyUser     = "auth_user"
	ContextKeyAuthType = "auth_type" // "session" or "bearer"
)

// AuthType indicates how the user was authenticated.
type AuthType string

const (
	AuthTypeNone    AuthType = "none"
	AuthTypeSession AuthType = "session"
	AuthTypeBearer  AuthType = "bearer"
)

// LoginPath is where unauthenticated page requests are sent.
const LoginPath = "/login"

// Middleware is the access-control gate applied ahead of protected
// routes. Page routes get the session variant, API routes the bearer
// variant; both attach the resolved user to the context so handlers
// never re-resolve it.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
	autoLogin      config.AutoLogin
}

// NewMiddleware creates the access-control gate.
func NewMiddleware(service *Service, sessionManager *SessionManager, autoLogin config.AutoLogin) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
		autoLogin:      autoLogin,
	}
}

// AutoLoginHandler returns the development auto-login bypass stage. When
// the bypass is enabled, any request without an authenticated session is
// silently signed in as the configured development user, provided that
// user exists and is active. Static assets and the logout route are
// exempt; without the logout exemption, logging out would be impossible.
//
// The stage is inert unless AUTO_LOGIN_ENABLED is set; production
// configurations must not define the auto-login variables at all.
func (m *Middleware) AutoLoginHandler() gin.HandlerFunc {
	if !m.autoLogin.Enabled {
		return func(c *gin.Context) { c.Next() }
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if strings.HasPrefix(path, "/static/") || path == "/favicon.ico" || path == "/logout" {
			c.Next()
			return
		}
		if m.sessionManager.IsAuthenticated(c.Request) {
			c.Next()
			return
		}

		user, err := m.service.GetUserByEmail(m.autoLogin.Email)
		if err != nil || !user.Active {
			c.Next()
			return
		}

		if err := m.sessionManager.CreateSession(c.Request, user, true); err != nil {
			c.Next()
			return
		}
		setCurrentUser(c, user, AuthTypeSession)
		c.Next()
	}
}

// RequirePage is the gate variant for server-rendered pages. A request
// without an active session is redirected to the login page with the
// originally requested path preserved as the "next" parameter.
func (m *Middleware) RequirePage() gin.HandlerFunc {
	return func(c *gin.Context) {
		// The auto-login stage may have already resolved the user
		if CurrentUser(c) != nil {
			c.Next()
			return
		}

		userID := m.sessionManager.GetUserID(c.Request)
		if userID == 0 {
			m.redirectToLogin(c)
			return
		}

		user, err := m.service.GetUserByID(userID)
		if err != nil || !user.Active {
			_ = m.sessionManager.DestroySession(c.Request)
			m.redirectToLogin(c)
			return
		}

		setCurrentUser(c, user, AuthTypeSession)
		c.Next()
	}
}

func (m *Middleware) redirectToLogin(c *gin.Context) {
	next := url.QueryEscape(c.Request.URL.RequestURI())
	c.Redirect(http.StatusFound, LoginPath+"?next="+next)
	c.Abort()
}

// RequireAPI is the gate variant for JSON API routes. Failures answer
// with a structured error body and 401; API routes never redirect.
func (m *Middleware) RequireAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := ParseBearer(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		user, err := m.service.VerifyToken(tokenString)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		setCurrentUser(c, user, AuthTypeBearer)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}

// RequireAdmin is a reserved pipeline stage for admin-only routes.
// There is no role model yet, so the stage passes every authenticated
// request through. Replace the body once roles land.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
	}
}

// ActivityLog is a reserved pipeline stage for recording user activity
// per route. Recording is not implemented; the stage only fixes the
// place in the pipeline where it will happen. The action name is kept
// so call sites don't change when recording is added.
func (m *Middleware) ActivityLog(action string) gin.HandlerFunc {
	_ = action
	return func(c *gin.Context) {
		c.Next()
	}
}

func setCurrentUser(c *gin.Context, user *entities.User, authType AuthType) {
	c.Set(ContextKeyUser, user)
	c.Set(ContextKeyAuthType, authType)
}

// CurrentUser retrieves the authenticated user resolved by the gate.
// Returns nil when the request is unauthenticated.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}

// GetUserID returns the authenticated user's ID, or 0.
func GetUserID(c *gin.Context) uint {
	if user := CurrentUser(c); user != nil {
		return user.ID
	}
	return 0
}

// GetAuthType retrieves the authentication method used.
func GetAuthType(c *gin.Context) AuthType {
	if t, exists := c.Get(ContextKeyAuthType); exists {
		if authType, ok := t.(AuthType); ok {
			return authType
		}
	}
	return AuthTypeNone
}
