package auth

import (
	"errors"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/config"
)

// DefaultLandingPath is where successful logins without a "next" target
// end up, and where logout redirects.
const DefaultLandingPath = "/dashboard"

// AuthController handles the login, logout, registration and password
// pages.
type AuthController struct {
	service        *Service
	sessionManager *SessionManager
	templates      *template.Template
	config         config.Auth
	rateLimiter    *RateLimiter
}

// NewAuthController creates a new authentication controller.
func NewAuthController(service *Service, sessionManager *SessionManager, templatesPath string, cfg config.Auth) (*AuthController, error) {
	pattern := filepath.Join(templatesPath, "auth", "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		// Templates might not exist yet, create controller without them
		tmpl = nil
	}

	rateLimiter := NewRateLimiter(RateLimitConfig{
		MaxAttempts:     cfg.MaxLoginAttempts,
		WindowDuration:  cfg.RateLimitWindow,
		LockoutDuration: cfg.LockoutDuration,
	})

	return &AuthController{
		service:        service,
		sessionManager: sessionManager,
		templates:      tmpl,
		config:         cfg,
		rateLimiter:    rateLimiter,
	}, nil
}

// RegisterRoutes registers authentication routes on the router.
// Logout is POST-only so it cannot be triggered by a plain link.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginPage)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
	router.GET("/register", ac.RegisterPage)
	router.POST("/register", ac.Register)
}

// Stop cleans up resources (rate limiter background goroutine).
func (ac *AuthController) Stop() {
	if ac.rateLimiter != nil {
		ac.rateLimiter.Stop()
	}
}

// LoginPage renders the login form.
func (ac *AuthController) LoginPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, DefaultLandingPath)
		return
	}

	next := SanitizeRedirect(c.Query("next"), c.Request.Host, DefaultLandingPath)

	ac.renderTemplate(c, "login.html", gin.H{
		"Title":     "Login",
		"Next":      next,
		"CSRFToken": GetCSRFToken(c),
		"Error":     c.Query("error"),
	})
}

// Login handles the login form submission.
func (ac *AuthController) Login(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	remember := c.PostForm("remember_me") != ""
	next := SanitizeRedirect(c.PostForm("next"), c.Request.Host, DefaultLandingPath)
	clientIP := c.ClientIP()

	if ac.rateLimiter != nil {
		allowed, retryAfter := ac.rateLimiter.Allow(clientIP, email)
		if !allowed {
			c.Header("Retry-After", retryAfter.String())
			ac.renderTemplate(c, "login.html", gin.H{
				"Title":     "Login",
				"Next":      next,
				"Email":     email,
				"CSRFToken": GetCSRFToken(c),
				"Error":     "Too many login attempts. Please try again later.",
			})
			return
		}
	}

	user, err := ac.service.Authenticate(email, password)
	if err != nil {
		if ac.rateLimiter != nil {
			ac.rateLimiter.RecordFailure(clientIP, email)
		}

		// Unknown email and wrong password share one message; only an
		// inactive account is surfaced distinctly.
		errorMsg := "Invalid email or password"
		if errors.Is(err, ErrAccountInactive) {
			errorMsg = "Your account is inactive. Please contact the administrator."
		}

		ac.renderTemplate(c, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Email":     email,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	if ac.rateLimiter != nil {
		ac.rateLimiter.RecordSuccess(clientIP, email)
	}

	if err := ac.sessionManager.CreateSession(c.Request, user, remember); err != nil {
		ac.renderTemplate(c, "login.html", gin.H{
			"Title":     "Login",
			"Next":      next,
			"Email":     email,
			"CSRFToken": GetCSRFToken(c),
			"Error":     "Failed to create session",
		})
		return
	}

	c.Redirect(http.StatusFound, next)
}

// Logout destroys the session and redirects to the login page. Calling
// it without a session is a no-op.
func (ac *AuthController) Logout(c *gin.Context) {
	_ = ac.sessionManager.DestroySession(c.Request)
	c.Redirect(http.StatusFound, LoginPath)
}

// RegisterPage renders the registration form.
func (ac *AuthController) RegisterPage(c *gin.Context) {
	if ac.sessionManager.IsAuthenticated(c.Request) {
		c.Redirect(http.StatusFound, DefaultLandingPath)
		return
	}

	ac.renderTemplate(c, "register.html", gin.H{
		"Title":     "Register",
		"CSRFToken": GetCSRFToken(c),
	})
}

// Register handles the registration form submission.
func (ac *AuthController) Register(c *gin.Context) {
	email := c.PostForm("email")
	password := c.PostForm("password")
	firstName := c.PostForm("first_name")
	lastName := c.PostForm("last_name")

	_, err := ac.service.Register(email, password, firstName, lastName)
	if err != nil {
		errorMsg := "Registration failed. Please try again."
		switch {
		case errors.Is(err, ErrEmailRequired), errors.Is(err, ErrEmailInvalid):
			errorMsg = "A valid email address is required"
		case errors.Is(err, ErrNameRequired):
			errorMsg = "First and last name are required"
		case errors.Is(err, ErrPasswordTooShort):
			errorMsg = "Password must be at least 8 characters"
		case errors.Is(err, ErrPasswordTooLong):
			errorMsg = "Password exceeds maximum length of 72 characters"
		case errors.Is(err, ErrUserExists):
			errorMsg = "An account with this email already exists"
		}

		ac.renderTemplate(c, "register.html", gin.H{
			"Title":     "Register",
			"Email":     email,
			"FirstName": firstName,
			"LastName":  lastName,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	c.Redirect(http.StatusFound, LoginPath)
}

// ProfilePage renders the authenticated user's profile. Registered
// behind the page gate.
func (ac *AuthController) ProfilePage(c *gin.Context) {
	user := CurrentUser(c)
	ac.renderTemplate(c, "profile.html", gin.H{
		"Title":     "Profile",
		"User":      user,
		"Session":   ac.sessionManager.GetSessionData(c.Request),
		"CSRFToken": GetCSRFToken(c),
	})
}

// ChangePassword handles the password change form. Requires the current
// password to verify.
func (ac *AuthController) ChangePassword(c *gin.Context) {
	user := CurrentUser(c)
	current := c.PostForm("current_password")
	newPassword := c.PostForm("new_password")

	if err := ac.service.ChangePassword(user.ID, current, newPassword); err != nil {
		errorMsg := "Failed to update password"
		switch {
		case errors.Is(err, ErrInvalidPassword):
			errorMsg = "Your current password is incorrect"
		case errors.Is(err, ErrPasswordTooShort):
			errorMsg = "New password must be at least 8 characters"
		case errors.Is(err, ErrPasswordTooLong):
			errorMsg = "New password exceeds maximum length of 72 characters"
		}
		ac.renderTemplate(c, "profile.html", gin.H{
			"Title":     "Profile",
			"User":      user,
			"CSRFToken": GetCSRFToken(c),
			"Error":     errorMsg,
		})
		return
	}

	c.Redirect(http.StatusFound, DefaultLandingPath)
}

// renderTemplate renders an auth template or falls back to JSON when the
// templates directory is absent (tests, API-only deployments).
func (ac *AuthController) renderTemplate(c *gin.Context, name string, data gin.H) {
	if ac.templates == nil {
		c.JSON(http.StatusOK, data)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := ac.templates.ExecuteTemplate(c.Writer, name, data); err != nil {
		c.String(http.StatusInternalServerError, "Template error: %v", err)
	}
}
