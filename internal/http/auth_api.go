package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurtoglu/guidance/internal/auth"
	"github.com/ekurtoglu/guidance/internal/entities"
)

// APIAuthController serves the token-based login used by non-browser
// clients.
type APIAuthController struct {
	service *auth.Service
}

func NewAPIAuthController(service *auth.Service) *APIAuthController {
	return &APIAuthController{service: service}
}

type apiLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type apiUserInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func userInfo(user *entities.User) apiUserInfo {
	return apiUserInfo{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.FullName(),
	}
}

// Login exchanges credentials for a signed bearer token.
func (controller *APIAuthController) Login(c *gin.Context) {
	var req apiLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondBadRequest(c, "email and password are required")
		return
	}

	user, err := controller.service.Authenticate(req.Email, req.Password)
	if err != nil {
		// Inactive accounts are distinguishable; bad credentials are not.
		if errors.Is(err, auth.ErrAccountInactive) {
			respondError(c, http.StatusForbidden, "account is inactive")
			return
		}
		respondError(c, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, err := controller.service.IssueToken(user.ID)
	if err != nil {
		respondInternalError(c, err, "issue token")
		return
	}

	respondData(c, gin.H{
		"token": token,
		"user":  userInfo(user),
	})
}

// Logout acknowledges a client-side token discard. Issued tokens stay
// valid until expiry; deactivating the account is the only server-side
// revocation.
func (controller *APIAuthController) Logout(c *gin.Context) {
	respondData(c, gin.H{"message": "logged out"})
}

// Me returns the authenticated principal and how it authenticated.
// Registered behind the API gate.
func (controller *APIAuthController) Me(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		respondError(c, http.StatusUnauthorized, "not authenticated")
		return
	}
	respondData(c, gin.H{
		"user":      userInfo(user),
		"auth_type": auth.GetAuthType(c),
	})
}
