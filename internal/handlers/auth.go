package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/reviewhub/reviewhub/internal/config"
	"github.com/reviewhub/reviewhub/internal/middleware"
	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/internal/services"
	"github.com/reviewhub/reviewhub/pkg/response"
)

const refreshCookieName = "refreshToken"

type AuthHandler struct {
	authService   *services.AuthService
	secureCookies bool
	refreshMaxAge int // seconds
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService:   services.NewAuthService(db),
		secureCookies: cfg.Server.Mode == "release",
		refreshMaxAge: cfg.JWT.RefreshTTLHours * 3600,
	}
}

// authPayload is the JSON body for register/login/refresh responses. The
// refresh token is excluded on purpose: it travels only in the cookie.
type authPayload struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"accessToken"`
}

// Register handles account creation.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Register(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Created(c, authPayload{User: result.User, AccessToken: result.AccessToken})
}

// Login handles user login.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.authService.Login(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, authPayload{User: result.User, AccessToken: result.AccessToken})
}

// Refresh exchanges the refresh-token cookie for a new token pair.
// POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshCookieName)
	if err != nil {
		response.Error(c, response.NewUnauthenticated("refresh token required"))
		return
	}

	result, err := h.authService.Refresh(refreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setRefreshCookie(c, result.RefreshToken)
	response.Success(c, authPayload{User: result.User, AccessToken: result.AccessToken})
}

// GetProfile returns the current user.
// GET /auth/profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// UpdateProfile applies a partial profile update.
// PUT /auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req services.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.authService.UpdateProfile(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// ChangePassword verifies the current password and stores a new one.
// POST /auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req services.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "password updated successfully")
}

// Logout clears the refresh-token cookie. A refresh token presented from
// elsewhere stays valid until natural expiry; there is no server-side
// revocation.
// POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, "", -1, "/", "", h.secureCookies, true)
	response.Message(c, "logged out successfully")
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookieName, token, h.refreshMaxAge, "/", "", h.secureCookies, true)
}
