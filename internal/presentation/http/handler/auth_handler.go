package handler

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/agriconnect/agriconnect-api/internal/application/service"
	"github.com/agriconnect/agriconnect-api/internal/domain/enum"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/request"
	"github.com/agriconnect/agriconnect-api/internal/presentation/http/dto/response"
	"github.com/agriconnect/agriconnect-api/pkg/apperror"
)

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	userService *service.UserService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, userService *service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

// Register handles user registration
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     enum.Role(req.Role),
		Location: req.Location,
	})
	if err != nil {
		if apperror.IsAppError(err) {
			response.Error(c, err)
		} else {
			response.BadRequest(c, err.Error())
		}
		return
	}

	response.Created(c, "Registration successful", gin.H{
		"user":          out.User,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          out.User,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// RefreshToken handles token refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	out, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed", gin.H{
		"user":          out.User,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

// GoogleAuth redirects to the Google consent screen
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	url, state, err := h.authService.GetGoogleAuthURL()
	if err != nil {
		response.Error(c, err)
		return
	}

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

// GoogleCallback completes the Google sign-in flow. When a frontend URL is
// configured the browser is redirected there with the tokens in the query
// string; otherwise the tokens are returned as JSON.
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	successURL, errorURL := h.authService.GoogleRedirectURLs()

	state := c.Query("state")
	storedState, err := c.Cookie("oauth_state")
	if err != nil || state == "" || state != storedState {
		h.googleFailure(c, errorURL, "invalid_state", "Invalid OAuth state")
		return
	}

	code := c.Query("code")
	if code == "" {
		h.googleFailure(c, errorURL, "missing_code", "Missing authorization code")
		return
	}

	out, err := h.authService.HandleGoogleCallback(c.Request.Context(), code)
	if err != nil {
		h.googleFailure(c, errorURL, "auth_failed", "Google sign-in failed")
		return
	}

	if successURL != "" {
		q := url.Values{}
		q.Set("access_token", out.AccessToken)
		q.Set("refresh_token", out.RefreshToken)
		c.Redirect(http.StatusTemporaryRedirect, successURL+"?"+q.Encode())
		return
	}

	response.OK(c, "Login successful", gin.H{
		"user":          out.User,
		"access_token":  out.AccessToken,
		"refresh_token": out.RefreshToken,
	})
}

func (h *AuthHandler) googleFailure(c *gin.Context, errorURL, code, message string) {
	if errorURL != "" {
		q := url.Values{}
		q.Set("error", code)
		c.Redirect(http.StatusTemporaryRedirect, errorURL+"?"+q.Encode())
		return
	}
	response.BadRequest(c, message)
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved", user)
}

// UpdateProfile updates the authenticated user's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), *userID, &service.UpdateProfileInput{
		Name:     req.Name,
		Photo:    req.Photo,
		Location: req.Location,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile updated", user)
}
