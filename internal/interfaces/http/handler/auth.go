package handler

import (
	identityapp "github.com/ecomercado/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles registration, login and profile endpoints
type AuthHandler struct {
	BaseHandler
	authService *identityapp.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *identityapp.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a request to create an account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email,max=200"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Address     string `json:"address" binding:"max=500"`
}

// LoginRequest represents a login attempt
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents profile edits
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" binding:"required,min=1,max=100"`
	Address     string `json:"address" binding:"max=500"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url,max=500"`
}

// ChangePasswordRequest represents a password rotation
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// PushSubscriptionRequest sets or clears the push relay subscriber ID
type PushSubscriptionRequest struct {
	SubscriberID string `json:"subscriber_id" binding:"max=200"`
}

// Register creates a new account and returns tokens
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), identityapp.RegisterRequest{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Address:     req.Address,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Login authenticates and returns tokens
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), identityapp.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Refresh exchanges a refresh token for a new token pair
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tokens)
}

// Profile returns the authenticated user's profile
func (h *AuthHandler) Profile(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateProfile edits the authenticated user's profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), email, identityapp.UpdateProfileRequest{
		DisplayName: req.DisplayName,
		Address:     req.Address,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// ChangePassword rotates the authenticated user's password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	err := h.authService.ChangePassword(c.Request.Context(), email, identityapp.ChangePasswordRequest{
		OldPassword: req.OldPassword,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RegisterAsSeller upgrades the account to a seller account
func (h *AuthHandler) RegisterAsSeller(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	user, err := h.authService.RegisterAsSeller(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, user)
}

// SetPushSubscription stores the push relay subscriber ID for the user.
// An empty subscriber ID unsubscribes.
func (h *AuthHandler) SetPushSubscription(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PushSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.authService.SetPushSubscription(c.Request.Context(), email, req.SubscriberID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
