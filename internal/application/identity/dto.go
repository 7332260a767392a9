package identity

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// RegisterRequest is the input to create an account
type RegisterRequest struct {
	Email       string
	Password    string
	DisplayName string
	Address     string
}

// LoginRequest is the input to authenticate
type LoginRequest struct {
	Email    string
	Password string
}

// ChangePasswordRequest is the input to rotate a password
type ChangePasswordRequest struct {
	OldPassword string
	NewPassword string
}

// UpdateProfileRequest is the input to edit profile fields
type UpdateProfileRequest struct {
	DisplayName string
	Address     string
	PhotoURL    string
}

// TokenPair is an access/refresh token set
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// UserResponse is the outward representation of an account
type UserResponse struct {
	ID               uuid.UUID `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	Address          string    `json:"address,omitempty"`
	PhotoURL         string    `json:"photo_url,omitempty"`
	IsSeller         bool      `json:"is_seller"`
	HasPushSubscribe bool      `json:"has_push_subscription"`
	CreatedAt        time.Time `json:"created_at"`
}

// AuthResponse pairs the account with its tokens after login or register
type AuthResponse struct {
	User   UserResponse `json:"user"`
	Tokens TokenPair    `json:"tokens"`
}

// ToUserResponse converts a user to its response DTO
func ToUserResponse(user *identity.User) UserResponse {
	return UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		DisplayName:      user.DisplayName,
		Address:          user.Address,
		PhotoURL:         user.PhotoURL,
		IsSeller:         user.IsSeller,
		HasPushSubscribe: user.PushSubscription != "",
		CreatedAt:        user.CreatedAt,
	}
}
