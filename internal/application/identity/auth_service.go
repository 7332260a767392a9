package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/ecomercado/backend/internal/domain/identity"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TokenIssuer issues and verifies authentication tokens. The JWT adapter in
// the infrastructure layer implements it.
type TokenIssuer interface {
	IssuePair(userID uuid.UUID, email string) (*TokenPair, error)
	VerifyRefresh(token string) (uuid.UUID, string, error)
}

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo identity.UserRepository
	tokens   TokenIssuer
	logger   *zap.Logger
}

func NewAuthService(userRepo identity.UserRepository, tokens TokenIssuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger,
	}
}

// Register creates a new account and logs it in
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "An account with this email already exists")
	}

	user, err := identity.NewUser(req.Email, req.Password, req.DisplayName, req.Address)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

// Login authenticates with email and password. A wrong email and a wrong
// password return the same error.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrUnauthorized
		}
		return nil, err
	}
	if !user.CheckPassword(req.Password) {
		return nil, shared.ErrUnauthorized
	}

	return s.authResponse(user)
}

// Refresh exchanges a valid refresh token for a new token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, email, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	// The account must still exist; a deleted user keeps a dead token.
	if _, err := s.userRepo.FindByEmail(ctx, email); err != nil {
		return nil, shared.ErrUnauthorized
	}

	return s.tokens.IssuePair(userID, email)
}

// GetProfile retrieves the account for an authenticated email
func (s *AuthService) GetProfile(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// UpdateProfile edits mutable profile fields
func (s *AuthService) UpdateProfile(ctx context.Context, email string, req UpdateProfileRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := user.UpdateProfile(req.DisplayName, req.Address, req.PhotoURL); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// ChangePassword rotates the password after re-authenticating
func (s *AuthService) ChangePassword(ctx context.Context, email string, req ChangePasswordRequest) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := user.ChangePassword(req.OldPassword, req.NewPassword); err != nil {
		return err
	}
	return s.userRepo.Save(ctx, user)
}

// RegisterAsSeller enables product listing for the account
func (s *AuthService) RegisterAsSeller(ctx context.Context, email string) (*UserResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := user.RegisterAsSeller(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}
	response := ToUserResponse(user)
	return &response, nil
}

// SetPushSubscription records the push relay subscriber ID for the account
func (s *AuthService) SetPushSubscription(ctx context.Context, email, subID string) error {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	user.SetPushSubscription(subID)
	return s.userRepo.Save(ctx, user)
}

func (s *AuthService) authResponse(user *identity.User) (*AuthResponse, error) {
	pair, err := s.tokens.IssuePair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		User:   ToUserResponse(user),
		Tokens: *pair,
	}, nil
}
