package identity

import (
	"strings"

	"github.com/ecomercado/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// User is a registered account. Buyers, sellers and donors are all users;
// selling additionally requires the seller registration flag.
type User struct {
	shared.BaseAggregateRoot
	Email            string
	PasswordHash     string
	DisplayName      string
	Address          string
	PhotoURL         string
	PushSubscription string // push relay subscriber ID for this device
	IsSeller         bool
}

// NewUser creates a new user with a bcrypt-hashed password
func NewUser(email, password, displayName, address string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, shared.NewDomainError("INVALID_EMAIL", "A valid email address is required")
	}
	if len(password) < 8 {
		return nil, shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             email,
		PasswordHash:      string(hash),
		DisplayName:       displayName,
		Address:           address,
	}, nil
}

// CheckPassword verifies a plaintext password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ChangePassword re-authenticates with the old password before rehashing
func (u *User) ChangePassword(oldPassword, newPassword string) error {
	if !u.CheckPassword(oldPassword) {
		return shared.NewDomainError("WRONG_PASSWORD", "Current password is incorrect")
	}
	if len(newPassword) < 8 {
		return shared.NewDomainError("WEAK_PASSWORD", "Password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.MarkUpdated()
	return nil
}

// RegisterAsSeller enables product listing for this account
func (u *User) RegisterAsSeller() error {
	if u.IsSeller {
		return shared.NewDomainError("ALREADY_SELLER", "User is already a registered seller")
	}
	u.IsSeller = true
	u.MarkUpdated()
	return nil
}

// UpdateProfile updates mutable profile fields
func (u *User) UpdateProfile(displayName, address, photoURL string) error {
	if displayName == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	u.DisplayName = displayName
	u.Address = address
	if photoURL != "" {
		u.PhotoURL = photoURL
	}
	u.MarkUpdated()
	return nil
}

// SetPushSubscription records the push relay subscriber ID for this account
func (u *User) SetPushSubscription(subID string) {
	u.PushSubscription = subID
	u.MarkUpdated()
}
