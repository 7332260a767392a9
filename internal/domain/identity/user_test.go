package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("normalizes email and hashes password", func(t *testing.T) {
		user, err := NewUser("  Ana@Example.COM ", "supersecret", "Ana", "Quito")
		require.NoError(t, err)

		assert.Equal(t, "ana@example.com", user.Email)
		assert.NotEqual(t, "supersecret", user.PasswordHash)
		assert.True(t, user.CheckPassword("supersecret"))
		assert.False(t, user.CheckPassword("wrong"))
		assert.False(t, user.IsSeller)
	})

	t.Run("rejects invalid email", func(t *testing.T) {
		_, err := NewUser("not-an-email", "supersecret", "Ana", "")
		assert.Error(t, err)
	})

	t.Run("rejects short password", func(t *testing.T) {
		_, err := NewUser("ana@example.com", "short", "Ana", "")
		assert.Error(t, err)
	})

	t.Run("requires display name", func(t *testing.T) {
		_, err := NewUser("ana@example.com", "supersecret", "", "")
		assert.Error(t, err)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("ana@example.com", "supersecret", "Ana", "")
	require.NoError(t, err)

	t.Run("wrong current password", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("nope", "anothersecret"))
	})

	t.Run("weak new password", func(t *testing.T) {
		assert.Error(t, user.ChangePassword("supersecret", "tiny"))
	})

	t.Run("success rotates the hash", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("supersecret", "anothersecret"))
		assert.True(t, user.CheckPassword("anothersecret"))
		assert.False(t, user.CheckPassword("supersecret"))
	})
}

func TestUserRegisterAsSeller(t *testing.T) {
	user, err := NewUser("ana@example.com", "supersecret", "Ana", "")
	require.NoError(t, err)

	require.NoError(t, user.RegisterAsSeller())
	assert.True(t, user.IsSeller)
	assert.Error(t, user.RegisterAsSeller())
}

func TestUserUpdateProfile(t *testing.T) {
	user, err := NewUser("ana@example.com", "supersecret", "Ana", "Quito")
	require.NoError(t, err)
	user.PhotoURL = "https://cdn.example.com/avatars/a.jpg"

	t.Run("empty photo keeps existing", func(t *testing.T) {
		require.NoError(t, user.UpdateProfile("Ana Maria", "Cuenca", ""))
		assert.Equal(t, "Ana Maria", user.DisplayName)
		assert.Equal(t, "Cuenca", user.Address)
		assert.Equal(t, "https://cdn.example.com/avatars/a.jpg", user.PhotoURL)
	})

	t.Run("requires display name", func(t *testing.T) {
		assert.Error(t, user.UpdateProfile("", "Cuenca", ""))
	})
}
