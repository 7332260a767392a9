package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupChatTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&messaging.Chat{}, &messaging.Message{}))
	return db
}

func TestChatRepository_FindByParticipants(t *testing.T) {
	repo := NewGormChatRepository(setupChatTestDB(t))
	ctx := context.Background()

	chat, err := messaging.NewChat("zoe@example.com", "amy@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, chat))

	t.Run("finds regardless of argument order", func(t *testing.T) {
		found, err := repo.FindByParticipants(ctx, "amy@example.com", "zoe@example.com")
		require.NoError(t, err)
		assert.Equal(t, chat.ID, found.ID)

		found, err = repo.FindByParticipants(ctx, "zoe@example.com", "amy@example.com")
		require.NoError(t, err)
		assert.Equal(t, chat.ID, found.ID)
	})

	t.Run("missing pair returns not found", func(t *testing.T) {
		_, err := repo.FindByParticipants(ctx, "amy@example.com", "eve@example.com")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestChatRepository_FindByUser(t *testing.T) {
	repo := NewGormChatRepository(setupChatTestDB(t))
	ctx := context.Background()

	older, err := messaging.NewChat("amy@example.com", "bob@example.com")
	require.NoError(t, err)
	older.Touch("hi", time.Now().Add(-time.Hour))
	require.NoError(t, repo.Save(ctx, older))

	newer, err := messaging.NewChat("amy@example.com", "zoe@example.com")
	require.NoError(t, err)
	newer.Touch("hello", time.Now())
	require.NoError(t, repo.Save(ctx, newer))

	unrelated, err := messaging.NewChat("bob@example.com", "zoe@example.com")
	require.NoError(t, err)
	unrelated.Touch("hey", time.Now())
	require.NoError(t, repo.Save(ctx, unrelated))

	chats, err := repo.FindByUser(ctx, "amy@example.com")
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, newer.ID, chats[0].ID)
	assert.Equal(t, older.ID, chats[1].ID)
}

func TestMessageRepository_FindByChat(t *testing.T) {
	db := setupChatTestDB(t)
	chatRepo := NewGormChatRepository(db)
	msgRepo := NewGormMessageRepository(db)
	ctx := context.Background()

	chat, err := messaging.NewChat("amy@example.com", "zoe@example.com")
	require.NoError(t, err)
	require.NoError(t, chatRepo.Save(ctx, chat))

	first, err := messaging.NewMessage(chat.ID, "amy@example.com", "hello", "")
	require.NoError(t, err)
	first.SentAt = time.Now().Add(-time.Minute)
	require.NoError(t, msgRepo.Save(ctx, first))

	second, err := messaging.NewMessage(chat.ID, "zoe@example.com", "", "https://cdn.example.com/chat/1.jpg")
	require.NoError(t, err)
	require.NoError(t, msgRepo.Save(ctx, second))

	other, err := messaging.NewMessage(uuid.New(), "amy@example.com", "elsewhere", "")
	require.NoError(t, err)
	require.NoError(t, msgRepo.Save(ctx, other))

	t.Run("chronological order", func(t *testing.T) {
		msgs, err := msgRepo.FindByChat(ctx, chat.ID, 0)
		require.NoError(t, err)
		require.Len(t, msgs, 2)
		assert.Equal(t, first.ID, msgs[0].ID)
		assert.Equal(t, second.ID, msgs[1].ID)
	})

	t.Run("limit caps the result", func(t *testing.T) {
		msgs, err := msgRepo.FindByChat(ctx, chat.ID, 1)
		require.NoError(t, err)
		assert.Len(t, msgs, 1)
	})
}
