package persistence

import (
	"context"
	"testing"

	"github.com/ecomercado/backend/internal/domain/notification"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupNotificationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&notification.Notification{}))
	return db
}

func storeNotification(t *testing.T, repo *GormNotificationRepository, email, text string) *notification.Notification {
	t.Helper()
	n, err := notification.New(email, text, notification.TypeOrderPlaced)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), n))
	return n
}

func TestNotificationRepository_FindByRecipient(t *testing.T) {
	repo := NewGormNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	storeNotification(t, repo, "amy@example.com", "first")
	storeNotification(t, repo, "amy@example.com", "second")
	storeNotification(t, repo, "zoe@example.com", "other inbox")

	inbox, err := repo.FindByRecipient(ctx, "amy@example.com", shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, inbox, 2)
}

func TestNotificationRepository_CountUnreadAndMarkAllRead(t *testing.T) {
	repo := NewGormNotificationRepository(setupNotificationTestDB(t))
	ctx := context.Background()

	storeNotification(t, repo, "amy@example.com", "first")
	read := storeNotification(t, repo, "amy@example.com", "second")
	read.MarkRead()
	require.NoError(t, repo.Save(ctx, read))
	storeNotification(t, repo, "zoe@example.com", "other inbox")

	count, err := repo.CountUnread(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.MarkAllRead(ctx, "amy@example.com"))

	count, err = repo.CountUnread(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Zero(t, count)

	otherCount, err := repo.CountUnread(ctx, "zoe@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), otherCount)
}

func TestNotificationRepository_FindByIDNotFound(t *testing.T) {
	repo := NewGormNotificationRepository(setupNotificationTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
