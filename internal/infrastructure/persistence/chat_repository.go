package persistence

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormChatRepository implements messaging.ChatRepository using GORM
type GormChatRepository struct {
	db *gorm.DB
}

// NewGormChatRepository creates a new GormChatRepository
func NewGormChatRepository(db *gorm.DB) *GormChatRepository {
	return &GormChatRepository{db: db}
}

// FindByID finds a chat by ID
func (r *GormChatRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Chat, error) {
	var chat messaging.Chat
	if err := r.db.WithContext(ctx).First(&chat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindByParticipants looks up the chat for a pair of emails. The pair is
// normalized so lookup order does not matter.
func (r *GormChatRepository) FindByParticipants(ctx context.Context, userA, userB string) (*messaging.Chat, error) {
	if userA > userB {
		userA, userB = userB, userA
	}
	var chat messaging.Chat
	if err := r.db.WithContext(ctx).
		First(&chat, "user_a = ? AND user_b = ?", userA, userB).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &chat, nil
}

// FindByUser returns a user's chats, most recently active first
func (r *GormChatRepository) FindByUser(ctx context.Context, email string) ([]messaging.Chat, error) {
	var chats []messaging.Chat
	if err := r.db.WithContext(ctx).
		Where("user_a = ? OR user_b = ?", email, email).
		Order("last_message_at DESC").
		Find(&chats).Error; err != nil {
		return nil, err
	}
	return chats, nil
}

// Save creates or updates a chat
func (r *GormChatRepository) Save(ctx context.Context, chat *messaging.Chat) error {
	return r.db.WithContext(ctx).Save(chat).Error
}

// GormMessageRepository implements messaging.MessageRepository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByChat returns a chat's messages in send order, oldest first
func (r *GormMessageRepository) FindByChat(ctx context.Context, chatID uuid.UUID, limit int) ([]messaging.Message, error) {
	var messages []messaging.Message
	query := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("sent_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// Save persists a message
func (r *GormMessageRepository) Save(ctx context.Context, message *messaging.Message) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// Ensure the implementations satisfy the messaging repositories
var (
	_ messaging.ChatRepository    = (*GormChatRepository)(nil)
	_ messaging.MessageRepository = (*GormMessageRepository)(nil)
)
