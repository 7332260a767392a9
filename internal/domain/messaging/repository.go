package messaging

import (
	"context"

	"github.com/google/uuid"
)

// ChatRepository defines persistence operations for chats
type ChatRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Chat, error)
	// FindByParticipants looks up the chat for a normalized pair of emails
	FindByParticipants(ctx context.Context, userA, userB string) (*Chat, error)
	// FindByUser returns a user's chats ordered by last activity, newest first
	FindByUser(ctx context.Context, email string) ([]Chat, error)
	Save(ctx context.Context, chat *Chat) error
}

// MessageRepository defines persistence operations for messages
type MessageRepository interface {
	// FindByChat returns messages ordered by sent timestamp ascending
	FindByChat(ctx context.Context, chatID uuid.UUID, limit int) ([]Message, error)
	Save(ctx context.Context, message *Message) error
}
