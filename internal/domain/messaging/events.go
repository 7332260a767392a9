package messaging

import (
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeChat = "Chat"

// Event type constant
const EventTypeMessageSent = "ChatMessageSent"

// MessageSentEvent is raised when a participant sends a chat message
type MessageSentEvent struct {
	shared.BaseDomainEvent
	ChatID         uuid.UUID `json:"chat_id"`
	MessageID      uuid.UUID `json:"message_id"`
	SenderEmail    string    `json:"sender_email"`
	RecipientEmail string    `json:"recipient_email"`
	Preview        string    `json:"preview"`
}

// NewMessageSentEvent creates a new MessageSentEvent
func NewMessageSentEvent(chat *Chat, message *Message) *MessageSentEvent {
	return &MessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageSent, AggregateTypeChat, chat.ID),
		ChatID:          chat.ID,
		MessageID:       message.ID,
		SenderEmail:     message.SenderEmail,
		RecipientEmail:  chat.OtherParticipant(message.SenderEmail),
		Preview:         message.Preview(),
	}
}

// EventType returns the event type name
func (e *MessageSentEvent) EventType() string { return EventTypeMessageSent }
