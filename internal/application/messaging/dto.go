package messaging

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/google/uuid"
)

// SendMessageRequest is the input to send a chat message. Exactly one of
// Text and ImageURL must be set.
type SendMessageRequest struct {
	Text     string
	ImageURL string
}

// ChatResponse is a conversation as seen by one participant
type ChatResponse struct {
	ID            uuid.UUID `json:"id"`
	OtherEmail    string    `json:"other_email"`
	LastMessage   string    `json:"last_message,omitempty"`
	LastMessageAt time.Time `json:"last_message_at"`
}

// ToChatResponse converts a chat to the viewer's perspective
func ToChatResponse(chat *messaging.Chat, viewerEmail string) ChatResponse {
	return ChatResponse{
		ID:            chat.ID,
		OtherEmail:    chat.OtherParticipant(viewerEmail),
		LastMessage:   chat.LastMessage,
		LastMessageAt: chat.LastMessageAt,
	}
}

// MessageResponse is a single chat entry
type MessageResponse struct {
	ID          uuid.UUID `json:"id"`
	ChatID      uuid.UUID `json:"chat_id"`
	SenderEmail string    `json:"sender_email"`
	Text        string    `json:"text,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	SentAt      time.Time `json:"sent_at"`
}

// ToMessageResponse converts a message to its response DTO
func ToMessageResponse(message *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		ChatID:      message.ChatID,
		SenderEmail: message.SenderEmail,
		Text:        message.Text,
		ImageURL:    message.ImageURL,
		SentAt:      message.SentAt,
	}
}
