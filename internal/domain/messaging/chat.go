package messaging

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Chat is a two-party conversation between users, keyed by the pair of
// participant emails.
type Chat struct {
	shared.BaseEntity
	UserA         string // lexicographically smaller participant email
	UserB         string
	LastMessage   string
	LastMessageAt time.Time
}

// NewChat creates a chat between two users. Participant order is normalized
// so the same pair always maps to one chat.
func NewChat(userA, userB string) (*Chat, error) {
	if userA == "" || userB == "" {
		return nil, shared.NewDomainError("INVALID_PARTICIPANT", "Both participant emails are required")
	}
	if userA == userB {
		return nil, shared.NewDomainError("SELF_CHAT", "Cannot open a chat with yourself")
	}
	if userA > userB {
		userA, userB = userB, userA
	}

	return &Chat{
		BaseEntity: shared.NewBaseEntity(),
		UserA:      userA,
		UserB:      userB,
	}, nil
}

// HasParticipant reports whether the email belongs to this chat
func (c *Chat) HasParticipant(email string) bool {
	return c.UserA == email || c.UserB == email
}

// OtherParticipant returns the counterpart of the given participant
func (c *Chat) OtherParticipant(email string) string {
	if c.UserA == email {
		return c.UserB
	}
	return c.UserA
}

// Touch records the latest message preview and timestamp
func (c *Chat) Touch(preview string, at time.Time) {
	c.LastMessage = preview
	c.LastMessageAt = at
	c.MarkUpdated()
}

// Message is a single chat entry: either text or an image URL
type Message struct {
	shared.BaseEntity
	ChatID      uuid.UUID
	SenderEmail string
	Text        string
	ImageURL    string
	SentAt      time.Time
}

// NewMessage creates a message. Exactly one of text and imageURL must be set.
func NewMessage(chatID uuid.UUID, senderEmail, text, imageURL string) (*Message, error) {
	if chatID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHAT", "Chat ID cannot be empty")
	}
	if senderEmail == "" {
		return nil, shared.NewDomainError("INVALID_SENDER", "Sender email cannot be empty")
	}
	if text == "" && imageURL == "" {
		return nil, shared.NewDomainError("EMPTY_MESSAGE", "Message must contain text or an image")
	}
	if text != "" && imageURL != "" {
		return nil, shared.NewDomainError("INVALID_MESSAGE", "Message cannot contain both text and an image")
	}

	return &Message{
		BaseEntity:  shared.NewBaseEntity(),
		ChatID:      chatID,
		SenderEmail: senderEmail,
		Text:        text,
		ImageURL:    imageURL,
		SentAt:      time.Now(),
	}, nil
}

// Preview returns the text shown in chat lists
func (m *Message) Preview() string {
	if m.ImageURL != "" {
		return "[photo]"
	}
	return m.Text
}
