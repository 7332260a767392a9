package notification

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type tags a notification by the event that produced it
type Type string

const (
	TypeOrderPlaced      Type = "ORDER_PLACED"
	TypeOrderApproved    Type = "ORDER_APPROVED"
	TypeOrderDeclined    Type = "ORDER_DECLINED"
	TypeOrderCancelled   Type = "ORDER_CANCELLED"
	TypeOrderShipped     Type = "ORDER_SHIPPED"
	TypeOrderCompleted   Type = "ORDER_COMPLETED"
	TypeRequestPlaced    Type = "REQUEST_PLACED"
	TypeRequestApproved  Type = "REQUEST_APPROVED"
	TypeRequestDeclined  Type = "REQUEST_DECLINED"
	TypeRequestShipped   Type = "REQUEST_SHIPPED"
	TypeRequestCompleted Type = "REQUEST_COMPLETED"
	TypeChatMessage      Type = "CHAT_MESSAGE"
)

// Notification is an append-only inbox entry. The only mutation after
// creation is clearing the read flag.
type Notification struct {
	shared.BaseEntity
	RecipientEmail string
	Text           string
	Type           Type
	Read           bool
}

// New creates a new unread notification
func New(recipientEmail, text string, typ Type) (*Notification, error) {
	if recipientEmail == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient email cannot be empty")
	}
	if text == "" {
		return nil, shared.NewDomainError("INVALID_TEXT", "Notification text cannot be empty")
	}

	return &Notification{
		BaseEntity:     shared.NewBaseEntity(),
		RecipientEmail: recipientEmail,
		Text:           text,
		Type:           typ,
	}, nil
}

// MarkRead clears the unread flag
func (n *Notification) MarkRead() {
	n.Read = true
	n.MarkUpdated()
}

// Repository defines persistence operations for notifications
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Notification, error)
	// FindByRecipient returns notifications newest first
	FindByRecipient(ctx context.Context, email string, filter shared.Filter) ([]Notification, error)
	CountUnread(ctx context.Context, email string) (int64, error)
	Save(ctx context.Context, n *Notification) error
	MarkAllRead(ctx context.Context, email string) error
}
