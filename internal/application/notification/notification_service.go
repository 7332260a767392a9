package notification

import (
	"context"
	"time"

	"github.com/ecomercado/backend/internal/domain/notification"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationResponse is the outward representation of an inbox entry
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Type      string    `json:"type"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(n *notification.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Text:      n.Text,
		Type:      string(n.Type),
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// NotificationService handles the user inbox
type NotificationService struct {
	repo notification.Repository
}

func NewNotificationService(repo notification.Repository) *NotificationService {
	return &NotificationService{repo: repo}
}

// List returns the user's notifications, newest first
func (s *NotificationService) List(ctx context.Context, email string, filter shared.Filter) ([]NotificationResponse, error) {
	notifications, err := s.repo.FindByRecipient(ctx, email, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = toResponse(&notifications[i])
	}
	return responses, nil
}

// CountUnread returns the unread badge count
func (s *NotificationService) CountUnread(ctx context.Context, email string) (int64, error) {
	return s.repo.CountUnread(ctx, email)
}

// MarkRead flags one notification as read. Only the recipient may act.
func (s *NotificationService) MarkRead(ctx context.Context, email string, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n.RecipientEmail != email {
		return shared.ErrForbidden
	}
	n.MarkRead()
	return s.repo.Save(ctx, n)
}

// MarkAllRead clears the whole unread badge
func (s *NotificationService) MarkAllRead(ctx context.Context, email string) error {
	return s.repo.MarkAllRead(ctx, email)
}
