package push

import (
	"context"

	"github.com/ecomercado/backend/internal/application/notification"
)

// NopSender discards pushes. Used when the relay is disabled so the
// notification dispatcher still writes inbox entries.
type NopSender struct{}

// NewNopSender creates a NopSender
func NewNopSender() *NopSender {
	return &NopSender{}
}

// Send discards the notification
func (*NopSender) Send(context.Context, string, string, string) {}

var _ notification.PushSender = (*NopSender)(nil)
