package notification

import (
	"context"
	"fmt"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/identity"
	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/ecomercado/backend/internal/domain/notification"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// PushSender delivers a push notification to a relay subscriber. Delivery is
// best effort; implementations retry internally and never report failure to
// the caller.
type PushSender interface {
	Send(ctx context.Context, subscriberID, title, message string)
}

// Dispatcher turns lifecycle events into inbox notifications and push
// deliveries. Inbox writes are the source of truth; push is fire and forget.
type Dispatcher struct {
	notificationRepo notification.Repository
	userRepo         identity.UserRepository
	push             PushSender
	logger           *zap.Logger
}

func NewDispatcher(notificationRepo notification.Repository, userRepo identity.UserRepository, push PushSender, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		push:             push,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (d *Dispatcher) EventTypes() []string {
	return []string{
		trade.EventTypeOrderPlaced,
		trade.EventTypeOrderApproved,
		trade.EventTypeOrderDeclined,
		trade.EventTypeOrderCancelled,
		trade.EventTypeOrderShipped,
		trade.EventTypeOrderCompleted,
		donation.EventTypeRequestPlaced,
		donation.EventTypeRequestApproved,
		donation.EventTypeRequestDeclined,
		donation.EventTypeRequestShipped,
		donation.EventTypeRequestCompleted,
		messaging.EventTypeMessageSent,
	}
}

// Handle routes an event to the recipients it concerns. Order transitions
// notify both buyer and seller; request transitions notify the requester and
// every donor on the request.
func (d *Dispatcher) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *trade.OrderPlacedEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderPlaced,
			fmt.Sprintf("Your order to %s was placed", e.SellerEmail),
			fmt.Sprintf("New order from %s", e.BuyerEmail))
	case *trade.OrderApprovedEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderApproved,
			fmt.Sprintf("%s approved your order", e.SellerEmail),
			fmt.Sprintf("You approved the order from %s", e.BuyerEmail))
	case *trade.OrderDeclinedEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderDeclined,
			fmt.Sprintf("%s declined your order: %s", e.SellerEmail, e.Reason),
			fmt.Sprintf("You declined the order from %s", e.BuyerEmail))
	case *trade.OrderCancelledEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderCancelled,
			fmt.Sprintf("You cancelled your order to %s", e.SellerEmail),
			fmt.Sprintf("%s cancelled their order", e.BuyerEmail))
	case *trade.OrderShippedEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderShipped,
			fmt.Sprintf("%s shipped your order", e.SellerEmail),
			fmt.Sprintf("You shipped the order from %s", e.BuyerEmail))
	case *trade.OrderCompletedEvent:
		d.notifyOrderParties(ctx, e.BuyerEmail, e.SellerEmail, notification.TypeOrderCompleted,
			fmt.Sprintf("You confirmed receipt of the order from %s", e.SellerEmail),
			fmt.Sprintf("%s confirmed receipt of the order", e.BuyerEmail))
	case *donation.RequestPlacedEvent:
		d.notifyRequestParties(ctx, &e.RequestEvent, notification.TypeRequestPlaced,
			"Your donation request was placed",
			fmt.Sprintf("%s requested your donation", e.RequesterEmail))
	case *donation.RequestApprovedEvent:
		d.notifyRequestParties(ctx, &e.RequestEvent, notification.TypeRequestApproved,
			"Your donation request was approved",
			fmt.Sprintf("The donation request from %s was approved", e.RequesterEmail))
	case *donation.RequestDeclinedEvent:
		d.notifyRequestParties(ctx, &e.RequestEvent, notification.TypeRequestDeclined,
			fmt.Sprintf("Your donation request was declined: %s", e.Reason),
			fmt.Sprintf("The donation request from %s was declined", e.RequesterEmail))
	case *donation.RequestShippedEvent:
		d.notifyRequestParties(ctx, &e.RequestEvent, notification.TypeRequestShipped,
			"Your requested donation is on its way",
			fmt.Sprintf("The donation for %s was shipped", e.RequesterEmail))
	case *donation.RequestCompletedEvent:
		d.notifyRequestParties(ctx, &e.RequestEvent, notification.TypeRequestCompleted,
			"You received your requested donation",
			fmt.Sprintf("%s received your donation", e.RequesterEmail))
	case *messaging.MessageSentEvent:
		d.notify(ctx, e.RecipientEmail, notification.TypeChatMessage,
			fmt.Sprintf("%s: %s", e.SenderEmail, e.Preview))
	}
	return nil
}

func (d *Dispatcher) notifyOrderParties(ctx context.Context, buyerEmail, sellerEmail string, typ notification.Type, buyerText, sellerText string) {
	d.notify(ctx, buyerEmail, typ, buyerText)
	d.notify(ctx, sellerEmail, typ, sellerText)
}

func (d *Dispatcher) notifyRequestParties(ctx context.Context, e *donation.RequestEvent, typ notification.Type, requesterText, donorText string) {
	d.notify(ctx, e.RequesterEmail, typ, requesterText)
	for _, donor := range e.DonorEmails {
		d.notify(ctx, donor, typ, donorText)
	}
}

func (d *Dispatcher) notify(ctx context.Context, recipientEmail string, typ notification.Type, text string) {
	n, err := notification.New(recipientEmail, text, typ)
	if err != nil {
		d.logger.Error("failed to build notification",
			zap.String("recipient", recipientEmail),
			zap.Error(err),
		)
		return
	}
	if err := d.notificationRepo.Save(ctx, n); err != nil {
		d.logger.Error("failed to save notification",
			zap.String("recipient", recipientEmail),
			zap.Error(err),
		)
		return
	}

	d.sendPush(ctx, recipientEmail, typ, text)
}

func (d *Dispatcher) sendPush(ctx context.Context, recipientEmail string, typ notification.Type, text string) {
	if d.push == nil {
		return
	}
	user, err := d.userRepo.FindByEmail(ctx, recipientEmail)
	if err != nil {
		d.logger.Warn("push recipient lookup failed",
			zap.String("recipient", recipientEmail),
			zap.Error(err),
		)
		return
	}
	if user.PushSubscription == "" {
		return
	}
	d.push.Send(ctx, user.PushSubscription, title(typ), text)
}

func title(typ notification.Type) string {
	switch typ {
	case notification.TypeChatMessage:
		return "New message"
	case notification.TypeRequestPlaced, notification.TypeRequestApproved,
		notification.TypeRequestDeclined, notification.TypeRequestShipped,
		notification.TypeRequestCompleted:
		return "Donation update"
	default:
		return "Order update"
	}
}
