package notification

import (
	"context"
	"testing"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/identity"
	"github.com/ecomercado/backend/internal/domain/messaging"
	"github.com/ecomercado/backend/internal/domain/notification"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) FindByID(ctx context.Context, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *mockNotificationRepository) FindByRecipient(ctx context.Context, email string, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, email, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *mockNotificationRepository) CountUnread(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *mockNotificationRepository) MarkAllRead(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *mockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

type mockPushSender struct {
	mock.Mock
}

func (m *mockPushSender) Send(ctx context.Context, subscriberID, title, message string) {
	m.Called(ctx, subscriberID, title, message)
}

func subscribedUser(t *testing.T, email, subID string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(email, "supersecret", "Test User", "")
	require.NoError(t, err)
	user.SetPushSubscription(subID)
	return user
}

func placedOrder(t *testing.T) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(uuid.New(), "buyer@example.com", uuid.New(), "seller@example.com", decimal.Zero)
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Bamboo Cup", 1, decimal.NewFromInt(10))
	require.NoError(t, err)
	return order
}

func TestDispatcher_OrderPlaced(t *testing.T) {
	ctx := context.Background()

	t.Run("writes inbox entries and pushes to both subscribed parties", func(t *testing.T) {
		notificationRepo := new(mockNotificationRepository)
		userRepo := new(mockUserRepository)
		push := new(mockPushSender)

		notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.RecipientEmail == "seller@example.com" && n.Type == notification.TypeOrderPlaced
		})).Return(nil)
		notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
			return n.RecipientEmail == "buyer@example.com" && n.Type == notification.TypeOrderPlaced
		})).Return(nil)
		userRepo.On("FindByEmail", ctx, "seller@example.com").
			Return(subscribedUser(t, "seller@example.com", "sub-7"), nil)
		userRepo.On("FindByEmail", ctx, "buyer@example.com").
			Return(subscribedUser(t, "buyer@example.com", "sub-8"), nil)
		push.On("Send", ctx, "sub-7", "Order update", mock.Anything).Return()
		push.On("Send", ctx, "sub-8", "Order update", mock.Anything).Return()

		dispatcher := NewDispatcher(notificationRepo, userRepo, push, zap.NewNop())
		require.NoError(t, dispatcher.Handle(ctx, trade.NewOrderPlacedEvent(placedOrder(t))))

		notificationRepo.AssertExpectations(t)
		push.AssertExpectations(t)
	})

	t.Run("skips push when a recipient has no subscription", func(t *testing.T) {
		notificationRepo := new(mockNotificationRepository)
		userRepo := new(mockUserRepository)
		push := new(mockPushSender)

		notificationRepo.On("Save", ctx, mock.Anything).Return(nil)
		userRepo.On("FindByEmail", ctx, mock.Anything).
			Return(subscribedUser(t, "seller@example.com", ""), nil)

		dispatcher := NewDispatcher(notificationRepo, userRepo, push, zap.NewNop())
		require.NoError(t, dispatcher.Handle(ctx, trade.NewOrderPlacedEvent(placedOrder(t))))

		push.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestDispatcher_NotifiesBothParties(t *testing.T) {
	ctx := context.Background()

	inboxRecipients := func(t *testing.T, event shared.DomainEvent) []string {
		t.Helper()
		notificationRepo := new(mockNotificationRepository)
		userRepo := new(mockUserRepository)

		var recipients []string
		notificationRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			recipients = append(recipients, args.Get(1).(*notification.Notification).RecipientEmail)
		}).Return(nil)

		dispatcher := NewDispatcher(notificationRepo, userRepo, nil, zap.NewNop())
		require.NoError(t, dispatcher.Handle(ctx, event))
		return recipients
	}

	t.Run("order approval reaches buyer and seller", func(t *testing.T) {
		order := placedOrder(t)
		require.NoError(t, order.Place())
		require.NoError(t, order.Approve())

		recipients := inboxRecipients(t, trade.NewOrderApprovedEvent(order))
		assert.Contains(t, recipients, "buyer@example.com")
		assert.Contains(t, recipients, "seller@example.com")
		assert.Len(t, recipients, 2)
	})

	t.Run("every order transition reaches both parties", func(t *testing.T) {
		order := placedOrder(t)
		events := []shared.DomainEvent{
			trade.NewOrderPlacedEvent(order),
			trade.NewOrderApprovedEvent(order),
			trade.NewOrderDeclinedEvent(order),
			trade.NewOrderCancelledEvent(order),
			trade.NewOrderShippedEvent(order),
			trade.NewOrderCompletedEvent(order),
		}
		for _, event := range events {
			recipients := inboxRecipients(t, event)
			assert.Contains(t, recipients, "buyer@example.com", event.EventType())
			assert.Contains(t, recipients, "seller@example.com", event.EventType())
		}
	})

	t.Run("request approval reaches requester and every donor", func(t *testing.T) {
		req, err := donation.NewRequest(uuid.New(), "needy@example.com", decimal.Zero)
		require.NoError(t, err)
		require.NoError(t, req.AddDonation(uuid.New(), "donor1@example.com"))
		require.NoError(t, req.AddDonation(uuid.New(), "donor2@example.com"))

		recipients := inboxRecipients(t, donation.NewRequestApprovedEvent(req))
		assert.Contains(t, recipients, "needy@example.com")
		assert.Contains(t, recipients, "donor1@example.com")
		assert.Contains(t, recipients, "donor2@example.com")
		assert.Len(t, recipients, 3)
	})
}

func TestDispatcher_ChatMessage(t *testing.T) {
	ctx := context.Background()

	chat, err := messaging.NewChat("amy@example.com", "zoe@example.com")
	require.NoError(t, err)
	msg, err := messaging.NewMessage(chat.ID, "amy@example.com", "hello there", "")
	require.NoError(t, err)

	notificationRepo := new(mockNotificationRepository)
	userRepo := new(mockUserRepository)
	push := new(mockPushSender)

	notificationRepo.On("Save", ctx, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.RecipientEmail == "zoe@example.com" && n.Type == notification.TypeChatMessage
	})).Return(nil)
	userRepo.On("FindByEmail", ctx, "zoe@example.com").
		Return(subscribedUser(t, "zoe@example.com", "sub-9"), nil)
	push.On("Send", ctx, "sub-9", "New message", "amy@example.com: hello there").Return()

	dispatcher := NewDispatcher(notificationRepo, userRepo, push, zap.NewNop())
	require.NoError(t, dispatcher.Handle(ctx, messaging.NewMessageSentEvent(chat, msg)))

	notificationRepo.AssertExpectations(t)
	push.AssertExpectations(t)
}

func TestDispatcher_EventTypes(t *testing.T) {
	dispatcher := NewDispatcher(new(mockNotificationRepository), new(mockUserRepository), nil, zap.NewNop())

	types := dispatcher.EventTypes()
	assert.Contains(t, types, trade.EventTypeOrderPlaced)
	assert.Contains(t, types, messaging.EventTypeMessageSent)
	assert.Len(t, types, 12)
}
