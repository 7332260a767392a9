package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *Order {
	t.Helper()
	order, err := NewOrder(uuid.New(), "buyer@example.com", uuid.New(), "seller@example.com", decimal.NewFromInt(5))
	require.NoError(t, err)
	return order
}

func TestNewOrder(t *testing.T) {
	t.Run("valid order starts pending", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, DeliveryStatusWaiting, order.DeliveryStatus)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(5)))
		assert.Empty(t, order.Items)
	})

	t.Run("buyer cannot buy from self", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "same@example.com", uuid.New(), "same@example.com", decimal.Zero)
		assert.ErrorContains(t, err, "own products")
	})

	t.Run("negative shipping fee rejected", func(t *testing.T) {
		_, err := NewOrder(uuid.New(), "a@example.com", uuid.New(), "b@example.com", decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}

func TestOrderAddItem(t *testing.T) {
	t.Run("adds item and recalculates total", func(t *testing.T) {
		order := newTestOrder(t)

		item, err := order.AddItem(uuid.New(), "Bamboo Cup", 2, decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.True(t, item.Amount.Equal(decimal.NewFromInt(20)))
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(25)))
		assert.Equal(t, 1, order.ItemCount())
	})

	t.Run("rejects duplicate product", func(t *testing.T) {
		order := newTestOrder(t)
		productID := uuid.New()

		_, err := order.AddItem(productID, "Bamboo Cup", 1, decimal.NewFromInt(10))
		require.NoError(t, err)
		_, err = order.AddItem(productID, "Bamboo Cup", 1, decimal.NewFromInt(10))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "Bamboo Cup", 0, decimal.NewFromInt(10))
		assert.Error(t, err)
	})
}

func TestOrderPlace(t *testing.T) {
	t.Run("raises placement event", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "Bamboo Cup", 1, decimal.NewFromInt(10))
		require.NoError(t, err)

		require.NoError(t, order.Place())

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, "OrderPlaced", events[0].EventType())
	})

	t.Run("requires at least one item", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Place())
	})
}

func TestOrderLifecycle(t *testing.T) {
	t.Run("happy path pending to completed", func(t *testing.T) {
		order := newTestOrder(t)
		_, err := order.AddItem(uuid.New(), "Bamboo Cup", 1, decimal.NewFromInt(10))
		require.NoError(t, err)

		require.NoError(t, order.Approve())
		assert.Equal(t, OrderStatusApproved, order.Status)
		require.NotNil(t, order.ApprovedAt)

		start := time.Now()
		end := start.Add(72 * time.Hour)
		require.NoError(t, order.Ship(start, end))
		assert.Equal(t, OrderStatusReceiving, order.Status)
		assert.Equal(t, DeliveryStatusProcessing, order.DeliveryStatus)

		require.NoError(t, order.ConfirmReceipt("https://cdn.example.com/receipts/1.jpg"))
		assert.Equal(t, OrderStatusCompleted, order.Status)
		assert.Equal(t, DeliveryStatusConfirmed, order.DeliveryStatus)
		assert.NotNil(t, order.ReceivedAt)
	})

	t.Run("decline requires reason and is terminal", func(t *testing.T) {
		order := newTestOrder(t)
		assert.Error(t, order.Decline(""))
		require.NoError(t, order.Decline("out of stock"))

		assert.Equal(t, OrderStatusDeclined, order.Status)
		assert.Error(t, order.Approve())
		assert.Error(t, order.Cancel("changed my mind"))
	})

	t.Run("cancel only while pending", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Approve())
		assert.Error(t, order.Cancel("too slow"))
	})

	t.Run("ship rejects inverted delivery window", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Approve())

		end := time.Now()
		start := end.Add(24 * time.Hour)
		assert.Error(t, order.Ship(start, end))
	})

	t.Run("confirm receipt requires photo", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Approve())
		require.NoError(t, order.Ship(time.Now(), time.Now().Add(time.Hour)))
		assert.Error(t, order.ConfirmReceipt(""))
	})

	t.Run("completed is terminal", func(t *testing.T) {
		order := newTestOrder(t)
		require.NoError(t, order.Approve())
		require.NoError(t, order.Ship(time.Now(), time.Now().Add(time.Hour)))
		require.NoError(t, order.ConfirmReceipt("https://cdn.example.com/receipts/2.jpg"))

		assert.Error(t, order.Approve())
		assert.Error(t, order.ConfirmReceipt("https://cdn.example.com/receipts/3.jpg"))
	})
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusApproved, true},
		{OrderStatusPending, OrderStatusDeclined, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusReceiving, false},
		{OrderStatusApproved, OrderStatusReceiving, true},
		{OrderStatusApproved, OrderStatusCancelled, false},
		{OrderStatusReceiving, OrderStatusCompleted, true},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusDeclined, OrderStatusApproved, false},
		{OrderStatusCancelled, OrderStatusApproved, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderTotalQuantity(t *testing.T) {
	order := newTestOrder(t)
	_, err := order.AddItem(uuid.New(), "Bamboo Cup", 2, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Hemp Bag", 3, decimal.NewFromInt(4))
	require.NoError(t, err)

	assert.Equal(t, 5, order.TotalQuantity())
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(37)))
}
