package trade

import (
	"context"
	"testing"
	"time"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *mockOrderRepository) FindByBuyer(ctx context.Context, buyerEmail string, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, buyerEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *mockOrderRepository) FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, sellerEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *mockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) SaveWithLock(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *mockOrderRepository) CountByStatus(ctx context.Context, sellerEmail string, status trade.OrderStatus) (int64, error) {
	args := m.Called(ctx, sellerEmail, status)
	return args.Get(0).(int64), args.Error(1)
}

type mockProductRepository struct {
	mock.Mock
}

func (m *mockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, sellerEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindByCategory(ctx context.Context, category string, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, category, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindTopByHits(ctx context.Context, limit int) ([]catalog.Product, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *mockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *mockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// Test fixtures

func newTestService() (*OrderService, *mockOrderRepository, *mockProductRepository, *mockEventPublisher) {
	orderRepo := new(mockOrderRepository)
	productRepo := new(mockProductRepository)
	publisher := new(mockEventPublisher)
	service := NewOrderService(orderRepo, productRepo, zap.NewNop())
	service.SetEventPublisher(publisher)
	return service, orderRepo, productRepo, publisher
}

func approvedProduct(t *testing.T, sellerEmail string, quantity int) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct(uuid.New(), sellerEmail, "Bamboo Toothbrush", "personal-care",
		decimal.NewFromInt(25), quantity, "https://cdn.example.com/p.jpg", "Jakarta")
	require.NoError(t, err)
	require.NoError(t, product.Approve())
	return product
}

func placedOrder(t *testing.T, buyerEmail, sellerEmail string) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(uuid.New(), buyerEmail, uuid.New(), sellerEmail, decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "Bamboo Toothbrush", 2, decimal.NewFromInt(25))
	require.NoError(t, err)
	require.NoError(t, order.Place())
	order.ClearDomainEvents()
	return order
}

func TestOrderService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("places order and reserves quantity", func(t *testing.T) {
		service, orderRepo, productRepo, publisher := newTestService()
		product := approvedProduct(t, "seller@example.com", 5)

		productRepo.On("FindByIDs", ctx, []uuid.UUID{product.ID}).Return([]catalog.Product{*product}, nil)
		productRepo.On("SaveWithLock", ctx, mock.AnythingOfType("*catalog.Product")).Return(nil)
		orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:     uuid.New(),
			BuyerEmail:  "buyer@example.com",
			ShippingFee: decimal.NewFromInt(10),
			Items: []PlaceOrderItemInput{
				{ProductID: product.ID, Quantity: 2},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusPending), resp.Status)
		assert.Equal(t, "seller@example.com", resp.SellerEmail)
		assert.True(t, decimal.NewFromInt(60).Equal(resp.TotalPrice))

		saved := productRepo.Calls[1].Arguments.Get(1).(*catalog.Product)
		assert.Equal(t, 3, saved.Quantity)
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("rejects insufficient stock", func(t *testing.T) {
		service, _, productRepo, _ := newTestService()
		product := approvedProduct(t, "seller@example.com", 1)

		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		_, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:     uuid.New(),
			BuyerEmail:  "buyer@example.com",
			ShippingFee: decimal.Zero,
			Items:       []PlaceOrderItemInput{{ProductID: product.ID, Quantity: 2}},
		})

		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		productRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("rejects self purchase", func(t *testing.T) {
		service, _, productRepo, _ := newTestService()
		product := approvedProduct(t, "seller@example.com", 5)

		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*product}, nil)

		_, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:     uuid.New(),
			BuyerEmail:  "seller@example.com",
			ShippingFee: decimal.Zero,
			Items:       []PlaceOrderItemInput{{ProductID: product.ID, Quantity: 1}},
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "SELF_PURCHASE", domainErr.Code)
	})

	t.Run("rejects items from multiple sellers", func(t *testing.T) {
		service, _, productRepo, _ := newTestService()
		productA := approvedProduct(t, "seller-a@example.com", 5)
		productB := approvedProduct(t, "seller-b@example.com", 5)

		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{*productA, *productB}, nil)

		_, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:     uuid.New(),
			BuyerEmail:  "buyer@example.com",
			ShippingFee: decimal.Zero,
			Items: []PlaceOrderItemInput{
				{ProductID: productA.ID, Quantity: 1},
				{ProductID: productB.ID, Quantity: 1},
			},
		})

		require.Error(t, err)
		domainErr, ok := err.(*shared.DomainError)
		require.True(t, ok)
		assert.Equal(t, "MIXED_SELLERS", domainErr.Code)
	})

	t.Run("rejects unknown product", func(t *testing.T) {
		service, _, productRepo, _ := newTestService()

		productRepo.On("FindByIDs", ctx, mock.Anything).Return([]catalog.Product{}, nil)

		_, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:     uuid.New(),
			BuyerEmail:  "buyer@example.com",
			ShippingFee: decimal.Zero,
			Items:       []PlaceOrderItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("rejects empty order", func(t *testing.T) {
		service, _, _, _ := newTestService()

		_, err := service.Place(ctx, PlaceOrderRequest{
			BuyerID:    uuid.New(),
			BuyerEmail: "buyer@example.com",
		})

		require.Error(t, err)
	})
}

func TestOrderService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("seller approves pending order", func(t *testing.T) {
		service, orderRepo, _, publisher := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Approve(ctx, "seller@example.com", order.ID)

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusApproved), resp.Status)
		assert.NotNil(t, resp.ApprovedAt)
	})

	t.Run("buyer cannot approve", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Approve(ctx, "buyer@example.com", order.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		orderRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("concurrent approve loses version check", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(shared.ErrConcurrencyConflict)

		_, err := service.Approve(ctx, "seller@example.com", order.ID)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}

func TestOrderService_DeclineAndCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("seller declines with reason", func(t *testing.T) {
		service, orderRepo, _, publisher := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Decline(ctx, "seller@example.com", order.ID, "out of stock")

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusDeclined), resp.Status)
		assert.Equal(t, "out of stock", resp.DeclineReason)
	})

	t.Run("buyer cancels pending order", func(t *testing.T) {
		service, orderRepo, _, publisher := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		resp, err := service.Cancel(ctx, "buyer@example.com", order.ID, "changed my mind")

		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusCancelled), resp.Status)
	})

	t.Run("cancel after approval is rejected", func(t *testing.T) {
		service, orderRepo, _, publisher := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")
		require.NoError(t, order.Approve())
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.Cancel(ctx, "buyer@example.com", order.ID, "too late")

		require.Error(t, err)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})
}

func TestOrderService_ShipAndConfirm(t *testing.T) {
	ctx := context.Background()

	t.Run("full delivery flow", func(t *testing.T) {
		service, orderRepo, _, publisher := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")
		require.NoError(t, order.Approve())
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
		orderRepo.On("SaveWithLock", ctx, order).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		start := time.Now()
		end := start.Add(48 * time.Hour)
		resp, err := service.Ship(ctx, "seller@example.com", order.ID, ShipOrderRequest{
			DeliveryStart: start,
			DeliveryEnd:   end,
		})
		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusReceiving), resp.Status)
		assert.Equal(t, string(trade.DeliveryStatusProcessing), resp.DeliveryStatus)

		resp, err = service.ConfirmReceipt(ctx, "buyer@example.com", order.ID, "https://cdn.example.com/receipt.jpg")
		require.NoError(t, err)
		assert.Equal(t, string(trade.OrderStatusCompleted), resp.Status)
		assert.Equal(t, string(trade.DeliveryStatusConfirmed), resp.DeliveryStatus)
		assert.Equal(t, "https://cdn.example.com/receipt.jpg", resp.ReceivedPhotoURL)
	})

	t.Run("confirm without photo is rejected", func(t *testing.T) {
		service, orderRepo, _, _ := newTestService()
		order := placedOrder(t, "buyer@example.com", "seller@example.com")
		require.NoError(t, order.Approve())
		require.NoError(t, order.Ship(time.Now(), time.Now().Add(time.Hour)))
		order.ClearDomainEvents()

		orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

		_, err := service.ConfirmReceipt(ctx, "buyer@example.com", order.ID, "")

		require.Error(t, err)
	})
}

func TestOrderService_GetStatusSummary(t *testing.T) {
	ctx := context.Background()
	service, orderRepo, _, _ := newTestService()

	counts := map[trade.OrderStatus]int64{
		trade.OrderStatusPending:   3,
		trade.OrderStatusApproved:  1,
		trade.OrderStatusReceiving: 2,
		trade.OrderStatusCompleted: 7,
		trade.OrderStatusDeclined:  1,
		trade.OrderStatusCancelled: 0,
	}
	for status, n := range counts {
		orderRepo.On("CountByStatus", ctx, "seller@example.com", status).Return(n, nil)
	}

	summary, err := service.GetStatusSummary(ctx, "seller@example.com")

	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.Pending)
	assert.Equal(t, int64(7), summary.Completed)
	assert.Equal(t, int64(14), summary.Total)
}

func TestQuantityReleaseHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("restores quantity on decline", func(t *testing.T) {
		productRepo := new(mockProductRepository)
		handler := NewQuantityReleaseHandler(productRepo, zap.NewNop())
		product := approvedProduct(t, "seller@example.com", 3)

		productRepo.On("FindByID", ctx, product.ID).Return(product, nil)
		productRepo.On("SaveWithLock", ctx, product).Return(nil)

		order := placedOrder(t, "buyer@example.com", "seller@example.com")
		require.NoError(t, order.Decline("damaged stock"))
		events := order.GetDomainEvents()
		declined, ok := events[len(events)-1].(*trade.OrderDeclinedEvent)
		require.True(t, ok)
		declined.Items = []trade.OrderItemInfo{{ProductID: product.ID, Quantity: 2}}

		err := handler.Handle(ctx, declined)

		require.NoError(t, err)
		assert.Equal(t, 5, product.Quantity)
	})

	t.Run("ignores unrelated events", func(t *testing.T) {
		productRepo := new(mockProductRepository)
		handler := NewQuantityReleaseHandler(productRepo, zap.NewNop())

		order := placedOrder(t, "buyer@example.com", "seller@example.com")
		require.NoError(t, order.Approve())
		events := order.GetDomainEvents()

		err := handler.Handle(ctx, events[len(events)-1])

		require.NoError(t, err)
		productRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}
