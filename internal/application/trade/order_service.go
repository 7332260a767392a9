package trade

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderService handles order lifecycle operations. It is the single
// authority for status transitions; handlers never write statuses directly.
type OrderService struct {
	orderRepo      trade.OrderRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(orderRepo trade.OrderRepository, productRepo catalog.ProductRepository, logger *zap.Logger) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *OrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Place creates a new order in Pending status and reserves product quantity.
// Reservation happens exactly once, here; receipt confirmation does not
// deduct again. If any product lacks stock the whole placement fails.
func (s *OrderService) Place(ctx context.Context, req PlaceOrderRequest) (*OrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot place an order without items")
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ProductID
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(products) != len(req.Items) {
		return nil, shared.ErrNotFound
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// All items must come from one seller; the client places one order per
	// seller when checking out a mixed cart.
	sellerID := products[0].SellerID
	sellerEmail := products[0].SellerEmail
	for i := range products {
		if products[i].SellerEmail != sellerEmail {
			return nil, shared.NewDomainError("MIXED_SELLERS", "All order items must belong to one seller")
		}
		if !products[i].IsAvailable() {
			return nil, shared.NewDomainError("UNAVAILABLE_PRODUCT", "Product is not available for purchase")
		}
	}

	order, err := trade.NewOrder(req.BuyerID, req.BuyerEmail, sellerID, sellerEmail, req.ShippingFee)
	if err != nil {
		return nil, err
	}

	for _, item := range req.Items {
		product := byID[item.ProductID]
		if _, err := order.AddItem(product.ID, product.Name, item.Quantity, product.Price); err != nil {
			return nil, err
		}
		if err := product.Reserve(item.Quantity); err != nil {
			return nil, err
		}
	}

	if err := order.Place(); err != nil {
		return nil, err
	}

	// Persist reservations first so a quantity race fails the placement
	// instead of oversubscribing stock.
	for i := range products {
		if err := s.productRepo.SaveWithLock(ctx, &products[i]); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order visible to the acting user
func (s *OrderService) GetByID(ctx context.Context, actorEmail string, orderID uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerEmail != actorEmail && order.SellerEmail != actorEmail {
		return nil, shared.ErrForbidden
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// ListForBuyer retrieves a buyer's orders
func (s *OrderService) ListForBuyer(ctx context.Context, buyerEmail string, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindByBuyer(ctx, buyerEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListForSeller retrieves a seller's incoming orders
func (s *OrderService) ListForSeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]OrderResponse, error) {
	orders, err := s.orderRepo.FindBySeller(ctx, sellerEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// Approve transitions Pending -> Approved. Only the seller may approve.
func (s *OrderService) Approve(ctx context.Context, sellerEmail string, orderID uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.Order) error {
		if order.SellerEmail != sellerEmail {
			return shared.ErrForbidden
		}
		return order.Approve()
	})
}

// Decline transitions Pending -> Declined. Only the seller may decline.
// Reserved quantity is restored by the release handler.
func (s *OrderService) Decline(ctx context.Context, sellerEmail string, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.Order) error {
		if order.SellerEmail != sellerEmail {
			return shared.ErrForbidden
		}
		return order.Decline(reason)
	})
}

// Cancel transitions Pending -> Cancelled. Only the buyer may cancel.
func (s *OrderService) Cancel(ctx context.Context, buyerEmail string, orderID uuid.UUID, reason string) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.Order) error {
		if order.BuyerEmail != buyerEmail {
			return shared.ErrForbidden
		}
		return order.Cancel(reason)
	})
}

// Ship transitions Approved -> Receiving with a delivery window
func (s *OrderService) Ship(ctx context.Context, sellerEmail string, orderID uuid.UUID, req ShipOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.Order) error {
		if order.SellerEmail != sellerEmail {
			return shared.ErrForbidden
		}
		return order.Ship(req.DeliveryStart, req.DeliveryEnd)
	})
}

// ConfirmReceipt transitions Receiving -> Completed with the receipt photo
// already uploaded to the object store by the interface layer.
func (s *OrderService) ConfirmReceipt(ctx context.Context, buyerEmail string, orderID uuid.UUID, receivedPhotoURL string) (*OrderResponse, error) {
	return s.transition(ctx, orderID, func(order *trade.Order) error {
		if order.BuyerEmail != buyerEmail {
			return shared.ErrForbidden
		}
		return order.ConfirmReceipt(receivedPhotoURL)
	})
}

// GetStatusSummary retrieves order counts by status for a seller
func (s *OrderService) GetStatusSummary(ctx context.Context, sellerEmail string) (*OrderStatusSummary, error) {
	summary := &OrderStatusSummary{}
	counts := []struct {
		status trade.OrderStatus
		dest   *int64
	}{
		{trade.OrderStatusPending, &summary.Pending},
		{trade.OrderStatusApproved, &summary.Approved},
		{trade.OrderStatusReceiving, &summary.Receiving},
		{trade.OrderStatusCompleted, &summary.Completed},
		{trade.OrderStatusDeclined, &summary.Declined},
		{trade.OrderStatusCancelled, &summary.Cancelled},
	}

	for _, c := range counts {
		n, err := s.orderRepo.CountByStatus(ctx, sellerEmail, c.status)
		if err != nil {
			return nil, err
		}
		*c.dest = n
		summary.Total += n
	}
	return summary, nil
}

// transition applies a guarded state change under optimistic locking and
// publishes the resulting events. A concurrent duplicate action loses the
// version check instead of firing its side effects twice.
func (s *OrderService) transition(ctx context.Context, orderID uuid.UUID, apply func(*trade.Order) error) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := apply(order); err != nil {
		return nil, err
	}

	if err := s.orderRepo.SaveWithLock(ctx, order); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// publishEvents fans the pending events out to the bus. Dispatch failures
// are logged and never roll back the already-persisted status write.
func (s *OrderService) publishEvents(ctx context.Context, order *trade.Order) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range order.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish order event",
				zap.String("event_type", event.EventType()),
				zap.String("order_id", order.ID.String()),
				zap.Error(err),
			)
		}
	}
	order.ClearDomainEvents()
}
