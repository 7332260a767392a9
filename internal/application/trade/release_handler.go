package trade

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"go.uber.org/zap"
)

// QuantityReleaseHandler restores reserved product quantity when an order
// is declined or cancelled.
type QuantityReleaseHandler struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

func NewQuantityReleaseHandler(productRepo catalog.ProductRepository, logger *zap.Logger) *QuantityReleaseHandler {
	return &QuantityReleaseHandler{
		productRepo: productRepo,
		logger:      logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *QuantityReleaseHandler) EventTypes() []string {
	return []string{trade.EventTypeOrderDeclined, trade.EventTypeOrderCancelled}
}

// Handle restores quantity for each item on the dead order
func (h *QuantityReleaseHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	var items []trade.OrderItemInfo
	switch e := event.(type) {
	case *trade.OrderDeclinedEvent:
		items = e.Items
	case *trade.OrderCancelledEvent:
		items = e.Items
	default:
		return nil
	}

	for _, item := range items {
		product, err := h.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			h.logger.Error("failed to load product for quantity release",
				zap.String("product_id", item.ProductID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := product.Release(item.Quantity); err != nil {
			h.logger.Error("invalid quantity release",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
			continue
		}
		if err := h.productRepo.SaveWithLock(ctx, product); err != nil {
			h.logger.Error("failed to restore product quantity",
				zap.String("product_id", item.ProductID.String()),
				zap.Int("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
	return nil
}
