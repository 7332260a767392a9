package trade

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for orders
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByBuyer(ctx context.Context, buyerEmail string, filter shared.Filter) ([]Order, error)
	FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]Order, error)
	Save(ctx context.Context, order *Order) error
	// SaveWithLock persists with an optimistic version check so a concurrent
	// transition (double-tapped approve, racing cancel) cannot apply twice.
	SaveWithLock(ctx context.Context, order *Order) error
	CountByStatus(ctx context.Context, sellerEmail string, status OrderStatus) (int64, error)
}
