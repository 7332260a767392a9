package catalog

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines persistence operations for products
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, category string, limit int) ([]Product, error)
	// FindTopByHits returns the most viewed available products, highest first
	FindTopByHits(ctx context.Context, limit int) ([]Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	// SaveWithLock persists with an optimistic version check; quantity
	// reservation races resolve here rather than by last-write-wins.
	SaveWithLock(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindByKind(ctx context.Context, kind CategoryKind) ([]Category, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CartRepository defines persistence operations for cart items
type CartRepository interface {
	FindByOwner(ctx context.Context, ownerEmail string) ([]CartItem, error)
	FindByOwnerAndProduct(ctx context.Context, ownerEmail string, productID uuid.UUID) (*CartItem, error)
	Save(ctx context.Context, item *CartItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByOwner(ctx context.Context, ownerEmail string) error
}

// WishlistRepository defines persistence operations for wishlist entries
type WishlistRepository interface {
	FindByOwner(ctx context.Context, ownerEmail string) ([]WishlistItem, error)
	FindByOwnerAndProduct(ctx context.Context, ownerEmail string, productID uuid.UUID) (*WishlistItem, error)
	Save(ctx context.Context, item *WishlistItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RatingRepository defines persistence operations for product ratings
type RatingRepository interface {
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]ProductRating, error)
	FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*ProductRating, error)
	Save(ctx context.Context, rating *ProductRating) error
	AverageByProduct(ctx context.Context, productID uuid.UUID) (float64, error)
}
