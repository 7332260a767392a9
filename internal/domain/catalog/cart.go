package catalog

import (
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartItem is a product held in a buyer's cart
type CartItem struct {
	shared.BaseEntity
	OwnerEmail string
	ProductID  uuid.UUID
	Quantity   int
}

// NewCartItem creates a new cart item
func NewCartItem(ownerEmail string, productID uuid.UUID, quantity int) (*CartItem, error) {
	if ownerEmail == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Cart owner email cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Cart quantity must be positive")
	}

	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		OwnerEmail: ownerEmail,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity changes the held quantity
func (c *CartItem) SetQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Cart quantity must be positive")
	}
	c.Quantity = quantity
	c.MarkUpdated()
	return nil
}

// WishlistItem is a product a buyer has bookmarked
type WishlistItem struct {
	shared.BaseEntity
	OwnerEmail string
	ProductID  uuid.UUID
}

// NewWishlistItem creates a new wishlist entry
func NewWishlistItem(ownerEmail string, productID uuid.UUID) (*WishlistItem, error) {
	if ownerEmail == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Wishlist owner email cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &WishlistItem{
		BaseEntity: shared.NewBaseEntity(),
		OwnerEmail: ownerEmail,
		ProductID:  productID,
	}, nil
}
