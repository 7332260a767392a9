package persistence

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormWishlistRepository implements catalog.WishlistRepository using GORM
type GormWishlistRepository struct {
	db *gorm.DB
}

// NewGormWishlistRepository creates a new GormWishlistRepository
func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

// FindByOwner finds a buyer's wishlist, newest first
func (r *GormWishlistRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]catalog.WishlistItem, error) {
	var items []catalog.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByOwnerAndProduct finds a wishlist entry for one product
func (r *GormWishlistRepository) FindByOwnerAndProduct(ctx context.Context, ownerEmail string, productID uuid.UUID) (*catalog.WishlistItem, error) {
	var item catalog.WishlistItem
	if err := r.db.WithContext(ctx).
		Where("owner_email = ? AND product_id = ?", ownerEmail, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// Save creates or updates a wishlist entry
func (r *GormWishlistRepository) Save(ctx context.Context, item *catalog.WishlistItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a wishlist entry
func (r *GormWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.WishlistItem{}, "id = ?", id).Error
}

// Ensure GormWishlistRepository implements catalog.WishlistRepository
var _ catalog.WishlistRepository = (*GormWishlistRepository)(nil)
