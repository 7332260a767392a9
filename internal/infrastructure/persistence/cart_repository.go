package persistence

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCartRepository implements catalog.CartRepository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// FindByOwner finds a buyer's cart lines, oldest first
func (r *GormCartRepository) FindByOwner(ctx context.Context, ownerEmail string) ([]catalog.CartItem, error) {
	var items []catalog.CartItem
	if err := r.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByOwnerAndProduct finds the cart line for one product
func (r *GormCartRepository) FindByOwnerAndProduct(ctx context.Context, ownerEmail string, productID uuid.UUID) (*catalog.CartItem, error) {
	var item catalog.CartItem
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

// Save creates or updates a cart line
func (r *GormCartRepository) Save(ctx context.Context, item *catalog.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes a cart line
func (r *GormCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.CartItem{}, "id = ?", id).Error
}

// DeleteByOwner empties a buyer's cart
func (r *GormCartRepository) DeleteByOwner(ctx context.Context, ownerEmail string) error {
	return r.db.WithContext(ctx).
		Where("owner_email = ?", ownerEmail).
		Delete(&catalog.CartItem{}).Error
}

// Ensure GormCartRepository implements catalog.CartRepository
var _ catalog.CartRepository = (*GormCartRepository)(nil)
