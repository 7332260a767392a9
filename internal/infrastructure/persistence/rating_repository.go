package persistence

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRatingRepository implements catalog.RatingRepository using GORM
type GormRatingRepository struct {
	db *gorm.DB
}

// NewGormRatingRepository creates a new GormRatingRepository
func NewGormRatingRepository(db *gorm.DB) *GormRatingRepository {
	return &GormRatingRepository{db: db}
}

// FindByProduct finds a product's ratings, newest first
func (r *GormRatingRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]catalog.ProductRating, error) {
	var ratings []catalog.ProductRating
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// FindByOrderAndProduct finds the rating left for a product on one order
func (r *GormRatingRepository) FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (*catalog.ProductRating, error) {
	var rating catalog.ProductRating
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// Save creates or updates a rating
func (r *GormRatingRepository) Save(ctx context.Context, rating *catalog.ProductRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// AverageByProduct computes the mean star rating, zero when unrated
func (r *GormRatingRepository) AverageByProduct(ctx context.Context, productID uuid.UUID) (float64, error) {
	var average float64
	if err := r.db.WithContext(ctx).Model(&catalog.ProductRating{}).
		Where("product_id = ?", productID).
		Select("COALESCE(AVG(stars), 0)").
		Scan(&average).Error; err != nil {
		return 0, err
	}
	return average, nil
}

// Ensure GormRatingRepository implements catalog.RatingRepository
var _ catalog.RatingRepository = (*GormRatingRepository)(nil)
