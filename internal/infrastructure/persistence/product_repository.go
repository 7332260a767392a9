package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product by its ID
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindAll finds products with filtering and pagination
func (r *GormProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Product{}), filter, true)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindBySeller finds a seller's own listings, including unapproved and
// disabled ones
func (r *GormProductRepository) FindBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&catalog.Product{}).Where("seller_email = ?", sellerEmail),
		filter, false,
	)
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByCategory finds available products in a category
func (r *GormProductRepository) FindByCategory(ctx context.Context, category string, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.availableScope(r.db.WithContext(ctx)).
		Where("category = ?", category).
		Order("hits DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindTopByHits finds the most viewed available products, highest first
func (r *GormProductRepository) FindTopByHits(ctx context.Context, limit int) ([]catalog.Product, error) {
	var products []catalog.Product
	query := r.availableScope(r.db.WithContext(ctx)).Order("hits DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// FindByIDs finds products by a set of IDs
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var products []catalog.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save creates or updates a product
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

// SaveWithLock saves with an optimistic version check, guarding quantity
// reservation against concurrent placements
func (r *GormProductRepository) SaveWithLock(ctx context.Context, product *catalog.Product) error {
	currentVersion := product.Version
	product.Version++
	product.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Where("id = ? AND version = ?", product.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":        product.Name,
			"category":    product.Category,
			"description": product.Description,
			"price":       product.Price,
			"quantity":    product.Quantity,
			"photo_url":   product.PhotoURL,
			"location":    product.Location,
			"publication": product.Publication,
			"is_disabled": product.IsDisabled,
			"hits":        product.Hits,
			"version":     product.Version,
			"updated_at":  product.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a product
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&catalog.Product{}, "id = ?", id).Error
}

// Count counts products matching the filter
func (r *GormProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Product{}), filter, true)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormProductRepository) availableScope(db *gorm.DB) *gorm.DB {
	return db.Model(&catalog.Product{}).
		Where("publication = ? AND is_disabled = ? AND quantity > 0",
			catalog.PublicationStatusApproved, false)
}

func (r *GormProductRepository) applyFilter(query *gorm.DB, filter shared.Filter, publicOnly bool) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter, publicOnly)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, ProductSortFields, "created_at")
	return query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
}

func (r *GormProductRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter, publicOnly bool) *gorm.DB {
	if publicOnly {
		query = query.Where("publication = ? AND is_disabled = ?",
			catalog.PublicationStatusApproved, false)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if location, ok := filter.Filters["location"]; ok {
		if loc, isStr := location.(string); isStr && loc != "" {
			query = query.Where("LOWER(location) LIKE ?", "%"+loc+"%")
		}
	}
	return query
}

// Ensure GormProductRepository implements catalog.ProductRepository
var _ catalog.ProductRepository = (*GormProductRepository)(nil)
