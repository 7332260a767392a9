package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormRequestRepository implements donation.RequestRepository using GORM
type GormRequestRepository struct {
	db *gorm.DB
}

// NewGormRequestRepository creates a new GormRequestRepository
func NewGormRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// FindByID finds a donation request by its ID
func (r *GormRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Request, error) {
	var request donation.Request
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&request, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindByRequester finds requests placed by the given requester
func (r *GormRequestRepository) FindByRequester(ctx context.Context, requesterEmail string, filter shared.Filter) ([]donation.Request, error) {
	var requests []donation.Request
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&donation.Request{}).
			Preload("Items").
			Where("requester_email = ?", requesterEmail),
		filter,
	)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// FindByDonor finds requests that include at least one of the donor's donations
func (r *GormRequestRepository) FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]donation.Request, error) {
	var requests []donation.Request
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&donation.Request{}).
			Preload("Items").
			Where("id IN (?)", r.db.Model(&donation.RequestItem{}).
				Select("request_id").
				Where("donor_email = ?", donorEmail)),
		filter,
	)
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Save creates or updates a request together with its items
func (r *GormRequestRepository) Save(ctx context.Context, request *donation.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(request).Error; err != nil {
			return err
		}
		return r.saveItems(tx, request)
	})
}

// SaveWithLock saves with an optimistic version check
func (r *GormRequestRepository) SaveWithLock(ctx context.Context, request *donation.Request) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		currentVersion := request.Version
		request.Version++
		request.UpdatedAt = time.Now()

		result := tx.Model(&donation.Request{}).
			Where("id = ? AND version = ?", request.ID, currentVersion).
			Updates(map[string]interface{}{
				"status":         request.Status,
				"approved_at":    request.ApprovedAt,
				"shipped_at":     request.ShippedAt,
				"completed_at":   request.CompletedAt,
				"decline_reason": request.DeclineReason,
				"version":        request.Version,
				"updated_at":     request.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrConcurrencyConflict
		}
		return nil
	})
}

func (r *GormRequestRepository) saveItems(tx *gorm.DB, request *donation.Request) error {
	currentItemIDs := make([]uuid.UUID, len(request.Items))
	for i, item := range request.Items {
		currentItemIDs[i] = item.ID
	}

	if len(currentItemIDs) > 0 {
		if err := tx.Where("request_id = ? AND id NOT IN ?", request.ID, currentItemIDs).
			Delete(&donation.RequestItem{}).Error; err != nil {
			return err
		}
	} else {
		if err := tx.Where("request_id = ?", request.ID).
			Delete(&donation.RequestItem{}).Error; err != nil {
			return err
		}
	}

	for i := range request.Items {
		request.Items[i].RequestID = request.ID
		if err := tx.Save(&request.Items[i]).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormRequestRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}

	orderBy := ValidateSortField(filter.OrderBy, OrderSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// Ensure GormRequestRepository implements donation.RequestRepository
var _ donation.RequestRepository = (*GormRequestRepository)(nil)
