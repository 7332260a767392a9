package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDonationRepository implements donation.DonationRepository using GORM
type GormDonationRepository struct {
	db *gorm.DB
}

// NewGormDonationRepository creates a new GormDonationRepository
func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// FindByID finds a donation by its ID
func (r *GormDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	var d donation.Donation
	if err := r.db.WithContext(ctx).First(&d, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByIDs finds donations by a set of IDs
func (r *GormDonationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]donation.Donation, error) {
	if len(ids) == 0 {
		return []donation.Donation{}, nil
	}
	var donations []donation.Donation
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// FindAll finds donations with filtering and pagination
func (r *GormDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]donation.Donation, error) {
	var donations []donation.Donation
	query := r.db.WithContext(ctx).Model(&donation.Donation{}).
		Where("publication = ? AND is_disabled = ? AND is_donated = ?",
			catalog.PublicationStatusApproved, false, false)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR purpose ILIKE ?", pattern, pattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	orderBy := ValidateSortField(filter.OrderBy, DonationSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// FindByDonor finds a donor's own listings, including unapproved and donated
func (r *GormDonationRepository) FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]donation.Donation, error) {
	var donations []donation.Donation
	query := r.db.WithContext(ctx).Model(&donation.Donation{}).
		Where("donor_email = ?", donorEmail)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.Limit())
	}
	query = query.Order("created_at DESC")

	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// FindAvailable finds approved, enabled, not-yet-donated donations
func (r *GormDonationRepository) FindAvailable(ctx context.Context, limit int) ([]donation.Donation, error) {
	var donations []donation.Donation
	query := r.db.WithContext(ctx).
		Where("publication = ? AND is_disabled = ? AND is_donated = ?",
			catalog.PublicationStatusApproved, false, false).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// FindTopByHits finds the most viewed available donations, highest first
func (r *GormDonationRepository) FindTopByHits(ctx context.Context, limit int) ([]donation.Donation, error) {
	var donations []donation.Donation
	query := r.db.WithContext(ctx).
		Where("publication = ? AND is_disabled = ? AND is_donated = ?",
			catalog.PublicationStatusApproved, false, false).
		Order("hits DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// Save creates or updates a donation
func (r *GormDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	return r.db.WithContext(ctx).Save(d).Error
}

// SaveWithLock saves with an optimistic version check
func (r *GormDonationRepository) SaveWithLock(ctx context.Context, d *donation.Donation) error {
	currentVersion := d.Version
	d.Version++
	d.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&donation.Donation{}).
		Where("id = ? AND version = ?", d.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":        d.Name,
			"category":    d.Category,
			"photo_url":   d.PhotoURL,
			"sub_photos":  d.SubPhotos,
			"location":    d.Location,
			"weight_kg":   d.WeightKg,
			"purpose":     d.Purpose,
			"message":     d.Message,
			"publication": d.Publication,
			"is_donated":  d.IsDonated,
			"is_disabled": d.IsDisabled,
			"hits":        d.Hits,
			"version":     d.Version,
			"updated_at":  d.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a donation
func (r *GormDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&donation.Donation{}, "id = ?", id).Error
}

// Ensure GormDonationRepository implements donation.DonationRepository
var _ donation.DonationRepository = (*GormDonationRepository)(nil)
