package persistence

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/recommend"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormHitRepository implements recommend.HitRepository using GORM
type GormHitRepository struct {
	db *gorm.DB
}

// NewGormHitRepository creates a new GormHitRepository
func NewGormHitRepository(db *gorm.DB) *GormHitRepository {
	return &GormHitRepository{db: db}
}

// FindByUserAndTarget finds the hit record for one user and one target
func (r *GormHitRepository) FindByUserAndTarget(ctx context.Context, userEmail string, targetID uuid.UUID) (*recommend.UserHit, error) {
	var hit recommend.UserHit
	if err := r.db.WithContext(ctx).
		First(&hit, "user_email = ? AND target_id = ?", userEmail, targetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hit, nil
}

// FindTopByUser returns a user's most viewed targets of a kind, highest first
func (r *GormHitRepository) FindTopByUser(ctx context.Context, userEmail string, kind recommend.TargetKind, limit int) ([]recommend.UserHit, error) {
	var hits []recommend.UserHit
	query := r.db.WithContext(ctx).
		Where("user_email = ? AND kind = ?", userEmail, kind).
		Order("hits DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&hits).Error; err != nil {
		return nil, err
	}
	return hits, nil
}

// Save creates or updates a hit record
func (r *GormHitRepository) Save(ctx context.Context, hit *recommend.UserHit) error {
	return r.db.WithContext(ctx).Save(hit).Error
}

// Ensure GormHitRepository implements recommend.HitRepository
var _ recommend.HitRepository = (*GormHitRepository)(nil)
