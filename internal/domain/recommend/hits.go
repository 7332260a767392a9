package recommend

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// TargetKind separates product hits from donation hits
type TargetKind string

const (
	TargetKindProduct  TargetKind = "PRODUCT"
	TargetKindDonation TargetKind = "DONATION"
)

// UserHit is a per-user view counter for one product or donation. It is the
// persisted half of the hit tracking; the hot counter lives in Redis and is
// mirrored here.
type UserHit struct {
	shared.BaseEntity
	UserEmail string
	TargetID  uuid.UUID
	Kind      TargetKind
	Hits      int64
}

// NewUserHit creates a hit record with an initial count of one
func NewUserHit(userEmail string, targetID uuid.UUID, kind TargetKind) (*UserHit, error) {
	if userEmail == "" {
		return nil, shared.NewDomainError("INVALID_USER", "User email cannot be empty")
	}
	if targetID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TARGET", "Target ID cannot be empty")
	}

	return &UserHit{
		BaseEntity: shared.NewBaseEntity(),
		UserEmail:  userEmail,
		TargetID:   targetID,
		Kind:       kind,
		Hits:       1,
	}, nil
}

// Increment bumps the counter
func (h *UserHit) Increment() {
	h.Hits++
	h.MarkUpdated()
}

// HitRepository defines persistence operations for per-user hit records
type HitRepository interface {
	FindByUserAndTarget(ctx context.Context, userEmail string, targetID uuid.UUID) (*UserHit, error)
	// FindTopByUser returns a user's most viewed targets of a kind, highest first
	FindTopByUser(ctx context.Context, userEmail string, kind TargetKind, limit int) ([]UserHit, error)
	Save(ctx context.Context, hit *UserHit) error
}

// HitCounter is the atomic increment used on the hot path. The Redis
// implementation makes the read-modify-write race-free.
type HitCounter interface {
	Increment(ctx context.Context, kind TargetKind, targetID uuid.UUID) (int64, error)
}
