package donation

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DonationRepository defines persistence operations for donations
type DonationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Donation, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Donation, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Donation, error)
	FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]Donation, error)
	// FindAvailable returns approved, enabled, not-yet-donated donations
	FindAvailable(ctx context.Context, limit int) ([]Donation, error)
	// FindTopByHits returns the most viewed available donations, highest first
	FindTopByHits(ctx context.Context, limit int) ([]Donation, error)
	Save(ctx context.Context, donation *Donation) error
	SaveWithLock(ctx context.Context, donation *Donation) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RequestRepository defines persistence operations for donation requests
type RequestRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Request, error)
	FindByRequester(ctx context.Context, requesterEmail string, filter shared.Filter) ([]Request, error)
	FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]Request, error)
	Save(ctx context.Context, request *Request) error
	SaveWithLock(ctx context.Context, request *Request) error
}
