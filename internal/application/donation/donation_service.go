package donation

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DonationService handles donation listing and moderation operations
type DonationService struct {
	donationRepo donation.DonationRepository
	logger       *zap.Logger
}

func NewDonationService(donationRepo donation.DonationRepository, logger *zap.Logger) *DonationService {
	return &DonationService{
		donationRepo: donationRepo,
		logger:       logger,
	}
}

// Create lists a new donation awaiting moderation
func (s *DonationService) Create(ctx context.Context, req CreateDonationRequest) (*DonationResponse, error) {
	d, err := donation.NewDonation(req.DonorID, req.DonorEmail, req.Name, req.Category,
		req.PhotoURL, req.SubPhotos, req.Location, req.WeightKg, req.Purpose, req.Message)
	if err != nil {
		return nil, err
	}

	if err := s.donationRepo.Save(ctx, d); err != nil {
		return nil, err
	}

	response := ToDonationResponse(d)
	return &response, nil
}

// GetByID retrieves a single donation
func (s *DonationService) GetByID(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToDonationResponse(d)
	return &response, nil
}

// List retrieves donations with pagination and optional search
func (s *DonationService) List(ctx context.Context, filter shared.Filter) ([]DonationResponse, error) {
	donations, err := s.donationRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ToDonationResponses(donations), nil
}

// ListByDonor retrieves a donor's own listings
func (s *DonationService) ListByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]DonationResponse, error) {
	donations, err := s.donationRepo.FindByDonor(ctx, donorEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToDonationResponses(donations), nil
}

// Approve publishes a donation after moderation
func (s *DonationService) Approve(ctx context.Context, id uuid.UUID) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := d.Approve(); err != nil {
		return nil, err
	}
	if err := s.donationRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	response := ToDonationResponse(d)
	return &response, nil
}

// SetDisabled hides or restores a donation. Only the owning donor may toggle.
func (s *DonationService) SetDisabled(ctx context.Context, donorEmail string, id uuid.UUID, disabled bool) (*DonationResponse, error) {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.DonorEmail != donorEmail {
		return nil, shared.ErrForbidden
	}

	if disabled {
		d.Disable()
	} else {
		d.Enable()
	}

	if err := s.donationRepo.SaveWithLock(ctx, d); err != nil {
		return nil, err
	}
	response := ToDonationResponse(d)
	return &response, nil
}

// Delete removes a donation listing. Only the owning donor may delete.
func (s *DonationService) Delete(ctx context.Context, donorEmail string, id uuid.UUID) error {
	d, err := s.donationRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if d.DonorEmail != donorEmail {
		return shared.ErrForbidden
	}
	return s.donationRepo.Delete(ctx, id)
}
