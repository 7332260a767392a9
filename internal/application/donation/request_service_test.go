package donation

import (
	"context"
	"testing"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock implementations

type mockRequestRepository struct {
	mock.Mock
}

func (m *mockRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Request, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Request), args.Error(1)
}

func (m *mockRequestRepository) FindByRequester(ctx context.Context, requesterEmail string, filter shared.Filter) ([]donation.Request, error) {
	args := m.Called(ctx, requesterEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Request), args.Error(1)
}

func (m *mockRequestRepository) FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]donation.Request, error) {
	args := m.Called(ctx, donorEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Request), args.Error(1)
}

func (m *mockRequestRepository) Save(ctx context.Context, request *donation.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *mockRequestRepository) SaveWithLock(ctx context.Context, request *donation.Request) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

type mockDonationRepository struct {
	mock.Mock
}

func (m *mockDonationRepository) FindByID(ctx context.Context, id uuid.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]donation.Donation, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) FindAll(ctx context.Context, filter shared.Filter) ([]donation.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) FindByDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]donation.Donation, error) {
	args := m.Called(ctx, donorEmail, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) FindAvailable(ctx context.Context, limit int) ([]donation.Donation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) FindTopByHits(ctx context.Context, limit int) ([]donation.Donation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]donation.Donation), args.Error(1)
}

func (m *mockDonationRepository) Save(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDonationRepository) SaveWithLock(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *mockDonationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type mockEventPublisher struct {
	mock.Mock
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// Helpers

func availableDonation(t *testing.T, donorEmail string) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(uuid.New(), donorEmail, "Winter coat", "Clothing",
		"https://cdn.example.com/donations/coat.jpg", nil, "Quito", decimal.NewFromFloat(1.2),
		"Charity drive", "Barely used")
	require.NoError(t, err)
	d.Publication = catalog.PublicationStatusApproved
	return d
}

func pendingRequest(t *testing.T, requesterEmail, donorEmail string) *donation.Request {
	t.Helper()
	req, err := donation.NewRequest(uuid.New(), requesterEmail, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, req.AddDonation(uuid.New(), donorEmail))
	return req
}

func TestRequestService_Place(t *testing.T) {
	ctx := context.Background()

	t.Run("places a request for available donations", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		donationRepo := new(mockDonationRepository)
		publisher := new(mockEventPublisher)

		d1 := availableDonation(t, "donor1@example.com")
		d2 := availableDonation(t, "donor2@example.com")
		ids := []uuid.UUID{d1.ID, d2.ID}

		donationRepo.On("FindByIDs", ctx, ids).Return([]donation.Donation{*d1, *d2}, nil)
		requestRepo.On("Save", ctx, mock.AnythingOfType("*donation.Request")).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		service := NewRequestService(requestRepo, donationRepo, zap.NewNop())
		service.SetEventPublisher(publisher)

		resp, err := service.Place(ctx, PlaceRequestInput{
			RequesterID:    uuid.New(),
			RequesterEmail: "requester@example.com",
			DonationIDs:    ids,
			ShippingFee:    decimal.NewFromInt(2),
		})

		require.NoError(t, err)
		assert.Equal(t, string(donation.RequestStatusPending), resp.Status)
		assert.Len(t, resp.Items, 2)
		requestRepo.AssertExpectations(t)
		publisher.AssertExpectations(t)
	})

	t.Run("rejects empty request", func(t *testing.T) {
		service := NewRequestService(new(mockRequestRepository), new(mockDonationRepository), zap.NewNop())
		_, err := service.Place(ctx, PlaceRequestInput{
			RequesterID:    uuid.New(),
			RequesterEmail: "requester@example.com",
		})
		assert.Error(t, err)
	})

	t.Run("fails when a donation is missing", func(t *testing.T) {
		donationRepo := new(mockDonationRepository)
		ids := []uuid.UUID{uuid.New(), uuid.New()}
		d := availableDonation(t, "donor@example.com")
		donationRepo.On("FindByIDs", ctx, ids).Return([]donation.Donation{*d}, nil)

		service := NewRequestService(new(mockRequestRepository), donationRepo, zap.NewNop())
		_, err := service.Place(ctx, PlaceRequestInput{
			RequesterID:    uuid.New(),
			RequesterEmail: "requester@example.com",
			DonationIDs:    ids,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("fails when a donation is no longer available", func(t *testing.T) {
		donationRepo := new(mockDonationRepository)
		d := availableDonation(t, "donor@example.com")
		d.IsDonated = true
		ids := []uuid.UUID{d.ID}
		donationRepo.On("FindByIDs", ctx, ids).Return([]donation.Donation{*d}, nil)

		service := NewRequestService(new(mockRequestRepository), donationRepo, zap.NewNop())
		_, err := service.Place(ctx, PlaceRequestInput{
			RequesterID:    uuid.New(),
			RequesterEmail: "requester@example.com",
			DonationIDs:    ids,
		})
		assert.ErrorContains(t, err, "no longer available")
	})

	t.Run("rejects requesting own donation", func(t *testing.T) {
		donationRepo := new(mockDonationRepository)
		d := availableDonation(t, "requester@example.com")
		ids := []uuid.UUID{d.ID}
		donationRepo.On("FindByIDs", ctx, ids).Return([]donation.Donation{*d}, nil)

		service := NewRequestService(new(mockRequestRepository), donationRepo, zap.NewNop())
		_, err := service.Place(ctx, PlaceRequestInput{
			RequesterID:    uuid.New(),
			RequesterEmail: "requester@example.com",
			DonationIDs:    ids,
		})
		assert.Error(t, err)
	})
}

func TestRequestService_Transitions(t *testing.T) {
	ctx := context.Background()

	t.Run("donor approves a pending request", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		req := pendingRequest(t, "requester@example.com", "donor@example.com")
		requestRepo.On("FindByID", ctx, req.ID).Return(req, nil)
		requestRepo.On("SaveWithLock", ctx, req).Return(nil)

		service := NewRequestService(requestRepo, new(mockDonationRepository), zap.NewNop())
		resp, err := service.Approve(ctx, "donor@example.com", req.ID)

		require.NoError(t, err)
		assert.Equal(t, string(donation.RequestStatusApproved), resp.Status)
	})

	t.Run("non-donor cannot approve", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		req := pendingRequest(t, "requester@example.com", "donor@example.com")
		requestRepo.On("FindByID", ctx, req.ID).Return(req, nil)

		service := NewRequestService(requestRepo, new(mockDonationRepository), zap.NewNop())
		_, err := service.Approve(ctx, "stranger@example.com", req.ID)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		requestRepo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
	})

	t.Run("only the requester completes", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		req := pendingRequest(t, "requester@example.com", "donor@example.com")
		require.NoError(t, req.Approve())
		require.NoError(t, req.Ship())
		req.ClearDomainEvents()
		requestRepo.On("FindByID", ctx, req.ID).Return(req, nil)
		requestRepo.On("SaveWithLock", ctx, req).Return(nil)

		service := NewRequestService(requestRepo, new(mockDonationRepository), zap.NewNop())

		_, err := service.Complete(ctx, "donor@example.com", req.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)

		resp, err := service.Complete(ctx, "requester@example.com", req.ID)
		require.NoError(t, err)
		assert.Equal(t, string(donation.RequestStatusCompleted), resp.Status)
	})

	t.Run("decline requires a reason", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		req := pendingRequest(t, "requester@example.com", "donor@example.com")
		requestRepo.On("FindByID", ctx, req.ID).Return(req, nil)

		service := NewRequestService(requestRepo, new(mockDonationRepository), zap.NewNop())
		_, err := service.Decline(ctx, "donor@example.com", req.ID, "")

		assert.Error(t, err)
	})

	t.Run("concurrency conflict surfaces", func(t *testing.T) {
		requestRepo := new(mockRequestRepository)
		req := pendingRequest(t, "requester@example.com", "donor@example.com")
		requestRepo.On("FindByID", ctx, req.ID).Return(req, nil)
		requestRepo.On("SaveWithLock", ctx, req).Return(shared.ErrConcurrencyConflict)

		service := NewRequestService(requestRepo, new(mockDonationRepository), zap.NewNop())
		_, err := service.Approve(ctx, "donor@example.com", req.ID)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
	})
}
