package donation

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestService handles the donation request lifecycle. Like orders, all
// status writes flow through here.
type RequestService struct {
	requestRepo    donation.RequestRepository
	donationRepo   donation.DonationRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

func NewRequestService(requestRepo donation.RequestRepository, donationRepo donation.DonationRepository, logger *zap.Logger) *RequestService {
	return &RequestService{
		requestRepo:  requestRepo,
		donationRepo: donationRepo,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *RequestService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Place creates a donation request in Pending status. Each requested
// donation must still be available.
func (s *RequestService) Place(ctx context.Context, input PlaceRequestInput) (*RequestResponse, error) {
	if len(input.DonationIDs) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot place a request without donations")
	}

	donations, err := s.donationRepo.FindByIDs(ctx, input.DonationIDs)
	if err != nil {
		return nil, err
	}
	if len(donations) != len(input.DonationIDs) {
		return nil, shared.ErrNotFound
	}

	request, err := donation.NewRequest(input.RequesterID, input.RequesterEmail, input.ShippingFee)
	if err != nil {
		return nil, err
	}

	for i := range donations {
		if !donations[i].IsAvailable() {
			return nil, shared.NewDomainError("UNAVAILABLE_DONATION", "Donation is no longer available")
		}
		if err := request.AddDonation(donations[i].ID, donations[i].DonorEmail); err != nil {
			return nil, err
		}
	}

	if err := request.Place(); err != nil {
		return nil, err
	}

	if err := s.requestRepo.Save(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

// GetByID retrieves a request visible to the acting user
func (s *RequestService) GetByID(ctx context.Context, actorEmail string, requestID uuid.UUID) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.RequesterEmail != actorEmail && !isDonor(request, actorEmail) {
		return nil, shared.ErrForbidden
	}
	response := ToRequestResponse(request)
	return &response, nil
}

// ListForRequester retrieves a requester's requests
func (s *RequestService) ListForRequester(ctx context.Context, requesterEmail string, filter shared.Filter) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByRequester(ctx, requesterEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// ListForDonor retrieves requests asking for a donor's donations
func (s *RequestService) ListForDonor(ctx context.Context, donorEmail string, filter shared.Filter) ([]RequestResponse, error) {
	requests, err := s.requestRepo.FindByDonor(ctx, donorEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToRequestResponses(requests), nil
}

// Approve transitions Pending -> Approved. Any donor on the request may act.
func (s *RequestService) Approve(ctx context.Context, donorEmail string, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(request *donation.Request) error {
		if !isDonor(request, donorEmail) {
			return shared.ErrForbidden
		}
		return request.Approve()
	})
}

// Decline transitions Pending -> Declined with a reason
func (s *RequestService) Decline(ctx context.Context, donorEmail string, requestID uuid.UUID, reason string) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(request *donation.Request) error {
		if !isDonor(request, donorEmail) {
			return shared.ErrForbidden
		}
		return request.Decline(reason)
	})
}

// Ship transitions Approved -> Receiving
func (s *RequestService) Ship(ctx context.Context, donorEmail string, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(request *donation.Request) error {
		if !isDonor(request, donorEmail) {
			return shared.ErrForbidden
		}
		return request.Ship()
	})
}

// Complete transitions Receiving -> Completed. Only the requester confirms.
func (s *RequestService) Complete(ctx context.Context, requesterEmail string, requestID uuid.UUID) (*RequestResponse, error) {
	return s.transition(ctx, requestID, func(request *donation.Request) error {
		if request.RequesterEmail != requesterEmail {
			return shared.ErrForbidden
		}
		return request.Complete()
	})
}

func isDonor(request *donation.Request, email string) bool {
	for _, item := range request.Items {
		if item.DonorEmail == email {
			return true
		}
	}
	return false
}

func (s *RequestService) transition(ctx context.Context, requestID uuid.UUID, apply func(*donation.Request) error) (*RequestResponse, error) {
	request, err := s.requestRepo.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if err := apply(request); err != nil {
		return nil, err
	}

	if err := s.requestRepo.SaveWithLock(ctx, request); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, request)

	response := ToRequestResponse(request)
	return &response, nil
}

func (s *RequestService) publishEvents(ctx context.Context, request *donation.Request) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range request.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Error("failed to publish request event",
				zap.String("event_type", event.EventType()),
				zap.String("request_id", request.ID.String()),
				zap.Error(err),
			)
		}
	}
	request.ClearDomainEvents()
}
