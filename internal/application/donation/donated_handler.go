package donation

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// DonatedMarkHandler flags donations as given away once the request that
// asked for them completes, which drops them out of browse and matching.
type DonatedMarkHandler struct {
	donationRepo donation.DonationRepository
	logger       *zap.Logger
}

func NewDonatedMarkHandler(donationRepo donation.DonationRepository, logger *zap.Logger) *DonatedMarkHandler {
	return &DonatedMarkHandler{
		donationRepo: donationRepo,
		logger:       logger,
	}
}

// EventTypes returns the event types this handler subscribes to
func (h *DonatedMarkHandler) EventTypes() []string {
	return []string{donation.EventTypeRequestCompleted}
}

// Handle marks each donation on the completed request as donated
func (h *DonatedMarkHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	completed, ok := event.(*donation.RequestCompletedEvent)
	if !ok {
		return nil
	}

	for _, donationID := range completed.DonationIDs {
		d, err := h.donationRepo.FindByID(ctx, donationID)
		if err != nil {
			h.logger.Error("failed to load donation for donated mark",
				zap.String("donation_id", donationID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := d.MarkDonated(); err != nil {
			h.logger.Warn("donation already marked donated",
				zap.String("donation_id", donationID.String()),
				zap.Error(err),
			)
			continue
		}
		if err := h.donationRepo.SaveWithLock(ctx, d); err != nil {
			h.logger.Error("failed to persist donated mark",
				zap.String("donation_id", donationID.String()),
				zap.Error(err),
			)
		}
	}
	return nil
}
