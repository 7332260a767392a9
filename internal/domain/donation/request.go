package donation

import (
	"fmt"
	"time"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestStatus is the lifecycle status of a donation request
type RequestStatus string

const (
	RequestStatusPending   RequestStatus = "PENDING"
	RequestStatusApproved  RequestStatus = "APPROVED"
	RequestStatusReceiving RequestStatus = "RECEIVING"
	RequestStatusCompleted RequestStatus = "COMPLETED"
	RequestStatusDeclined  RequestStatus = "DECLINED"
)

// IsValid checks if the status is a valid RequestStatus
func (s RequestStatus) IsValid() bool {
	switch s {
	case RequestStatusPending, RequestStatusApproved, RequestStatusReceiving,
		RequestStatusCompleted, RequestStatusDeclined:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	switch s {
	case RequestStatusPending:
		return target == RequestStatusApproved || target == RequestStatusDeclined
	case RequestStatusApproved:
		return target == RequestStatusReceiving
	case RequestStatusReceiving:
		return target == RequestStatusCompleted
	case RequestStatusCompleted, RequestStatusDeclined:
		return false // Terminal states
	}
	return false
}

// RequestItem identifies one requested donation and its donor
type RequestItem struct {
	ID         uuid.UUID
	RequestID  uuid.UUID
	DonationID uuid.UUID
	DonorEmail string
	CreatedAt  time.Time
}

// Request is the aggregate root for a donation request: a requester asking
// one or more donors for their listed donations.
type Request struct {
	shared.BaseAggregateRoot
	RequesterID    uuid.UUID
	RequesterEmail string
	Items          []RequestItem
	ShippingFee    decimal.Decimal
	Status         RequestStatus
	ApprovedAt     *time.Time
	ShippedAt      *time.Time
	CompletedAt    *time.Time
	DeclineReason  string
}

// NewRequest creates a new donation request in Pending status
func NewRequest(requesterID uuid.UUID, requesterEmail string, shippingFee decimal.Decimal) (*Request, error) {
	if requesterID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester ID cannot be empty")
	}
	if requesterEmail == "" {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester email cannot be empty")
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Shipping fee cannot be negative")
	}

	return &Request{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		RequesterID:       requesterID,
		RequesterEmail:    requesterEmail,
		Items:             make([]RequestItem, 0),
		ShippingFee:       shippingFee,
		Status:            RequestStatusPending,
	}, nil
}

// AddDonation adds a requested donation. The requester cannot ask for their
// own donation, and a donation can appear only once per request.
func (r *Request) AddDonation(donationID uuid.UUID, donorEmail string) error {
	if r.Status != RequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot modify a non-pending request")
	}
	if donationID == uuid.Nil {
		return shared.NewDomainError("INVALID_DONATION", "Donation ID cannot be empty")
	}
	if donorEmail == "" {
		return shared.NewDomainError("INVALID_DONOR", "Donor email cannot be empty")
	}
	if donorEmail == r.RequesterEmail {
		return shared.NewDomainError("SELF_REQUEST", "Requester cannot request own donation")
	}
	for _, item := range r.Items {
		if item.DonationID == donationID {
			return shared.NewDomainError("DUPLICATE_DONATION", "Donation already in request")
		}
	}

	r.Items = append(r.Items, RequestItem{
		ID:         uuid.New(),
		RequestID:  r.ID,
		DonationID: donationID,
		DonorEmail: donorEmail,
		CreatedAt:  time.Now(),
	})
	r.MarkUpdated()
	return nil
}

// Place finalizes the request and raises the placement event
func (r *Request) Place() error {
	if r.Status != RequestStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Request has already been placed")
	}
	if len(r.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot place a request without donations")
	}

	r.AddDomainEvent(NewRequestPlacedEvent(r))
	return nil
}

// Approve transitions Pending -> Approved (donor accepts)
func (r *Request) Approve() error {
	if !r.Status.CanTransitionTo(RequestStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusApproved
	r.ApprovedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequestApprovedEvent(r))
	return nil
}

// Decline transitions Pending -> Declined (donor rejects)
func (r *Request) Decline(reason string) error {
	if !r.Status.CanTransitionTo(RequestStatusDeclined) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot decline request in %s status", r.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Decline reason is required")
	}

	r.Status = RequestStatusDeclined
	r.DeclineReason = reason
	r.MarkUpdated()

	r.AddDomainEvent(NewRequestDeclinedEvent(r))
	return nil
}

// Ship transitions Approved -> Receiving (donations in transit)
func (r *Request) Ship() error {
	if !r.Status.CanTransitionTo(RequestStatusReceiving) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusReceiving
	r.ShippedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequestShippedEvent(r))
	return nil
}

// Complete transitions Receiving -> Completed. The donations involved are
// marked as handed over by the application layer.
func (r *Request) Complete() error {
	if !r.Status.CanTransitionTo(RequestStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete request in %s status", r.Status))
	}

	now := time.Now()
	r.Status = RequestStatusCompleted
	r.CompletedAt = &now
	r.UpdatedAt = now

	r.AddDomainEvent(NewRequestCompletedEvent(r))
	return nil
}

// DonorEmails returns the distinct donor emails across all requested items
func (r *Request) DonorEmails() []string {
	seen := make(map[string]struct{}, len(r.Items))
	emails := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		if _, ok := seen[item.DonorEmail]; ok {
			continue
		}
		seen[item.DonorEmail] = struct{}{}
		emails = append(emails, item.DonorEmail)
	}
	return emails
}

// DonationIDs returns the requested donation IDs
func (r *Request) DonationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, len(r.Items))
	for i, item := range r.Items {
		ids[i] = item.DonationID
	}
	return ids
}
