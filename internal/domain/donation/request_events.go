package donation

import (
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeRequest = "DonationRequest"

// Event type constants
const (
	EventTypeRequestPlaced    = "DonationRequestPlaced"
	EventTypeRequestApproved  = "DonationRequestApproved"
	EventTypeRequestDeclined  = "DonationRequestDeclined"
	EventTypeRequestShipped   = "DonationRequestShipped"
	EventTypeRequestCompleted = "DonationRequestCompleted"
)

// RequestEvent carries the fields shared by all request lifecycle events
type RequestEvent struct {
	shared.BaseDomainEvent
	RequestID      uuid.UUID   `json:"request_id"`
	RequesterEmail string      `json:"requester_email"`
	DonorEmails    []string    `json:"donor_emails"`
	DonationIDs    []uuid.UUID `json:"donation_ids"`
}

func newRequestEvent(eventType string, r *Request) RequestEvent {
	return RequestEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(eventType, AggregateTypeRequest, r.ID),
		RequestID:       r.ID,
		RequesterEmail:  r.RequesterEmail,
		DonorEmails:     r.DonorEmails(),
		DonationIDs:     r.DonationIDs(),
	}
}

// RequestPlacedEvent is raised when a requester submits a new request
type RequestPlacedEvent struct{ RequestEvent }

// NewRequestPlacedEvent creates a new RequestPlacedEvent
func NewRequestPlacedEvent(r *Request) *RequestPlacedEvent {
	return &RequestPlacedEvent{newRequestEvent(EventTypeRequestPlaced, r)}
}

// EventType returns the event type name
func (e *RequestPlacedEvent) EventType() string { return EventTypeRequestPlaced }

// RequestApprovedEvent is raised when a donor accepts a pending request
type RequestApprovedEvent struct{ RequestEvent }

// NewRequestApprovedEvent creates a new RequestApprovedEvent
func NewRequestApprovedEvent(r *Request) *RequestApprovedEvent {
	return &RequestApprovedEvent{newRequestEvent(EventTypeRequestApproved, r)}
}

// EventType returns the event type name
func (e *RequestApprovedEvent) EventType() string { return EventTypeRequestApproved }

// RequestDeclinedEvent is raised when a donor rejects a pending request
type RequestDeclinedEvent struct {
	RequestEvent
	Reason string `json:"reason"`
}

// NewRequestDeclinedEvent creates a new RequestDeclinedEvent
func NewRequestDeclinedEvent(r *Request) *RequestDeclinedEvent {
	return &RequestDeclinedEvent{
		RequestEvent: newRequestEvent(EventTypeRequestDeclined, r),
		Reason:       r.DeclineReason,
	}
}

// EventType returns the event type name
func (e *RequestDeclinedEvent) EventType() string { return EventTypeRequestDeclined }

// RequestShippedEvent is raised when the donations enter transit
type RequestShippedEvent struct{ RequestEvent }

// NewRequestShippedEvent creates a new RequestShippedEvent
func NewRequestShippedEvent(r *Request) *RequestShippedEvent {
	return &RequestShippedEvent{newRequestEvent(EventTypeRequestShipped, r)}
}

// EventType returns the event type name
func (e *RequestShippedEvent) EventType() string { return EventTypeRequestShipped }

// RequestCompletedEvent is raised when the requester confirms receipt
type RequestCompletedEvent struct{ RequestEvent }

// NewRequestCompletedEvent creates a new RequestCompletedEvent
func NewRequestCompletedEvent(r *Request) *RequestCompletedEvent {
	return &RequestCompletedEvent{newRequestEvent(EventTypeRequestCompleted, r)}
}

// EventType returns the event type name
func (e *RequestCompletedEvent) EventType() string { return EventTypeRequestCompleted }
