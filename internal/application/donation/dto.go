package donation

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/donation"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateDonationRequest is the input to list a new donation
type CreateDonationRequest struct {
	DonorID    uuid.UUID
	DonorEmail string
	Name       string
	Category   string
	PhotoURL   string
	SubPhotos  []string
	Location   string
	WeightKg   decimal.Decimal
	Purpose    string
	Message    string
}

// DonationResponse is the outward representation of a donation
type DonationResponse struct {
	ID          uuid.UUID       `json:"id"`
	DonorID     uuid.UUID       `json:"donor_id"`
	DonorEmail  string          `json:"donor_email"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	SubPhotos   []string        `json:"sub_photos,omitempty"`
	Location    string          `json:"location,omitempty"`
	WeightKg    decimal.Decimal `json:"weight_kg"`
	Purpose     string          `json:"purpose,omitempty"`
	Message     string          `json:"message,omitempty"`
	Publication string          `json:"publication"`
	IsDonated   bool            `json:"is_donated"`
	IsDisabled  bool            `json:"is_disabled"`
	Hits        int64           `json:"hits"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToDonationResponse converts a donation to its response DTO
func ToDonationResponse(d *donation.Donation) DonationResponse {
	return DonationResponse{
		ID:          d.ID,
		DonorID:     d.DonorID,
		DonorEmail:  d.DonorEmail,
		Name:        d.Name,
		Category:    d.Category,
		PhotoURL:    d.PhotoURL,
		SubPhotos:   d.SubPhotos,
		Location:    d.Location,
		WeightKg:    d.WeightKg,
		Purpose:     d.Purpose,
		Message:     d.Message,
		Publication: string(d.Publication),
		IsDonated:   d.IsDonated,
		IsDisabled:  d.IsDisabled,
		Hits:        d.Hits,
		CreatedAt:   d.CreatedAt,
	}
}

func ToDonationResponses(donations []donation.Donation) []DonationResponse {
	responses := make([]DonationResponse, len(donations))
	for i := range donations {
		responses[i] = ToDonationResponse(&donations[i])
	}
	return responses
}

// PlaceRequestInput is the input to place a donation request
type PlaceRequestInput struct {
	RequesterID    uuid.UUID
	RequesterEmail string
	DonationIDs    []uuid.UUID
	ShippingFee    decimal.Decimal
}

// RequestItemResponse is a requested donation line
type RequestItemResponse struct {
	DonationID uuid.UUID         `json:"donation_id"`
	DonorEmail string            `json:"donor_email"`
	Donation   *DonationResponse `json:"donation,omitempty"`
}

// RequestResponse is the outward representation of a donation request
type RequestResponse struct {
	ID             uuid.UUID             `json:"id"`
	RequesterID    uuid.UUID             `json:"requester_id"`
	RequesterEmail string                `json:"requester_email"`
	Items          []RequestItemResponse `json:"items"`
	ShippingFee    decimal.Decimal       `json:"shipping_fee"`
	Status         string                `json:"status"`
	ApprovedAt     *time.Time            `json:"approved_at,omitempty"`
	ShippedAt      *time.Time            `json:"shipped_at,omitempty"`
	CompletedAt    *time.Time            `json:"completed_at,omitempty"`
	DeclineReason  string                `json:"decline_reason,omitempty"`
	Version        int                   `json:"version"`
	CreatedAt      time.Time             `json:"created_at"`
}

// ToRequestResponse converts a request to its response DTO
func ToRequestResponse(r *donation.Request) RequestResponse {
	items := make([]RequestItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = RequestItemResponse{
			DonationID: item.DonationID,
			DonorEmail: item.DonorEmail,
		}
	}
	return RequestResponse{
		ID:             r.ID,
		RequesterID:    r.RequesterID,
		RequesterEmail: r.RequesterEmail,
		Items:          items,
		ShippingFee:    r.ShippingFee,
		Status:         string(r.Status),
		ApprovedAt:     r.ApprovedAt,
		ShippedAt:      r.ShippedAt,
		CompletedAt:    r.CompletedAt,
		DeclineReason:  r.DeclineReason,
		Version:        r.Version,
		CreatedAt:      r.CreatedAt,
	}
}

func ToRequestResponses(requests []donation.Request) []RequestResponse {
	responses := make([]RequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToRequestResponse(&requests[i])
	}
	return responses
}
