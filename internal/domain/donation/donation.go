package donation

import (
	"strings"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Donation is an item offered free of charge by a donor
type Donation struct {
	shared.BaseAggregateRoot
	DonorID     uuid.UUID
	DonorEmail  string
	Name        string
	Category    string
	PhotoURL    string
	SubPhotos   []string `gorm:"serializer:json"`
	Location    string
	WeightKg    decimal.Decimal
	Purpose     string
	Message     string
	Publication catalog.PublicationStatus
	IsDonated   bool
	IsDisabled  bool
	Hits        int64
}

// NewDonation creates a new donation listing pending moderation
func NewDonation(donorID uuid.UUID, donorEmail, name, category, photoURL string, subPhotos []string, location string, weightKg decimal.Decimal, purpose, message string) (*Donation, error) {
	if donorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor ID cannot be empty")
	}
	if donorEmail == "" {
		return nil, shared.NewDomainError("INVALID_DONOR", "Donor email cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Donation name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Donation category cannot be empty")
	}
	if weightKg.IsNegative() {
		return nil, shared.NewDomainError("INVALID_WEIGHT", "Donation weight cannot be negative")
	}

	return &Donation{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		DonorID:           donorID,
		DonorEmail:        donorEmail,
		Name:              name,
		Category:          category,
		PhotoURL:          photoURL,
		SubPhotos:         subPhotos,
		Location:          location,
		WeightKg:          weightKg,
		Purpose:           purpose,
		Message:           message,
		Publication:       catalog.PublicationStatusPending,
	}, nil
}

// Approve publishes the donation after moderation
func (d *Donation) Approve() error {
	if d.Publication == catalog.PublicationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Donation is already approved")
	}
	d.Publication = catalog.PublicationStatusApproved
	d.MarkUpdated()
	return nil
}

// MarkDonated records that the donation has been handed over
func (d *Donation) MarkDonated() error {
	if d.IsDonated {
		return shared.NewDomainError("INVALID_STATE", "Donation has already been handed over")
	}
	d.IsDonated = true
	d.MarkUpdated()
	return nil
}

// Disable hides the donation without deleting it
func (d *Donation) Disable() {
	d.IsDisabled = true
	d.MarkUpdated()
}

// Enable makes a disabled donation visible again
func (d *Donation) Enable() {
	d.IsDisabled = false
	d.MarkUpdated()
}

// RecordHit bumps the view counter used by recommendation ranking
func (d *Donation) RecordHit() {
	d.Hits++
	d.MarkUpdated()
}

// IsAvailable reports whether the donation can still be requested
func (d *Donation) IsAvailable() bool {
	return d.Publication == catalog.PublicationStatusApproved && !d.IsDisabled && !d.IsDonated
}

// MatchesLocation performs substring containment over the free-text address
func (d *Donation) MatchesLocation(location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(d.Location), strings.ToLower(location))
}
