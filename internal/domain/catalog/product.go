package catalog

import (
	"strings"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PublicationStatus is the moderation state of a listing
type PublicationStatus string

const (
	PublicationStatusPending  PublicationStatus = "PENDING"
	PublicationStatusApproved PublicationStatus = "APPROVED"
)

// IsValid checks if the status is a valid PublicationStatus
func (s PublicationStatus) IsValid() bool {
	return s == PublicationStatusPending || s == PublicationStatusApproved
}

// Product is an eco-friendly listing offered by a registered seller
type Product struct {
	shared.BaseAggregateRoot
	SellerID    uuid.UUID
	SellerEmail string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int
	PhotoURL    string
	Location    string
	Publication PublicationStatus
	IsDisabled  bool
	Hits        int64
}

// NewProduct creates a new product pending moderation
func NewProduct(sellerID uuid.UUID, sellerEmail, name, category string, price decimal.Decimal, quantity int, photoURL, location string) (*Product, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if sellerEmail == "" {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller email cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if category == "" {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Product category cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if quantity < 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		SellerEmail:       sellerEmail,
		Name:              name,
		Category:          category,
		Price:             price,
		Quantity:          quantity,
		PhotoURL:          photoURL,
		Location:          location,
		Publication:       PublicationStatusPending,
	}, nil
}

// Approve publishes the product after moderation
func (p *Product) Approve() error {
	if p.Publication == PublicationStatusApproved {
		return shared.NewDomainError("INVALID_STATE", "Product is already approved")
	}
	p.Publication = PublicationStatusApproved
	p.MarkUpdated()
	return nil
}

// Disable hides the product from buyers without deleting it
func (p *Product) Disable() {
	p.IsDisabled = true
	p.MarkUpdated()
}

// Enable makes a disabled product visible again
func (p *Product) Enable() {
	p.IsDisabled = false
	p.MarkUpdated()
}

// Reserve decrements the available quantity at order placement.
// The quantity may never go negative.
func (p *Product) Reserve(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Reservation quantity must be positive")
	}
	if p.Quantity < quantity {
		return shared.ErrInsufficientStock
	}
	p.Quantity -= quantity
	p.MarkUpdated()
	return nil
}

// Release restores quantity reserved by a declined or cancelled order
func (p *Product) Release(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Release quantity must be positive")
	}
	p.Quantity += quantity
	p.MarkUpdated()
	return nil
}

// RecordHit bumps the view counter used by recommendation ranking
func (p *Product) RecordHit() {
	p.Hits++
	p.MarkUpdated()
}

// IsAvailable reports whether the product can be shown to a buyer:
// approved, not disabled, and in stock.
func (p *Product) IsAvailable() bool {
	return p.Publication == PublicationStatusApproved && !p.IsDisabled && p.Quantity > 0
}

// MatchesLocation performs the substring containment match over the free-text
// seller address used by the location-aware feeds.
func (p *Product) MatchesLocation(location string) bool {
	if location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(p.Location), strings.ToLower(location))
}

// UpdateDetails updates mutable listing fields
func (p *Product) UpdateDetails(name, category, description string, price decimal.Decimal, quantity int, photoURL, location string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if quantity < 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Product quantity cannot be negative")
	}

	p.Name = name
	if category != "" {
		p.Category = category
	}
	p.Description = description
	p.Price = price
	p.Quantity = quantity
	if photoURL != "" {
		p.PhotoURL = photoURL
	}
	p.Location = location
	p.MarkUpdated()
	return nil
}
