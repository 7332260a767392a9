package catalog

import (
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRating is a buyer's 1-5 star rating left after order completion
type ProductRating struct {
	shared.BaseEntity
	ProductID  uuid.UUID
	OrderID    uuid.UUID
	RaterEmail string
	Stars      int
	Comment    string
}

// NewProductRating creates a new rating
func NewProductRating(productID, orderID uuid.UUID, raterEmail string, stars int, comment string) (*ProductRating, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if raterEmail == "" {
		return nil, shared.NewDomainError("INVALID_RATER", "Rater email cannot be empty")
	}
	if stars < 1 || stars > 5 {
		return nil, shared.NewDomainError("INVALID_STARS", "Rating must be between 1 and 5 stars")
	}

	return &ProductRating{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		OrderID:    orderID,
		RaterEmail: raterEmail,
		Stars:      stars,
		Comment:    comment,
	}, nil
}

// Revise updates the star value of an existing rating
func (r *ProductRating) Revise(stars int, comment string) error {
	if stars < 1 || stars > 5 {
		return shared.NewDomainError("INVALID_STARS", "Rating must be between 1 and 5 stars")
	}
	r.Stars = stars
	r.Comment = comment
	r.MarkUpdated()
	return nil
}
