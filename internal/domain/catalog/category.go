package catalog

import (
	"github.com/ecomercado/backend/internal/domain/shared"
)

// CategoryKind separates product categories from donation categories
type CategoryKind string

const (
	CategoryKindProduct  CategoryKind = "PRODUCT"
	CategoryKindDonation CategoryKind = "DONATION"
)

// Category is a browsing category for products or donations
type Category struct {
	shared.BaseEntity
	Name     string
	Kind     CategoryKind
	ImageURL string
}

// NewCategory creates a new category
func NewCategory(name string, kind CategoryKind, imageURL string) (*Category, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	if kind != CategoryKindProduct && kind != CategoryKindDonation {
		return nil, shared.NewDomainError("INVALID_KIND", "Unknown category kind")
	}

	return &Category{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Kind:       kind,
		ImageURL:   imageURL,
	}, nil
}

// Rename changes the category name
func (c *Category) Rename(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Category name cannot be empty")
	}
	c.Name = name
	c.MarkUpdated()
	return nil
}
