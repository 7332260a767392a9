package catalog

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest is the input to list a new product
type CreateProductRequest struct {
	SellerID    uuid.UUID
	SellerEmail string
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int
	PhotoURL    string
	Location    string
}

// UpdateProductRequest is the input to edit an existing listing
type UpdateProductRequest struct {
	Name        string
	Category    string
	Description string
	Price       decimal.Decimal
	Quantity    int
	PhotoURL    string
	Location    string
}

// ProductResponse is the outward representation of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	SellerID    uuid.UUID       `json:"seller_id"`
	SellerEmail string          `json:"seller_email"`
	Name        string          `json:"name"`
	Category    string          `json:"category"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int             `json:"quantity"`
	PhotoURL    string          `json:"photo_url,omitempty"`
	Location    string          `json:"location,omitempty"`
	Publication string          `json:"publication"`
	IsDisabled  bool            `json:"is_disabled"`
	Hits        int64           `json:"hits"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ToProductResponse converts a product to its response DTO
func ToProductResponse(product *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		SellerID:    product.SellerID,
		SellerEmail: product.SellerEmail,
		Name:        product.Name,
		Category:    product.Category,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		PhotoURL:    product.PhotoURL,
		Location:    product.Location,
		Publication: string(product.Publication),
		IsDisabled:  product.IsDisabled,
		Hits:        product.Hits,
		Version:     product.Version,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	responses := make([]ProductResponse, len(products))
	for i := range products {
		responses[i] = ToProductResponse(&products[i])
	}
	return responses
}

// ProductListResponse is a paginated product listing
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CategoryResponse is the outward representation of a category
type CategoryResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Kind     string    `json:"kind"`
	ImageURL string    `json:"image_url,omitempty"`
}

func ToCategoryResponse(category *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:       category.ID,
		Name:     category.Name,
		Kind:     string(category.Kind),
		ImageURL: category.ImageURL,
	}
}

func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses
}

// CartItemResponse is a cart line joined with its product
type CartItemResponse struct {
	ID       uuid.UUID        `json:"id"`
	Quantity int              `json:"quantity"`
	Product  *ProductResponse `json:"product,omitempty"`
}

// WishlistItemResponse is a wishlist entry joined with its product
type WishlistItemResponse struct {
	ID      uuid.UUID        `json:"id"`
	Product *ProductResponse `json:"product,omitempty"`
}

// RateProductRequest is the input to rate a purchased product
type RateProductRequest struct {
	OrderID uuid.UUID
	Stars   int
	Comment string
}

// RatingResponse is the outward representation of a rating
type RatingResponse struct {
	ID         uuid.UUID `json:"id"`
	ProductID  uuid.UUID `json:"product_id"`
	OrderID    uuid.UUID `json:"order_id"`
	RaterEmail string    `json:"rater_email"`
	Stars      int       `json:"stars"`
	Comment    string    `json:"comment,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ToRatingResponse(rating *catalog.ProductRating) RatingResponse {
	return RatingResponse{
		ID:         rating.ID,
		ProductID:  rating.ProductID,
		OrderID:    rating.OrderID,
		RaterEmail: rating.RaterEmail,
		Stars:      rating.Stars,
		Comment:    rating.Comment,
		CreatedAt:  rating.CreatedAt,
	}
}

// ProductRatingSummary pairs the ratings with their average
type ProductRatingSummary struct {
	Average float64          `json:"average"`
	Ratings []RatingResponse `json:"ratings"`
}
