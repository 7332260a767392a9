package catalog

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/domain/trade"
	"github.com/google/uuid"
)

// RatingService handles post-purchase product ratings
type RatingService struct {
	ratingRepo catalog.RatingRepository
	orderRepo  trade.OrderRepository
}

func NewRatingService(ratingRepo catalog.RatingRepository, orderRepo trade.OrderRepository) *RatingService {
	return &RatingService{
		ratingRepo: ratingRepo,
		orderRepo:  orderRepo,
	}
}

// Rate records a star rating for a product bought on a completed order.
// Rating the same order line again revises the earlier rating.
func (s *RatingService) Rate(ctx context.Context, raterEmail string, productID uuid.UUID, req RateProductRequest) (*RatingResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerEmail != raterEmail {
		return nil, shared.ErrForbidden
	}
	if order.Status != trade.OrderStatusCompleted {
		return nil, shared.NewDomainError("ORDER_NOT_COMPLETED", "Only completed orders can be rated")
	}

	found := false
	for _, item := range order.Items {
		if item.ProductID == productID {
			found = true
			break
		}
	}
	if !found {
		return nil, shared.NewDomainError("PRODUCT_NOT_IN_ORDER", "Product was not part of this order")
	}

	existing, err := s.ratingRepo.FindByOrderAndProduct(ctx, req.OrderID, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var rating *catalog.ProductRating
	if existing != nil {
		if err := existing.Revise(req.Stars, req.Comment); err != nil {
			return nil, err
		}
		rating = existing
	} else {
		rating, err = catalog.NewProductRating(productID, req.OrderID, raterEmail, req.Stars, req.Comment)
		if err != nil {
			return nil, err
		}
	}

	if err := s.ratingRepo.Save(ctx, rating); err != nil {
		return nil, err
	}

	response := ToRatingResponse(rating)
	return &response, nil
}

// GetForProduct retrieves all ratings and the average for a product
func (s *RatingService) GetForProduct(ctx context.Context, productID uuid.UUID) (*ProductRatingSummary, error) {
	ratings, err := s.ratingRepo.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	average, err := s.ratingRepo.AverageByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	responses := make([]RatingResponse, len(ratings))
	for i := range ratings {
		responses[i] = ToRatingResponse(&ratings[i])
	}
	return &ProductRatingSummary{Average: average, Ratings: responses}, nil
}
