package catalog

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// WishlistService handles product bookmarks
type WishlistService struct {
	wishlistRepo catalog.WishlistRepository
	productRepo  catalog.ProductRepository
}

func NewWishlistService(wishlistRepo catalog.WishlistRepository, productRepo catalog.ProductRepository) *WishlistService {
	return &WishlistService{
		wishlistRepo: wishlistRepo,
		productRepo:  productRepo,
	}
}

// Add bookmarks a product. Adding twice is a no-op.
func (s *WishlistService) Add(ctx context.Context, ownerEmail string, productID uuid.UUID) (*WishlistItemResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	existing, err := s.wishlistRepo.FindByOwnerAndProduct(ctx, ownerEmail, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	item := existing
	if item == nil {
		item, err = catalog.NewWishlistItem(ownerEmail, productID)
		if err != nil {
			return nil, err
		}
		if err := s.wishlistRepo.Save(ctx, item); err != nil {
			return nil, err
		}
	}

	productResp := ToProductResponse(product)
	return &WishlistItemResponse{ID: item.ID, Product: &productResp}, nil
}

// List retrieves the wishlist with product details joined in
func (s *WishlistService) List(ctx context.Context, ownerEmail string) ([]WishlistItemResponse, error) {
	items, err := s.wishlistRepo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]WishlistItemResponse, 0, len(items))
	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		productResp := ToProductResponse(product)
		responses = append(responses, WishlistItemResponse{ID: items[i].ID, Product: &productResp})
	}
	return responses, nil
}

// Remove drops a bookmark
func (s *WishlistService) Remove(ctx context.Context, ownerEmail string, productID uuid.UUID) error {
	item, err := s.wishlistRepo.FindByOwnerAndProduct(ctx, ownerEmail, productID)
	if err != nil {
		return err
	}
	return s.wishlistRepo.Delete(ctx, item.ID)
}
