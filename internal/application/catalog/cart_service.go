package catalog

import (
	"context"
	"errors"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartService handles a buyer's shopping cart
type CartService struct {
	cartRepo    catalog.CartRepository
	productRepo catalog.ProductRepository
}

func NewCartService(cartRepo catalog.CartRepository, productRepo catalog.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add puts a product into the cart, merging with an existing line for the
// same product instead of creating a duplicate.
func (s *CartService) Add(ctx context.Context, ownerEmail string, productID uuid.UUID, quantity int) (*CartItemResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable() {
		return nil, shared.NewDomainError("UNAVAILABLE_PRODUCT", "Product is not available for purchase")
	}
	if product.SellerEmail == ownerEmail {
		return nil, shared.NewDomainError("SELF_PURCHASE", "Sellers cannot add their own products to the cart")
	}

	existing, err := s.cartRepo.FindByOwnerAndProduct(ctx, ownerEmail, productID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	var item *catalog.CartItem
	if existing != nil {
		if err := existing.SetQuantity(existing.Quantity + quantity); err != nil {
			return nil, err
		}
		item = existing
	} else {
		item, err = catalog.NewCartItem(ownerEmail, productID, quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.cartRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	productResp := ToProductResponse(product)
	return &CartItemResponse{ID: item.ID, Quantity: item.Quantity, Product: &productResp}, nil
}

// List retrieves the cart with product details joined in. Lines whose
// product has since been removed are skipped.
func (s *CartService) List(ctx context.Context, ownerEmail string) ([]CartItemResponse, error) {
	items, err := s.cartRepo.FindByOwner(ctx, ownerEmail)
	if err != nil {
		return nil, err
	}

	responses := make([]CartItemResponse, 0, len(items))
	for i := range items {
		product, err := s.productRepo.FindByID(ctx, items[i].ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		productResp := ToProductResponse(product)
		responses = append(responses, CartItemResponse{
			ID:       items[i].ID,
			Quantity: items[i].Quantity,
			Product:  &productResp,
		})
	}
	return responses, nil
}

// UpdateQuantity changes the held quantity of a cart line
func (s *CartService) UpdateQuantity(ctx context.Context, ownerEmail string, productID uuid.UUID, quantity int) error {
	item, err := s.cartRepo.FindByOwnerAndProduct(ctx, ownerEmail, productID)
	if err != nil {
		return err
	}
	if err := item.SetQuantity(quantity); err != nil {
		return err
	}
	return s.cartRepo.Save(ctx, item)
}

// Remove drops a product from the cart
func (s *CartService) Remove(ctx context.Context, ownerEmail string, productID uuid.UUID) error {
	item, err := s.cartRepo.FindByOwnerAndProduct(ctx, ownerEmail, productID)
	if err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, item.ID)
}

// Clear empties the cart, typically after checkout
func (s *CartService) Clear(ctx context.Context, ownerEmail string) error {
	return s.cartRepo.DeleteByOwner(ctx, ownerEmail)
}
