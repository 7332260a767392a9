package catalog

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductService handles product listing and moderation operations
type ProductService struct {
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		logger:      logger,
	}
}

// Create lists a new product awaiting moderation
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.SellerID, req.SellerEmail, req.Name, req.Category,
		req.Price, req.Quantity, req.PhotoURL, req.Location)
	if err != nil {
		return nil, err
	}
	product.Description = req.Description

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List retrieves products with pagination and optional search
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*ProductListResponse, error) {
	products, err := s.productRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &ProductListResponse{
		Products: ToProductResponses(products),
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.PageSize,
	}, nil
}

// ListBySeller retrieves a seller's own listings
func (s *ProductService) ListBySeller(ctx context.Context, sellerEmail string, filter shared.Filter) ([]ProductResponse, error) {
	products, err := s.productRepo.FindBySeller(ctx, sellerEmail, filter)
	if err != nil {
		return nil, err
	}
	return ToProductResponses(products), nil
}

// Update edits a listing. Only the owning seller may edit.
func (s *ProductService) Update(ctx context.Context, sellerEmail string, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerEmail != sellerEmail {
		return nil, shared.ErrForbidden
	}

	if err := product.UpdateDetails(req.Name, req.Category, req.Description,
		req.Price, req.Quantity, req.PhotoURL, req.Location); err != nil {
		return nil, err
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// Approve publishes a product after moderation
func (s *ProductService) Approve(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Approve(); err != nil {
		return nil, err
	}
	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// SetDisabled hides or restores a listing. Only the owning seller may toggle.
func (s *ProductService) SetDisabled(ctx context.Context, sellerEmail string, id uuid.UUID, disabled bool) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerEmail != sellerEmail {
		return nil, shared.ErrForbidden
	}

	if disabled {
		product.Disable()
	} else {
		product.Enable()
	}

	if err := s.productRepo.SaveWithLock(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a listing. Only the owning seller may delete.
func (s *ProductService) Delete(ctx context.Context, sellerEmail string, id uuid.UUID) error {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerEmail != sellerEmail {
		return shared.ErrForbidden
	}
	return s.productRepo.Delete(ctx, id)
}
