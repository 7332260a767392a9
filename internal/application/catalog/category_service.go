package catalog

import (
	"context"

	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CategoryService handles browsing category management
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
}

func NewCategoryService(categoryRepo catalog.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// Create adds a new category
func (s *CategoryService) Create(ctx context.Context, name string, kind catalog.CategoryKind, imageURL string) (*CategoryResponse, error) {
	category, err := catalog.NewCategory(name, kind, imageURL)
	if err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// ListByKind retrieves the categories for a browsing surface
func (s *CategoryService) ListByKind(ctx context.Context, kind catalog.CategoryKind) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindByKind(ctx, kind)
	if err != nil {
		return nil, err
	}
	return ToCategoryResponses(categories), nil
}

// Rename changes a category's display name
func (s *CategoryService) Rename(ctx context.Context, id uuid.UUID, name string) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := category.Rename(name); err != nil {
		return nil, err
	}
	if err := s.categoryRepo.Save(ctx, category); err != nil {
		return nil, err
	}
	response := ToCategoryResponse(category)
	return &response, nil
}

// Delete removes a category
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, id)
}
