package handler

import (
	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	"github.com/ecomercado/backend/internal/domain/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CategoryHandler handles browsing category endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *catalogapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *catalogapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest represents a request to add a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Kind     string `json:"kind" binding:"required,oneof=PRODUCT DONATION"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
}

// RenameCategoryRequest represents a category rename
type RenameCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Create adds a new category
func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req.Name, catalog.CategoryKind(req.Kind), req.ImageURL)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, category)
}

// List returns categories of one kind
func (h *CategoryHandler) List(c *gin.Context) {
	kind := catalog.CategoryKind(c.DefaultQuery("kind", string(catalog.CategoryKindProduct)))
	if kind != catalog.CategoryKindProduct && kind != catalog.CategoryKindDonation {
		h.BadRequest(c, "Unknown category kind")
		return
	}

	categories, err := h.categoryService.ListByKind(c.Request.Context(), kind)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, categories)
}

// Rename changes a category name
func (h *CategoryHandler) Rename(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	var req RenameCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	category, err := h.categoryService.Rename(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, category)
}

// Delete removes a category
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid category ID")
		return
	}

	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
