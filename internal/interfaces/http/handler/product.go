package handler

import (
	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	recommendapp "github.com/ecomercado/backend/internal/application/recommend"
	"github.com/ecomercado/backend/internal/infrastructure/logger"
	"github.com/ecomercado/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductHandler handles product catalog endpoints
type ProductHandler struct {
	BaseHandler
	productService   *catalogapp.ProductService
	ratingService    *catalogapp.RatingService
	recommendService *recommendapp.RecommendationService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalogapp.ProductService, ratingService *catalogapp.RatingService, recommendService *recommendapp.RecommendationService) *ProductHandler {
	return &ProductHandler{
		productService:   productService,
		ratingService:    ratingService,
		recommendService: recommendService,
	}
}

// CreateProductRequest represents a request to list a product for sale
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	PhotoURL    string  `json:"photo_url" binding:"omitempty,url,max=500"`
	Location    string  `json:"location" binding:"max=300"`
}

// UpdateProductRequest represents edits to an existing listing
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Category    string  `json:"category" binding:"required,min=1,max=100"`
	Description string  `json:"description" binding:"max=2000"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Quantity    int     `json:"quantity" binding:"required,min=0"`
	PhotoURL    string  `json:"photo_url" binding:"omitempty,url,max=500"`
	Location    string  `json:"location" binding:"max=300"`
}

// SetDisabledRequest toggles a listing's visibility
type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// RateProductRequest represents a buyer rating a purchased product
type RateProductRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
	Stars   int    `json:"stars" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// Create lists a new product for sale
func (h *ProductHandler) Create(c *gin.Context) {
	userID, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Create(c.Request.Context(), catalogapp.CreateProductRequest{
		SellerID:    userID,
		SellerEmail: email,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Quantity:    req.Quantity,
		PhotoURL:    req.PhotoURL,
		Location:    req.Location,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, product)
}

// GetByID returns one product and records the view for recommendations
func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	// View tracking is best effort and never fails the lookup
	if _, email, ok := requireCaller(c); ok {
		if err := h.recommendService.RecordProductView(c.Request.Context(), email, id); err != nil {
			logger.GetGinLogger(c).Warn("view tracking failed",
				zap.String("product_id", id.String()),
				zap.Error(err))
		}
	}

	h.Success(c, product)
}

// List returns the public catalog with search, filters and pagination
func (h *ProductHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := toFilter(req)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}
	if location := c.Query("location"); location != "" {
		filter.Filters["location"] = location
	}

	resp, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, resp.Products, resp.Total, filter.Page, filter.PageSize)
}

// ListMine returns the caller's own listings, including unapproved ones
func (h *ProductHandler) ListMine(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	products, err := h.productService.ListBySeller(c.Request.Context(), email, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// Update edits one of the caller's listings
func (h *ProductHandler) Update(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.Update(c.Request.Context(), email, id, catalogapp.UpdateProductRequest{
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Price:       decimal.NewFromFloat(req.Price),
		Quantity:    req.Quantity,
		PhotoURL:    req.PhotoURL,
		Location:    req.Location,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// SetDisabled hides or re-enables one of the caller's listings
func (h *ProductHandler) SetDisabled(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req SetDisabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	product, err := h.productService.SetDisabled(c.Request.Context(), email, id, *req.Disabled)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, product)
}

// Delete removes one of the caller's listings
func (h *ProductHandler) Delete(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.Delete(c.Request.Context(), email, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Rate records a star rating for a completed purchase
func (h *ProductHandler) Rate(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req RateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	rating, err := h.ratingService.Rate(c.Request.Context(), email, id, catalogapp.RateProductRequest{
		OrderID: orderID,
		Stars:   req.Stars,
		Comment: req.Comment,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, rating)
}

// Ratings returns the rating summary for a product
func (h *ProductHandler) Ratings(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	summary, err := h.ratingService.GetForProduct(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}
