package handler

import (
	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CartHandler handles shopping cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *catalogapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *catalogapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCartRequest represents adding a product to the cart
type AddToCartRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest changes a cart line's quantity
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// Add puts a product in the caller's cart, merging with an existing line
func (h *CartHandler) Add(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	item, err := h.cartService.Add(c.Request.Context(), email, productID, req.Quantity)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// List returns the caller's cart with product details
func (h *CartHandler) List(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.cartService.List(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// UpdateQuantity changes a cart line's quantity
func (h *CartHandler) UpdateQuantity(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	if err := h.cartService.UpdateQuantity(c.Request.Context(), email, productID, req.Quantity); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Remove drops one product from the cart
func (h *CartHandler) Remove(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.cartService.Remove(c.Request.Context(), email, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Clear empties the caller's cart
func (h *CartHandler) Clear(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), email); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
