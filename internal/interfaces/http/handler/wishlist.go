package handler

import (
	catalogapp "github.com/ecomercado/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	BaseHandler
	wishlistService *catalogapp.WishlistService
}

// NewWishlistHandler creates a new WishlistHandler
func NewWishlistHandler(wishlistService *catalogapp.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// AddToWishlistRequest represents bookmarking a product
type AddToWishlistRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
}

// Add bookmarks a product. Adding an already bookmarked product is a no-op.
func (h *WishlistHandler) Add(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		h.BadRequest(c, "Invalid product ID")
		return
	}

	item, err := h.wishlistService.Add(c.Request.Context(), email, productID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// List returns the caller's wishlist with product details
func (h *WishlistHandler) List(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.wishlistService.List(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// Remove drops a bookmark
func (h *WishlistHandler) Remove(c *gin.Context) {
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

	if err := h.wishlistService.Remove(c.Request.Context(), email, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
