package handler

import (
	"strconv"

	recommendapp "github.com/ecomercado/backend/internal/application/recommend"
	"github.com/gin-gonic/gin"
)

// RecommendHandler handles personalized feed endpoints
type RecommendHandler struct {
	BaseHandler
	recommendService *recommendapp.RecommendationService
}

// NewRecommendHandler creates a new RecommendHandler
func NewRecommendHandler(recommendService *recommendapp.RecommendationService) *RecommendHandler {
	return &RecommendHandler{recommendService: recommendService}
}

// ProductFeed returns the caller's personalized product feed
func (h *RecommendHandler) ProductFeed(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit, ok := h.feedLimit(c)
	if !ok {
		return
	}

	products, err := h.recommendService.ProductFeed(c.Request.Context(), email, c.Query("location"), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, products)
}

// DonationFeed returns the caller's shuffled donation feed
func (h *RecommendHandler) DonationFeed(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit, ok := h.feedLimit(c)
	if !ok {
		return
	}

	donations, err := h.recommendService.DonationFeed(c.Request.Context(), email, c.Query("location"), limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, donations)
}

func (h *RecommendHandler) feedLimit(c *gin.Context) (int, bool) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0, true // service applies its default feed size
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 || limit > 100 {
		h.BadRequest(c, "Invalid limit")
		return 0, false
	}
	return limit, true
}
