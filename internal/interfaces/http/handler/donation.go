package handler

import (
	donationapp "github.com/ecomercado/backend/internal/application/donation"
	recommendapp "github.com/ecomercado/backend/internal/application/recommend"
	"github.com/ecomercado/backend/internal/infrastructure/logger"
	"github.com/ecomercado/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DonationHandler handles donation listing endpoints
type DonationHandler struct {
	BaseHandler
	donationService  *donationapp.DonationService
	recommendService *recommendapp.RecommendationService
}

// NewDonationHandler creates a new DonationHandler
func NewDonationHandler(donationService *donationapp.DonationService, recommendService *recommendapp.RecommendationService) *DonationHandler {
	return &DonationHandler{
		donationService:  donationService,
		recommendService: recommendService,
	}
}

// CreateDonationRequest represents offering an item free of charge
type CreateDonationRequest struct {
	Name      string   `json:"name" binding:"required,min=1,max=200"`
	Category  string   `json:"category" binding:"required,min=1,max=100"`
	PhotoURL  string   `json:"photo_url" binding:"omitempty,url,max=500"`
	SubPhotos []string `json:"sub_photos" binding:"max=8,dive,url"`
	Location  string   `json:"location" binding:"max=300"`
	WeightKg  float64  `json:"weight_kg" binding:"min=0"`
	Purpose   string   `json:"purpose" binding:"max=1000"`
	Message   string   `json:"message" binding:"max=1000"`
}

// Create lists a new donation
func (h *DonationHandler) Create(c *gin.Context) {
	userID, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	donation, err := h.donationService.Create(c.Request.Context(), donationapp.CreateDonationRequest{
		DonorID:    userID,
		DonorEmail: email,
		Name:       req.Name,
		Category:   req.Category,
		PhotoURL:   req.PhotoURL,
		SubPhotos:  req.SubPhotos,
		Location:   req.Location,
		WeightKg:   decimal.NewFromFloat(req.WeightKg),
		Purpose:    req.Purpose,
		Message:    req.Message,
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, donation)
}

// GetByID returns one donation and records the view for recommendations
func (h *DonationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	donation, err := h.donationService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	if _, email, ok := requireCaller(c); ok {
		if err := h.recommendService.RecordDonationView(c.Request.Context(), email, id); err != nil {
			logger.GetGinLogger(c).Warn("view tracking failed",
				zap.String("donation_id", id.String()),
				zap.Error(err))
		}
	}

	h.Success(c, donation)
}

// List returns available donations with search, filters and pagination
func (h *DonationHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	filter := toFilter(req)
	if category := c.Query("category"); category != "" {
		filter.Filters["category"] = category
	}

	donations, err := h.donationService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, donations)
}

// ListMine returns the caller's own donation listings
func (h *DonationHandler) ListMine(c *gin.Context) {
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

	donations, err := h.donationService.ListByDonor(c.Request.Context(), email, toFilter(req))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, donations)
}

// SetDisabled hides or re-enables one of the caller's donations
func (h *DonationHandler) SetDisabled(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	var req SetDisabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	donation, err := h.donationService.SetDisabled(c.Request.Context(), email, id, *req.Disabled)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, donation)
}

// Delete removes one of the caller's donations
func (h *DonationHandler) Delete(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid donation ID")
		return
	}

	if err := h.donationService.Delete(c.Request.Context(), email, id); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
