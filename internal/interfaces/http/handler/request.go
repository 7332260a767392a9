package handler

import (
	donationapp "github.com/ecomercado/backend/internal/application/donation"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RequestHandler handles donation request lifecycle endpoints
type RequestHandler struct {
	BaseHandler
	requestService *donationapp.RequestService
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(requestService *donationapp.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// PlaceDonationRequest represents asking donors for their listed donations
type PlaceDonationRequest struct {
	DonationIDs []string `json:"donation_ids" binding:"required,min=1,dive,uuid"`
	ShippingFee float64  `json:"shipping_fee" binding:"min=0"`
}

// DeclineDonationRequest carries the donor's decline reason
type DeclineDonationRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// Place creates a new donation request
func (h *RequestHandler) Place(c *gin.Context) {
	userID, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PlaceDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	donationIDs := make([]uuid.UUID, len(req.DonationIDs))
	for i, idStr := range req.DonationIDs {
		id, err := uuid.Parse(idStr)
		if err != nil {
			h.BadRequest(c, "Invalid donation ID")
			return
		}
		donationIDs[i] = id
	}

	request, err := h.requestService.Place(c.Request.Context(), donationapp.PlaceRequestInput{
		RequesterID:    userID,
		RequesterEmail: email,
		DonationIDs:    donationIDs,
		ShippingFee:    decimal.NewFromFloat(req.ShippingFee),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, request)
}

// GetByID returns one request, visible to its requester and donors only
func (h *RequestHandler) GetByID(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := h.requestService.GetByID(c.Request.Context(), email, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

// ListMine returns requests the caller has placed
func (h *RequestHandler) ListMine(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListForRequester(c.Request.Context(), email, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requests)
}

// ListIncoming returns requests that include the caller's donations
func (h *RequestHandler) ListIncoming(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	requests, err := h.requestService.ListForDonor(c.Request.Context(), email, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, requests)
}

// Approve accepts a pending request (donor)
func (h *RequestHandler) Approve(c *gin.Context) {
	h.transition(c, func(email string, id uuid.UUID) (*donationapp.RequestResponse, error) {
		return h.requestService.Approve(c.Request.Context(), email, id)
	})
}

// Decline rejects a pending request with a reason (donor)
func (h *RequestHandler) Decline(c *gin.Context) {
	var req DeclineDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.transition(c, func(email string, id uuid.UUID) (*donationapp.RequestResponse, error) {
		return h.requestService.Decline(c.Request.Context(), email, id, req.Reason)
	})
}

// Ship marks an approved request's donations as in transit (donor)
func (h *RequestHandler) Ship(c *gin.Context) {
	h.transition(c, func(email string, id uuid.UUID) (*donationapp.RequestResponse, error) {
		return h.requestService.Ship(c.Request.Context(), email, id)
	})
}

// Complete confirms receipt and marks the donations as handed over (requester)
func (h *RequestHandler) Complete(c *gin.Context) {
	h.transition(c, func(email string, id uuid.UUID) (*donationapp.RequestResponse, error) {
		return h.requestService.Complete(c.Request.Context(), email, id)
	})
}

func (h *RequestHandler) transition(c *gin.Context, apply func(email string, id uuid.UUID) (*donationapp.RequestResponse, error)) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid request ID")
		return
	}

	request, err := apply(email, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, request)
}

func (h *RequestHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindingError(c, err)
		return shared.Filter{}, false
	}
	f := toFilter(req)
	if status := c.Query("status"); status != "" {
		f.Filters["status"] = status
	}
	return f, true
}
