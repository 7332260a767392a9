package handler

import (
	"time"

	tradeapp "github.com/ecomercado/backend/internal/application/trade"
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/ecomercado/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderHandler handles order lifecycle endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// PlaceOrderItemRequest is one requested line item
type PlaceOrderItemRequest struct {
	ProductID string `json:"product_id" binding:"required,uuid"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PlaceOrderRequest represents placing an order. All items must belong to
// the same seller; the client places one order per seller from a mixed cart.
type PlaceOrderRequest struct {
	Items       []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingFee float64                 `json:"shipping_fee" binding:"min=0"`
}

// DeclineOrderRequest carries the seller's decline reason
type DeclineOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// CancelOrderRequest carries the buyer's cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ShipOrderRequest sets the delivery window when the seller ships
type ShipOrderRequest struct {
	DeliveryStart time.Time `json:"delivery_start" binding:"required"`
	DeliveryEnd   time.Time `json:"delivery_end" binding:"required"`
}

// ConfirmReceiptRequest carries the buyer's proof-of-receipt photo
type ConfirmReceiptRequest struct {
	ReceivedPhotoURL string `json:"received_photo_url" binding:"required,url,max=500"`
}

// Place creates a new order and reserves the product quantities
func (h *OrderHandler) Place(c *gin.Context) {
	userID, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	items := make([]tradeapp.PlaceOrderItemInput, len(req.Items))
	for i, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			h.BadRequest(c, "Invalid product ID")
			return
		}
		items[i] = tradeapp.PlaceOrderItemInput{
			ProductID: productID,
			Quantity:  item.Quantity,
		}
	}

	order, err := h.orderService.Place(c.Request.Context(), tradeapp.PlaceOrderRequest{
		BuyerID:     userID,
		BuyerEmail:  email,
		Items:       items,
		ShippingFee: decimal.NewFromFloat(req.ShippingFee),
	})
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, order)
}

// GetByID returns one order, visible to its buyer and seller only
func (h *OrderHandler) GetByID(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), email, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

// ListPurchases returns the caller's orders as a buyer
func (h *OrderHandler) ListPurchases(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForBuyer(c.Request.Context(), email, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// ListSales returns the caller's incoming orders as a seller
func (h *OrderHandler) ListSales(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	filter, ok := h.listFilter(c)
	if !ok {
		return
	}

	orders, err := h.orderService.ListForSeller(c.Request.Context(), email, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, orders)
}

// Summary returns the seller's per-status order counts
func (h *OrderHandler) Summary(c *gin.Context) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	summary, err := h.orderService.GetStatusSummary(c.Request.Context(), email)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// Approve accepts a pending order (seller)
func (h *OrderHandler) Approve(c *gin.Context) {
	h.transition(c, func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error) {
		return h.orderService.Approve(c.Request.Context(), email, id)
	})
}

// Decline rejects a pending order with a reason (seller)
func (h *OrderHandler) Decline(c *gin.Context) {
	var req DeclineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.transition(c, func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error) {
		return h.orderService.Decline(c.Request.Context(), email, id, req.Reason)
	})
}

// Cancel withdraws a pending order with a reason (buyer)
func (h *OrderHandler) Cancel(c *gin.Context) {
	var req CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.transition(c, func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error) {
		return h.orderService.Cancel(c.Request.Context(), email, id, req.Reason)
	})
}

// Ship marks an approved order as in delivery (seller)
func (h *OrderHandler) Ship(c *gin.Context) {
	var req ShipOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.transition(c, func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error) {
		return h.orderService.Ship(c.Request.Context(), email, id, tradeapp.ShipOrderRequest{
			DeliveryStart: req.DeliveryStart,
			DeliveryEnd:   req.DeliveryEnd,
		})
	})
}

// ConfirmReceipt completes the order with a proof-of-receipt photo (buyer)
func (h *OrderHandler) ConfirmReceipt(c *gin.Context) {
	var req ConfirmReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}
	h.transition(c, func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error) {
		return h.orderService.ConfirmReceipt(c.Request.Context(), email, id, req.ReceivedPhotoURL)
	})
}

func (h *OrderHandler) transition(c *gin.Context, apply func(email string, id uuid.UUID) (*tradeapp.OrderResponse, error)) {
	_, email, ok := requireCaller(c)
	if !ok {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := apply(email, id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, order)
}

func (h *OrderHandler) listFilter(c *gin.Context) (shared.Filter, bool) {
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
