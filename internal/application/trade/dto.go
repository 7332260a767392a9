package trade

import (
	"time"

	"github.com/ecomercado/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderItemInput is one requested line item
type PlaceOrderItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// PlaceOrderRequest is the application-level request to place an order
type PlaceOrderRequest struct {
	BuyerID     uuid.UUID
	BuyerEmail  string
	Items       []PlaceOrderItemInput
	ShippingFee decimal.Decimal
}

// ShipOrderRequest sets the delivery window when the seller ships
type ShipOrderRequest struct {
	DeliveryStart time.Time
	DeliveryEnd   time.Time
}

// OrderItemResponse is a line item in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Amount      decimal.Decimal `json:"amount"`
}

// OrderResponse is an order in API responses
type OrderResponse struct {
	ID               uuid.UUID           `json:"id"`
	BuyerID          uuid.UUID           `json:"buyer_id"`
	BuyerEmail       string              `json:"buyer_email"`
	SellerEmail      string              `json:"seller_email"`
	Items            []OrderItemResponse `json:"items"`
	ShippingFee      decimal.Decimal     `json:"shipping_fee"`
	TotalPrice       decimal.Decimal     `json:"total_price"`
	Status           string              `json:"status"`
	DeliveryStatus   string              `json:"delivery_status"`
	OrderedAt        time.Time           `json:"ordered_at"`
	ApprovedAt       *time.Time          `json:"approved_at,omitempty"`
	DeliveryStart    *time.Time          `json:"delivery_start,omitempty"`
	DeliveryEnd      *time.Time          `json:"delivery_end,omitempty"`
	DeliveredAt      *time.Time          `json:"delivered_at,omitempty"`
	ReceivedAt       *time.Time          `json:"received_at,omitempty"`
	ReceivedPhotoURL string              `json:"received_photo_url,omitempty"`
	DeclineReason    string              `json:"decline_reason,omitempty"`
	CancelReason     string              `json:"cancel_reason,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
	Version          int                 `json:"version"`
}

// ToOrderResponse converts a domain order to its response shape
func ToOrderResponse(order *trade.Order) OrderResponse {
	items := make([]OrderItemResponse, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Amount:      item.Amount,
		}
	}

	return OrderResponse{
		ID:               order.ID,
		BuyerID:          order.BuyerID,
		BuyerEmail:       order.BuyerEmail,
		SellerEmail:      order.SellerEmail,
		Items:            items,
		ShippingFee:      order.ShippingFee,
		TotalPrice:       order.TotalPrice,
		Status:           order.Status.String(),
		DeliveryStatus:   string(order.DeliveryStatus),
		OrderedAt:        order.OrderedAt,
		ApprovedAt:       order.ApprovedAt,
		DeliveryStart:    order.DeliveryStart,
		DeliveryEnd:      order.DeliveryEnd,
		DeliveredAt:      order.DeliveredAt,
		ReceivedAt:       order.ReceivedAt,
		ReceivedPhotoURL: order.ReceivedPhotoURL,
		DeclineReason:    order.DeclineReason,
		CancelReason:     order.CancelReason,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
		Version:          order.Version,
	}
}

// ToOrderResponses converts a slice of domain orders
func ToOrderResponses(orders []trade.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = ToOrderResponse(&orders[i])
	}
	return out
}

// OrderStatusSummary is the per-status order count for a seller
type OrderStatusSummary struct {
	Pending   int64 `json:"pending"`
	Approved  int64 `json:"approved"`
	Receiving int64 `json:"receiving"`
	Completed int64 `json:"completed"`
	Declined  int64 `json:"declined"`
	Cancelled int64 `json:"cancelled"`
	Total     int64 `json:"total"`
}
