package trade

import (
	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderPlaced    = "OrderPlaced"
	EventTypeOrderApproved  = "OrderApproved"
	EventTypeOrderDeclined  = "OrderDeclined"
	EventTypeOrderCancelled = "OrderCancelled"
	EventTypeOrderShipped   = "OrderShipped"
	EventTypeOrderCompleted = "OrderCompleted"
)

// OrderItemInfo carries line-item data on order events
type OrderItemInfo struct {
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

func itemInfos(order *Order) []OrderItemInfo {
	infos := make([]OrderItemInfo, len(order.Items))
	for i, item := range order.Items {
		infos[i] = OrderItemInfo{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}
	return infos
}

// OrderPlacedEvent is raised when a buyer confirms a new order
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	BuyerEmail  string          `json:"buyer_email"`
	SellerEmail string          `json:"seller_email"`
	Items       []OrderItemInfo `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(order *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
		Items:           itemInfos(order),
		TotalPrice:      order.TotalPrice,
	}
}

// EventType returns the event type name
func (e *OrderPlacedEvent) EventType() string {
	return EventTypeOrderPlaced
}

// OrderApprovedEvent is raised when the seller accepts a pending order
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	BuyerEmail  string    `json:"buyer_email"`
	SellerEmail string    `json:"seller_email"`
}

// NewOrderApprovedEvent creates a new OrderApprovedEvent
func NewOrderApprovedEvent(order *Order) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderApproved, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
	}
}

// EventType returns the event type name
func (e *OrderApprovedEvent) EventType() string {
	return EventTypeOrderApproved
}

// OrderDeclinedEvent is raised when the seller rejects a pending order.
// Reserved product quantities must be restored by the catalog context.
type OrderDeclinedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	BuyerEmail  string          `json:"buyer_email"`
	SellerEmail string          `json:"seller_email"`
	Reason      string          `json:"reason"`
	Items       []OrderItemInfo `json:"items"`
}

// NewOrderDeclinedEvent creates a new OrderDeclinedEvent
func NewOrderDeclinedEvent(order *Order) *OrderDeclinedEvent {
	return &OrderDeclinedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderDeclined, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
		Reason:          order.DeclineReason,
		Items:           itemInfos(order),
	}
}

// EventType returns the event type name
func (e *OrderDeclinedEvent) EventType() string {
	return EventTypeOrderDeclined
}

// OrderCancelledEvent is raised when the buyer withdraws a pending order.
// Reserved product quantities must be restored by the catalog context.
type OrderCancelledEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	BuyerEmail  string          `json:"buyer_email"`
	SellerEmail string          `json:"seller_email"`
	Reason      string          `json:"reason"`
	Items       []OrderItemInfo `json:"items"`
}

// NewOrderCancelledEvent creates a new OrderCancelledEvent
func NewOrderCancelledEvent(order *Order) *OrderCancelledEvent {
	return &OrderCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCancelled, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
		Reason:          order.CancelReason,
		Items:           itemInfos(order),
	}
}

// EventType returns the event type name
func (e *OrderCancelledEvent) EventType() string {
	return EventTypeOrderCancelled
}

// OrderShippedEvent is raised when the seller marks the order in transit
type OrderShippedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	BuyerEmail  string    `json:"buyer_email"`
	SellerEmail string    `json:"seller_email"`
}

// NewOrderShippedEvent creates a new OrderShippedEvent
func NewOrderShippedEvent(order *Order) *OrderShippedEvent {
	return &OrderShippedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderShipped, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
	}
}

// EventType returns the event type name
func (e *OrderShippedEvent) EventType() string {
	return EventTypeOrderShipped
}

// OrderCompletedEvent is raised when the buyer confirms receipt
type OrderCompletedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"order_id"`
	BuyerID     uuid.UUID       `json:"buyer_id"`
	BuyerEmail  string          `json:"buyer_email"`
	SellerEmail string          `json:"seller_email"`
	Items       []OrderItemInfo `json:"items"`
}

// NewOrderCompletedEvent creates a new OrderCompletedEvent
func NewOrderCompletedEvent(order *Order) *OrderCompletedEvent {
	return &OrderCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCompleted, AggregateTypeOrder, order.ID),
		OrderID:         order.ID,
		BuyerID:         order.BuyerID,
		BuyerEmail:      order.BuyerEmail,
		SellerEmail:     order.SellerEmail,
		Items:           itemInfos(order),
	}
}

// EventType returns the event type name
func (e *OrderCompletedEvent) EventType() string {
	return EventTypeOrderCompleted
}
