package trade

import (
	"fmt"
	"time"

	"github.com/ecomercado/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusApproved  OrderStatus = "APPROVED"
	OrderStatusReceiving OrderStatus = "RECEIVING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusDeclined  OrderStatus = "DECLINED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusApproved, OrderStatusReceiving,
		OrderStatusCompleted, OrderStatusDeclined, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// The allowed graph is Pending -> Approved -> Receiving -> Completed, with
// Declined and Cancelled reachable only from Pending.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusApproved || target == OrderStatusDeclined || target == OrderStatusCancelled
	case OrderStatusApproved:
		return target == OrderStatusReceiving
	case OrderStatusReceiving:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusDeclined, OrderStatusCancelled:
		return false // Terminal states
	}
	return false
}

// IsTerminal returns true for states with no outgoing transitions
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusDeclined || s == OrderStatusCancelled
}

// DeliveryStatus is the secondary sub-state of the shipping period
type DeliveryStatus string

const (
	DeliveryStatusWaiting    DeliveryStatus = "WAITING"
	DeliveryStatusProcessing DeliveryStatus = "PROCESSING"
	DeliveryStatusConfirmed  DeliveryStatus = "CONFIRMED"
)

// IsValid checks if the status is a valid DeliveryStatus
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusWaiting, DeliveryStatusProcessing, DeliveryStatusConfirmed:
		return true
	}
	return false
}

// OrderItem represents a line item in an order
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Amount      decimal.Decimal // Quantity * UnitPrice
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewOrderItem creates a new order item
func NewOrderItem(orderID, productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Ordered quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	qty := decimal.NewFromInt(int64(quantity))
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Amount:      qty.Mul(unitPrice),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Order is the aggregate root for a purchase, from placement to completion
// or a terminal decline/cancel. Every status change goes through the
// transition methods below; there is no other write path.
type Order struct {
	shared.BaseAggregateRoot
	BuyerID          uuid.UUID
	BuyerEmail       string
	SellerID         uuid.UUID
	SellerEmail      string
	Items            []OrderItem
	ShippingFee      decimal.Decimal
	TotalPrice       decimal.Decimal // item amounts + shipping fee
	Status           OrderStatus
	DeliveryStatus   DeliveryStatus
	OrderedAt        time.Time
	ApprovedAt       *time.Time
	DeliveryStart    *time.Time
	DeliveryEnd      *time.Time
	DeliveredAt      *time.Time
	ReceivedAt       *time.Time
	ReceivedPhotoURL string
	DeclineReason    string
	CancelReason     string
}

// NewOrder creates a new order in Pending status
func NewOrder(buyerID uuid.UUID, buyerEmail string, sellerID uuid.UUID, sellerEmail string, shippingFee decimal.Decimal) (*Order, error) {
	if buyerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer ID cannot be empty")
	}
	if buyerEmail == "" {
		return nil, shared.NewDomainError("INVALID_BUYER", "Buyer email cannot be empty")
	}
	if sellerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller ID cannot be empty")
	}
	if sellerEmail == "" {
		return nil, shared.NewDomainError("INVALID_SELLER", "Seller email cannot be empty")
	}
	if buyerEmail == sellerEmail {
		return nil, shared.NewDomainError("SELF_PURCHASE", "Buyer cannot order own products")
	}
	if shippingFee.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Shipping fee cannot be negative")
	}

	return &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuyerID:           buyerID,
		BuyerEmail:        buyerEmail,
		SellerID:          sellerID,
		SellerEmail:       sellerEmail,
		Items:             make([]OrderItem, 0),
		ShippingFee:       shippingFee,
		TotalPrice:        shippingFee,
		Status:            OrderStatusPending,
		DeliveryStatus:    DeliveryStatusWaiting,
		OrderedAt:         time.Now(),
	}, nil
}

// AddItem adds a line item. Only allowed before placement side effects have
// been published, i.e. while the order is still Pending.
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity int, unitPrice decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	for _, item := range o.Items {
		if item.ProductID == productID {
			return nil, shared.NewDomainError("DUPLICATE_PRODUCT", "Product already exists in order")
		}
	}

	item, err := NewOrderItem(o.ID, productID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateTotal()
	o.MarkUpdated()

	return item, nil
}

// Place finalizes order creation and raises the placement event.
// Requires at least one item.
func (o *Order) Place() error {
	if o.Status != OrderStatusPending {
		return shared.NewDomainError("INVALID_STATE", "Order has already been placed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot place an order without items")
	}

	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return nil
}

// Approve transitions Pending -> Approved (seller accepts)
func (o *Order) Approve() error {
	if !o.Status.CanTransitionTo(OrderStatusApproved) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot approve order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusApproved
	o.ApprovedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderApprovedEvent(o))
	return nil
}

// Decline transitions Pending -> Declined (seller rejects)
func (o *Order) Decline(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusDeclined) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot decline order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Decline reason is required")
	}

	o.Status = OrderStatusDeclined
	o.DeclineReason = reason
	o.MarkUpdated()

	o.AddDomainEvent(NewOrderDeclinedEvent(o))
	return nil
}

// Cancel transitions Pending -> Cancelled (buyer withdraws)
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	o.Status = OrderStatusCancelled
	o.CancelReason = reason
	o.MarkUpdated()

	o.AddDomainEvent(NewOrderCancelledEvent(o))
	return nil
}

// Ship transitions Approved -> Receiving and moves the delivery sub-state to
// Processing. The delivery window bounds when the buyer should expect the
// goods.
func (o *Order) Ship(deliveryStart, deliveryEnd time.Time) error {
	if !o.Status.CanTransitionTo(OrderStatusReceiving) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship order in %s status", o.Status))
	}
	if deliveryEnd.Before(deliveryStart) {
		return shared.NewDomainError("INVALID_WINDOW", "Delivery window end precedes its start")
	}

	now := time.Now()
	o.Status = OrderStatusReceiving
	o.DeliveryStatus = DeliveryStatusProcessing
	o.DeliveryStart = &deliveryStart
	o.DeliveryEnd = &deliveryEnd
	o.DeliveredAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderShippedEvent(o))
	return nil
}

// ConfirmReceipt transitions Receiving -> Completed. The buyer must attach a
// receipt photo; the delivery sub-state becomes Confirmed.
func (o *Order) ConfirmReceipt(receivedPhotoURL string) error {
	if !o.Status.CanTransitionTo(OrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot complete order in %s status", o.Status))
	}
	if receivedPhotoURL == "" {
		return shared.NewDomainError("MISSING_PHOTO", "Receipt photo is required to confirm receipt")
	}

	now := time.Now()
	o.Status = OrderStatusCompleted
	o.DeliveryStatus = DeliveryStatusConfirmed
	o.ReceivedPhotoURL = receivedPhotoURL
	o.ReceivedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderCompletedEvent(o))
	return nil
}

// recalculateTotal recalculates the order total from items and shipping fee
func (o *Order) recalculateTotal() {
	total := o.ShippingFee
	for _, item := range o.Items {
		total = total.Add(item.Amount)
	}
	o.TotalPrice = total
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// TotalQuantity returns the sum of all ordered quantities
func (o *Order) TotalQuantity() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity
	}
	return total
}

// IsPending returns true if the order awaits seller action
func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

// IsCompleted returns true if the order has been received and confirmed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// IsTerminal returns true if the order reached a terminal state
func (o *Order) IsTerminal() bool {
	return o.Status.IsTerminal()
}

// GetItemByProduct returns the line item for a product, or nil
func (o *Order) GetItemByProduct(productID uuid.UUID) *OrderItem {
	for idx := range o.Items {
		if o.Items[idx].ProductID == productID {
			return &o.Items[idx]
		}
	}
	return nil
}
