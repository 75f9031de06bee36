package models

import (
	"strings"
	"time"
)

// CanteenProduct represents a product sold in the canteen.
// IsAvailable is forced to false whenever Quantity reaches zero.
type CanteenProduct struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name" example:"Tea"`
	Price       float64   `json:"price" db:"price" example:"10"`
	Category    *string   `json:"category,omitempty" db:"category"`
	Quantity    int       `json:"quantity" db:"quantity" example:"5"`
	IsAvailable bool      `json:"isAvailable" db:"is_available"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// OrderStatus represents the lifecycle state of a canteen order
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// NormalizeOrderStatus maps any casing of a known order status to its
// canonical lowercase form. Returns false when the value is not a known status.
func NormalizeOrderStatus(s string) (OrderStatus, bool) {
	switch OrderStatus(strings.ToLower(strings.TrimSpace(s))) {
	case OrderPending:
		return OrderPending, true
	case OrderPreparing:
		return OrderPreparing, true
	case OrderReady:
		return OrderReady, true
	case OrderCompleted:
		return OrderCompleted, true
	case OrderCancelled:
		return OrderCancelled, true
	}
	return "", false
}

// PaymentStatus represents the payment state of a canteen order
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// NormalizePaymentStatus maps any casing of a known payment status to its
// canonical lowercase form. Returns false when the value is not a known status.
func NormalizePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(strings.ToLower(strings.TrimSpace(s))) {
	case PaymentPending:
		return PaymentPending, true
	case PaymentPaid:
		return PaymentPaid, true
	case PaymentRefunded:
		return PaymentRefunded, true
	}
	return "", false
}

// CanteenOrderItem is a line item of an order. Name and Price are snapshotted
// from the product at order time so later product edits don't rewrite history.
type CanteenOrderItem struct {
	ID        int64   `json:"id" db:"id"`
	OrderID   int64   `json:"orderId" db:"order_id"`
	ProductID int64   `json:"productId" db:"product_id"`
	Name      string  `json:"name" db:"name"`
	Price     float64 `json:"price" db:"price"`
	Quantity  int     `json:"quantity" db:"quantity"`
}

// CanteenOrder represents a canteen order with its line items.
type CanteenOrder struct {
	ID            int64               `json:"id" db:"id"`
	UserID        int64               `json:"userId" db:"user_id"`
	Items         []*CanteenOrderItem `json:"items"`
	TotalAmount   float64             `json:"totalAmount" db:"total_amount"`
	Status        OrderStatus         `json:"status" db:"status"`
	PaymentStatus PaymentStatus       `json:"paymentStatus" db:"payment_status"`
	CreatedAt     time.Time           `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" db:"updated_at"`
}
