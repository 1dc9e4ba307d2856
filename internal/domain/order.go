package domain

import "time"

// OrderStatus tracks an order through fulfilment.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one line of a placed order, priced at order time.
type OrderItem struct {
	ProductID  string `json:"product_id"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
}

// Order is a placed order as stored by the commerce backend.
type Order struct {
	ID               string      `json:"id"`
	CustomerID       string      `json:"customer_id"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	Status           OrderStatus `json:"status"`
	Items            []OrderItem `json:"items"`
	TotalAmountCents int64       `json:"total_amount_cents"`
	ShippingAddress  string      `json:"shipping_address"`
	CreatedAt        time.Time   `json:"created_at"`
}

// OrderInput carries the fields needed to place an order.
type OrderInput struct {
	CustomerName    string      `json:"customer_name" validate:"required,min=1,max=200"`
	CustomerEmail   string      `json:"customer_email" validate:"required,email"`
	ShippingAddress string      `json:"shipping_address" validate:"required,min=1,max=500"`
	Items           []OrderItem `json:"items" validate:"required,min=1,dive"`
}
