package domain

import (
	"fmt"
	"time"
)

// CartItem is a line in the shopping cart. Name, description, price, and
// images are snapshotted from the catalog when the item is first added and
// are not refreshed afterwards.
type CartItem struct {
	ProductID   string   `json:"product_id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	PriceCents  int64    `json:"price_cents"`
	ImageURLs   []string `json:"image_urls,omitempty"`
	Quantity    int      `json:"quantity"`
}

// Subtotal returns the line total in minor units.
func (i CartItem) Subtotal() int64 {
	return i.PriceCents * int64(i.Quantity)
}

// Cart holds a shopper's session-scoped cart.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	Currency  string     `json:"currency"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart creates an empty cart for the given session.
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Items:     []CartItem{},
		Currency:  "usd",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// FindItem returns the index of the line for productID, or -1.
func (c *Cart) FindItem(productID string) int {
	for i, item := range c.Items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	var n int
	for _, item := range c.Items {
		n += item.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalCents returns the cart total in minor units.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

// Total formats the cart total as a decimal string, e.g. 1099 -> "10.99".
func (c *Cart) Total() string {
	return FormatCents(c.TotalCents())
}

// FormatCents renders a minor-unit amount as a decimal string with two
// fractional digits.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
