package backend

import (
	"context"
	"net/url"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
)

// CreateOrder places an order on behalf of the caller.
func (c *Client) CreateOrder(ctx context.Context, input domain.OrderInput) (*domain.Order, error) {
	var order domain.Order
	if err := c.post(ctx, "/orders", input, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrder returns a single order by ID.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	if err := c.get(ctx, "/orders/"+url.PathEscape(orderID), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListCallerOrders returns the calling user's own orders.
func (c *Client) ListCallerOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders/mine", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders returns every order. Admin only; the backend enforces the
// role of the forwarded principal.
func (c *Client) ListAllOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListOrdersByStatus returns orders in the given status. Admin only.
func (c *Client) ListOrdersByStatus(ctx context.Context, status domain.OrderStatus) ([]domain.Order, error) {
	q := url.Values{"status": []string{string(status)}}
	var orders []domain.Order
	if err := c.get(ctx, "/orders", q, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus moves an order to a new status. Admin only.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error) {
	body := map[string]string{"status": string(status)}
	var order domain.Order
	if err := c.put(ctx, "/orders/"+url.PathEscape(orderID)+"/status", body, &order); err != nil {
		return nil, err
	}
	return &order, nil
}
