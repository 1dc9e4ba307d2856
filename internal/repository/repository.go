package repository

import (
	"context"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
)

// CartRepository persists session-scoped carts.
type CartRepository interface {
	// Get returns the cart for the session, or apperrors.ErrNotFound.
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)

	// Save stores the cart and refreshes its TTL.
	Save(ctx context.Context, cart *domain.Cart) error

	// Delete removes the cart. Deleting a missing cart is not an error.
	Delete(ctx context.Context, sessionID string) error
}
