package backend

import (
	"context"
	"net/url"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
)

type paymentConfigurationRequest struct {
	APIKey           string   `json:"api_key"`
	AllowedCountries []string `json:"allowed_countries,omitempty"`
}

// SetPaymentConfiguration stores the payment gateway API key and the
// countries the gateway may sell to. Admin only. The key is write-only; it
// is never echoed back.
func (c *Client) SetPaymentConfiguration(ctx context.Context, apiKey string, allowedCountries []string) error {
	body := paymentConfigurationRequest{
		APIKey:           apiKey,
		AllowedCountries: allowedCountries,
	}
	return c.put(ctx, "/payment/configuration", body, nil)
}

// IsPaymentConfigured reports whether a gateway key has been stored.
func (c *Client) IsPaymentConfigured(ctx context.Context) (bool, error) {
	var configured bool
	if err := c.get(ctx, "/payment/configured", nil, &configured); err != nil {
		return false, err
	}
	return configured, nil
}

type checkoutSessionRequest struct {
	Items      []domain.CheckoutItem `json:"items"`
	SuccessURL string                `json:"success_url"`
	CancelURL  string                `json:"cancel_url"`
}

type checkoutSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// CreateCheckoutSession asks the backend to open a payment session at the
// gateway for the given line items. The shopper finishes payment at the
// returned redirect URL; successURL and cancelURL are where the gateway
// sends them afterwards.
func (c *Client) CreateCheckoutSession(ctx context.Context, items []domain.CheckoutItem, successURL, cancelURL string) (*domain.CheckoutSession, error) {
	req := checkoutSessionRequest{
		Items:      items,
		SuccessURL: successURL,
		CancelURL:  cancelURL,
	}

	var resp checkoutSessionResponse
	if err := c.post(ctx, "/payment/checkout-sessions", req, &resp); err != nil {
		return nil, err
	}

	return &domain.CheckoutSession{
		ID:          resp.ID,
		RedirectURL: resp.URL,
	}, nil
}

// GetCheckoutSessionStatus returns the terminal state of a payment session.
func (c *Client) GetCheckoutSessionStatus(ctx context.Context, sessionID string) (domain.SessionStatus, error) {
	var status domain.SessionStatus
	if err := c.get(ctx, "/payment/checkout-sessions/"+url.PathEscape(sessionID)+"/status", nil, &status); err != nil {
		return "", err
	}
	return status, nil
}
