package event

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	pkgkafka "github.com/caffeinepub/e-commerce-web-application-25/pkg/kafka"
)

// Kafka topics for storefront domain events.
const (
	TopicCartUpdated              = "storefront.cart.updated"
	TopicCartCleared              = "storefront.cart.cleared"
	TopicCheckoutSessionCreated   = "storefront.checkout.session_created"
	TopicCheckoutSessionCompleted = "storefront.checkout.session_completed"
)

// Subject types carried in the event envelope.
const (
	SubjectTypeCart     = "cart"
	SubjectTypeCheckout = "checkout_session"
)

// Source identifier for events originating from the storefront.
const SourceStorefront = "storefront"

// CartUpdatedPayload is the body of a cart.updated event.
type CartUpdatedPayload struct {
	SessionID  string         `json:"session_id"`
	Items      []CartItemData `json:"items"`
	ItemCount  int            `json:"item_count"`
	TotalCents int64          `json:"total_cents"`
	Currency   string         `json:"currency"`
}

// CartItemData is the line payload within cart events.
type CartItemData struct {
	ProductID  string `json:"product_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int    `json:"quantity"`
}

// CartClearedPayload is the body of a cart.cleared event.
type CartClearedPayload struct {
	SessionID string `json:"session_id"`
	Reason    string `json:"reason"`
}

// CheckoutSessionCreatedPayload is the body of a checkout.session_created
// event.
type CheckoutSessionCreatedPayload struct {
	SessionID         string `json:"session_id"`
	CheckoutSessionID string `json:"checkout_session_id"`
	ItemCount         int    `json:"item_count"`
	TotalCents        int64  `json:"total_cents"`
	Currency          string `json:"currency"`
}

// CheckoutSessionCompletedPayload is the body of a
// checkout.session_completed event.
type CheckoutSessionCompletedPayload struct {
	SessionID         string `json:"session_id"`
	CheckoutSessionID string `json:"checkout_session_id"`
	Status            string `json:"status"`
}

// Producer publishes storefront domain events to Kafka.
type Producer struct {
	kafka  *pkgkafka.Producer
	logger *slog.Logger
}

// NewProducer creates an event producer for the storefront.
func NewProducer(kafka *pkgkafka.Producer, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishCartUpdated publishes a cart.updated event.
func (p *Producer) PublishCartUpdated(ctx context.Context, cart *domain.Cart) error {
	items := make([]CartItemData, len(cart.Items))
	for i, item := range cart.Items {
		items[i] = CartItemData{
			ProductID:  item.ProductID,
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		}
	}

	payload := CartUpdatedPayload{
		SessionID:  cart.SessionID,
		Items:      items,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
		Currency:   cart.Currency,
	}

	ev, err := pkgkafka.NewEvent(TopicCartUpdated, cart.SessionID, SubjectTypeCart, SourceStorefront, payload)
	if err != nil {
		return fmt.Errorf("create cart.updated event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartUpdated, ev); err != nil {
		return fmt.Errorf("publish cart.updated event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.updated event",
		slog.String("session_id", cart.SessionID),
		slog.Int("item_count", cart.ItemCount()),
	)

	return nil
}

// PublishCartCleared publishes a cart.cleared event. Reason distinguishes a
// shopper emptying their cart from clearing after a completed checkout.
func (p *Producer) PublishCartCleared(ctx context.Context, sessionID, reason string) error {
	payload := CartClearedPayload{SessionID: sessionID, Reason: reason}

	ev, err := pkgkafka.NewEvent(TopicCartCleared, sessionID, SubjectTypeCart, SourceStorefront, payload)
	if err != nil {
		return fmt.Errorf("create cart.cleared event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCartCleared, ev); err != nil {
		return fmt.Errorf("publish cart.cleared event: %w", err)
	}

	p.logger.DebugContext(ctx, "published cart.cleared event",
		slog.String("session_id", sessionID),
		slog.String("reason", reason),
	)

	return nil
}

// PublishCheckoutSessionCreated publishes a checkout.session_created event.
func (p *Producer) PublishCheckoutSessionCreated(ctx context.Context, cart *domain.Cart, session *domain.CheckoutSession) error {
	payload := CheckoutSessionCreatedPayload{
		SessionID:         cart.SessionID,
		CheckoutSessionID: session.ID,
		ItemCount:         cart.ItemCount(),
		TotalCents:        cart.TotalCents(),
		Currency:          cart.Currency,
	}

	ev, err := pkgkafka.NewEvent(TopicCheckoutSessionCreated, session.ID, SubjectTypeCheckout, SourceStorefront, payload)
	if err != nil {
		return fmt.Errorf("create checkout.session_created event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutSessionCreated, ev); err != nil {
		return fmt.Errorf("publish checkout.session_created event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.session_created event",
		slog.String("session_id", cart.SessionID),
		slog.String("checkout_session_id", session.ID),
	)

	return nil
}

// PublishCheckoutSessionCompleted publishes a checkout.session_completed
// event.
func (p *Producer) PublishCheckoutSessionCompleted(ctx context.Context, sessionID, checkoutSessionID string, status domain.SessionStatus) error {
	payload := CheckoutSessionCompletedPayload{
		SessionID:         sessionID,
		CheckoutSessionID: checkoutSessionID,
		Status:            string(status),
	}

	ev, err := pkgkafka.NewEvent(TopicCheckoutSessionCompleted, checkoutSessionID, SubjectTypeCheckout, SourceStorefront, payload)
	if err != nil {
		return fmt.Errorf("create checkout.session_completed event: %w", err)
	}

	if err := p.kafka.Publish(ctx, TopicCheckoutSessionCompleted, ev); err != nil {
		return fmt.Errorf("publish checkout.session_completed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published checkout.session_completed event",
		slog.String("session_id", sessionID),
		slog.String("checkout_session_id", checkoutSessionID),
		slog.String("status", string(status)),
	)

	return nil
}
