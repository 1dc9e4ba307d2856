package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/event"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/middleware"
)

// PaymentGateway is the slice of the commerce backend the checkout service
// needs. Satisfied by *backend.Client.
type PaymentGateway interface {
	IsPaymentConfigured(ctx context.Context) (bool, error)
	CreateCheckoutSession(ctx context.Context, items []domain.CheckoutItem, successURL, cancelURL string) (*domain.CheckoutSession, error)
	GetCheckoutSessionStatus(ctx context.Context, checkoutSessionID string) (domain.SessionStatus, error)
}

// attemptTTL bounds how long a checkout attempt is remembered. A shopper
// who walked away from the gateway page gets a clean slate after this.
const attemptTTL = 30 * time.Minute

// checkoutAttempt tracks one browsing session's progress through checkout.
type checkoutAttempt struct {
	state             domain.CheckoutState
	checkoutSessionID string
	updatedAt         time.Time
}

// CheckoutService orchestrates checkout: it validates preconditions, opens a
// payment session at the gateway, and clears the cart only after the gateway
// reports the session completed. At most one attempt per browsing session
// may be in flight.
type CheckoutService struct {
	carts      *CartService
	gateway    PaymentGateway
	producer   *event.Producer
	logger     *slog.Logger
	successURL string
	cancelURL  string

	mu       sync.Mutex
	attempts map[string]*checkoutAttempt
	now      func() time.Time
}

// NewCheckoutService creates a checkout service. successURL and cancelURL
// are where the gateway sends the shopper after payment.
func NewCheckoutService(carts *CartService, gateway PaymentGateway, producer *event.Producer, logger *slog.Logger, successURL, cancelURL string) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		gateway:    gateway,
		producer:   producer,
		logger:     logger,
		successURL: successURL,
		cancelURL:  cancelURL,
		attempts:   make(map[string]*checkoutAttempt),
		now:        time.Now,
	}
}

// Submit starts checkout for the session's cart. Preconditions are checked
// in order: the caller must be authenticated, the cart must not be empty,
// the payment gateway must be configured, and no other attempt for this
// session may be in flight. The cart is left untouched; it is cleared only
// when ConfirmCheckout sees the session complete.
func (s *CheckoutService) Submit(ctx context.Context, sessionID string) (*domain.CheckoutSession, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}

	if middleware.Principal(ctx) == "" {
		return nil, apperrors.Unauthorized("sign in to check out")
	}

	cart, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load cart for checkout: %w", err)
	}
	if cart.IsEmpty() {
		return nil, apperrors.EmptyCart()
	}

	configured, err := s.gateway.IsPaymentConfigured(ctx)
	if err != nil {
		return nil, fmt.Errorf("check payment configuration: %w", err)
	}
	if !configured {
		return nil, apperrors.PaymentNotConfigured()
	}

	if err := s.begin(sessionID); err != nil {
		return nil, err
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, domain.CheckoutItemsFromCart(cart), s.successURL, s.cancelURL)
	if err != nil {
		s.fail(sessionID)
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	s.redirect(sessionID, session.ID)

	if err := s.producer.PublishCheckoutSessionCreated(ctx, cart, session); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.session_created event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout session created",
		slog.String("session_id", sessionID),
		slog.String("checkout_session_id", session.ID),
		slog.Int("item_count", cart.ItemCount()),
		slog.Int64("total_cents", cart.TotalCents()),
	)

	return session, nil
}

// ConfirmCheckout resolves an attempt after the shopper returns from the
// gateway. A completed session clears the cart; a failed one leaves the
// cart intact so the shopper can retry. Either way the in-flight guard is
// released.
func (s *CheckoutService) ConfirmCheckout(ctx context.Context, sessionID, checkoutSessionID string) (domain.SessionStatus, error) {
	if sessionID == "" {
		return "", apperrors.InvalidInput("session id is required")
	}
	if checkoutSessionID == "" {
		return "", apperrors.InvalidInput("checkout session id is required")
	}

	status, err := s.gateway.GetCheckoutSessionStatus(ctx, checkoutSessionID)
	if err != nil {
		return "", fmt.Errorf("fetch checkout session status: %w", err)
	}

	switch status {
	case domain.SessionStatusCompleted:
		if err := s.carts.clearCart(ctx, sessionID, "checkout_completed"); err != nil {
			// The payment went through; log and carry on so the shopper
			// still sees success. The cart expires on its own TTL.
			s.logger.ErrorContext(ctx, "failed to clear cart after completed checkout",
				slog.String("session_id", sessionID),
				slog.String("error", err.Error()),
			)
		}
		s.finish(sessionID)
	case domain.SessionStatusFailed:
		s.fail(sessionID)
	}

	if err := s.producer.PublishCheckoutSessionCompleted(ctx, sessionID, checkoutSessionID, status); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish checkout.session_completed event",
			slog.String("session_id", sessionID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "checkout session resolved",
		slog.String("session_id", sessionID),
		slog.String("checkout_session_id", checkoutSessionID),
		slog.String("status", string(status)),
	)

	return status, nil
}

// State reports where the session's checkout attempt currently is.
func (s *CheckoutService) State(sessionID string) domain.CheckoutState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	attempt, ok := s.attempts[sessionID]
	if !ok {
		return domain.CheckoutStateIdle
	}
	return attempt.state
}

// begin claims the in-flight slot for the session. Only a submission still
// talking to the gateway blocks: a Redirected attempt means the shopper left
// for the gateway page and may have abandoned it, so a fresh submit
// supersedes it rather than locking the session out. Failed attempts are
// always superseded.
func (s *CheckoutService) begin(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked()

	if attempt, ok := s.attempts[sessionID]; ok && attempt.state == domain.CheckoutStateSubmitting {
		return apperrors.CheckoutInProgress()
	}
	s.attempts[sessionID] = &checkoutAttempt{
		state:     domain.CheckoutStateSubmitting,
		updatedAt: s.now(),
	}
	return nil
}

func (s *CheckoutService) redirect(sessionID, checkoutSessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[sessionID] = &checkoutAttempt{
		state:             domain.CheckoutStateRedirected,
		checkoutSessionID: checkoutSessionID,
		updatedAt:         s.now(),
	}
}

// fail releases the guard but records the failure so State reports it.
func (s *CheckoutService) fail(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts[sessionID] = &checkoutAttempt{
		state:     domain.CheckoutStateFailed,
		updatedAt: s.now(),
	}
}

// pruneLocked drops attempts that have gone stale so sessions that never
// confirm do not accumulate. Caller holds s.mu.
func (s *CheckoutService) pruneLocked() {
	cutoff := s.now().Add(-attemptTTL)
	for sessionID, attempt := range s.attempts {
		if attempt.updatedAt.Before(cutoff) {
			delete(s.attempts, sessionID)
		}
	}
}

// finish releases the guard and resets the session to idle.
func (s *CheckoutService) finish(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.attempts, sessionID)
}
