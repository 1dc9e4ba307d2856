package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/service"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
)

// --- Mock payment gateway ---

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) IsPaymentConfigured(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

func (m *mockGateway) CreateCheckoutSession(ctx context.Context, items []domain.CheckoutItem, successURL, cancelURL string) (*domain.CheckoutSession, error) {
	args := m.Called(ctx, items, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CheckoutSession), args.Error(1)
}

func (m *mockGateway) GetCheckoutSessionStatus(ctx context.Context, checkoutSessionID string) (domain.SessionStatus, error) {
	args := m.Called(ctx, checkoutSessionID)
	return args.Get(0).(domain.SessionStatus), args.Error(1)
}

// --- Helpers ---

func testCheckoutHandler(repo *mockCartRepository, gateway *mockGateway) *CheckoutHandler {
	logger := testLogger()
	producer := testEventProducer()
	carts := service.NewCartService(repo, new(mockCatalog), producer, logger)
	svc := service.NewCheckoutService(carts, gateway, producer, logger,
		"http://localhost:3000/payment/success",
		"http://localhost:3000/payment/cancel",
	)
	return NewCheckoutHandler(svc, logger)
}

// setupCheckoutRouter mirrors the production checkout routes. principal ""
// simulates an anonymous request.
func setupCheckoutRouter(handler *CheckoutHandler, principal string) *chi.Mux {
	r := chi.NewRouter()
	if principal != "" {
		r.Use(asPrincipal(principal))
	}
	r.Route("/api/v1/checkout", func(r chi.Router) {
		r.Use(RequireSession)
		r.Get("/state", handler.State)
		r.Post("/", handler.Submit)
		r.Post("/confirm", handler.Confirm)
	})
	return r
}

func postCheckout(t *testing.T, router *chi.Mux, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(http.MethodPost, path, reader)
	req.Header.Set(SessionHeader, "sess-1")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// --- Tests ---

func TestCheckoutHandler_Submit_Unauthenticated(t *testing.T) {
	router := setupCheckoutRouter(testCheckoutHandler(new(mockCartRepository), new(mockGateway)), "")

	rec := postCheckout(t, router, "/api/v1/checkout/", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "UNAUTHORIZED", resp.Error.Code)
}

func TestCheckoutHandler_Submit_EmptyCart(t *testing.T) {
	repo := new(mockCartRepository)
	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	router := setupCheckoutRouter(testCheckoutHandler(repo, new(mockGateway)), "alice")

	rec := postCheckout(t, router, "/api/v1/checkout/", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "EMPTY_CART", resp.Error.Code)
}

func TestCheckoutHandler_Submit_PaymentNotConfigured(t *testing.T) {
	repo := new(mockCartRepository)
	gateway := new(mockGateway)
	repo.On("Get", mock.Anything, "sess-1").Return(storedCart("sess-1"), nil)
	gateway.On("IsPaymentConfigured", mock.Anything).Return(false, nil)

	router := setupCheckoutRouter(testCheckoutHandler(repo, gateway), "alice")

	rec := postCheckout(t, router, "/api/v1/checkout/", nil)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "PAYMENT_NOT_CONFIGURED", resp.Error.Code)
}

func TestCheckoutHandler_Submit_Success(t *testing.T) {
	repo := new(mockCartRepository)
	gateway := new(mockGateway)
	repo.On("Get", mock.Anything, "sess-1").Return(storedCart("sess-1"), nil)
	gateway.On("IsPaymentConfigured", mock.Anything).Return(true, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.CheckoutSession{ID: "cs-1", RedirectURL: "https://pay.example.com/cs-1"}, nil)

	router := setupCheckoutRouter(testCheckoutHandler(repo, gateway), "alice")

	rec := postCheckout(t, router, "/api/v1/checkout/", nil)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Data domain.CheckoutSession `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cs-1", resp.Data.ID)
	assert.Equal(t, "https://pay.example.com/cs-1", resp.Data.RedirectURL)
}

func TestCheckoutHandler_Submit_ConcurrentDuplicateConflict(t *testing.T) {
	repo := new(mockCartRepository)
	gateway := new(mockGateway)
	started := make(chan struct{})
	release := make(chan struct{})

	repo.On("Get", mock.Anything, "sess-1").Return(storedCart("sess-1"), nil)
	gateway.On("IsPaymentConfigured", mock.Anything).Return(true, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&domain.CheckoutSession{ID: "cs-1", RedirectURL: "https://pay.example.com/cs-1"}, nil)

	router := setupCheckoutRouter(testCheckoutHandler(repo, gateway), "alice")

	// First submit is parked inside the gateway call when the double-click
	// arrives.
	firstDone := make(chan int, 1)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/", bytes.NewReader(nil))
		req.Header.Set(SessionHeader, "sess-1")
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		firstDone <- rec.Code
	}()

	<-started
	rec := postCheckout(t, router, "/api/v1/checkout/", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "CHECKOUT_IN_PROGRESS", resp.Error.Code)

	close(release)
	assert.Equal(t, http.StatusCreated, <-firstDone)

	gateway.AssertNumberOfCalls(t, "CreateCheckoutSession", 1)
}

func TestCheckoutHandler_Submit_ResubmitAfterAbandonedRedirect(t *testing.T) {
	repo := new(mockCartRepository)
	gateway := new(mockGateway)
	repo.On("Get", mock.Anything, "sess-1").Return(storedCart("sess-1"), nil)
	gateway.On("IsPaymentConfigured", mock.Anything).Return(true, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&domain.CheckoutSession{ID: "cs-1", RedirectURL: "https://pay.example.com/cs-1"}, nil)

	router := setupCheckoutRouter(testCheckoutHandler(repo, gateway), "alice")

	// The shopper is redirected, abandons the gateway page, and comes back
	// without ever confirming. A new submit must go through.
	rec := postCheckout(t, router, "/api/v1/checkout/", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postCheckout(t, router, "/api/v1/checkout/", nil)
	assert.Equal(t, http.StatusCreated, rec.Code)

	gateway.AssertNumberOfCalls(t, "CreateCheckoutSession", 2)
}

func TestCheckoutHandler_Confirm_Completed(t *testing.T) {
	repo := new(mockCartRepository)
	gateway := new(mockGateway)
	repo.On("Delete", mock.Anything, "sess-1").Return(nil)
	gateway.On("GetCheckoutSessionStatus", mock.Anything, "cs-1").Return(domain.SessionStatusCompleted, nil)

	router := setupCheckoutRouter(testCheckoutHandler(repo, gateway), "alice")

	rec := postCheckout(t, router, "/api/v1/checkout/confirm", ConfirmRequest{CheckoutSessionID: "cs-1"})

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "completed", resp.Data["status"])
	repo.AssertCalled(t, "Delete", mock.Anything, "sess-1")
}

func TestCheckoutHandler_Confirm_MissingSessionID(t *testing.T) {
	router := setupCheckoutRouter(testCheckoutHandler(new(mockCartRepository), new(mockGateway)), "alice")

	rec := postCheckout(t, router, "/api/v1/checkout/confirm", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestCheckoutHandler_State(t *testing.T) {
	router := setupCheckoutRouter(testCheckoutHandler(new(mockCartRepository), new(mockGateway)), "alice")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/checkout/state", nil)
	req.Header.Set(SessionHeader, "sess-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "idle", resp.Data["state"])
}
