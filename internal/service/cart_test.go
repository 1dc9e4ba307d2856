package service

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/domain"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/event"
	apperrors "github.com/caffeinepub/e-commerce-web-application-25/pkg/errors"
	pkgkafka "github.com/caffeinepub/e-commerce-web-application-25/pkg/kafka"
)

// --- Mock repository ---

type mockCartRepository struct {
	mock.Mock
}

func (m *mockCartRepository) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Cart), args.Error(1)
}

func (m *mockCartRepository) Save(ctx context.Context, cart *domain.Cart) error {
	args := m.Called(ctx, cart)
	return args.Error(0)
}

func (m *mockCartRepository) Delete(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}

// --- Mock catalog ---

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// --- Test helpers ---

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestCartService(repo *mockCartRepository, catalog *mockCatalog) *CartService {
	logger := newTestLogger()
	// A producer with no reachable broker fails silently; publish errors
	// are logged, never returned.
	kafkaCfg := pkgkafka.DefaultProducerConfig([]string{"localhost:9092"})
	kafkaProducer := pkgkafka.NewProducer(kafkaCfg, logger)
	producer := event.NewProducer(kafkaProducer, logger)
	return NewCartService(repo, catalog, producer, logger)
}

func widget() *domain.Product {
	return &domain.Product{
		ID:          "prod-1",
		CategoryID:  "cat-1",
		Name:        "Widget",
		Description: "A fine widget",
		PriceCents:  1990,
		Available:   true,
		Images:      []string{"https://img.example.com/w.jpg"},
	}
}

func cartWithWidget(sessionID string, qty int) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		SessionID: sessionID,
		Items: []domain.CartItem{
			{
				ProductID:   "prod-1",
				Name:        "Widget",
				Description: "A fine widget",
				PriceCents:  1990,
				Quantity:    qty,
			},
		},
		Currency:  "usd",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// --- GetCart ---

func TestCartService_GetCart_EmptyWhenMissing(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))

	cart, err := svc.GetCart(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", cart.SessionID)
	assert.True(t, cart.IsEmpty())
	assert.Equal(t, "usd", cart.Currency)
}

func TestCartService_GetCart_RequiresSessionID(t *testing.T) {
	svc := newTestCartService(new(mockCartRepository), new(mockCatalog))

	_, err := svc.GetCart(context.Background(), "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

// --- AddItem ---

func TestCartService_AddItem_SnapshotsProduct(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	catalog.On("GetProduct", mock.Anything, "prod-1").Return(widget(), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)

	line := cart.Items[0]
	assert.Equal(t, "Widget", line.Name)
	assert.Equal(t, "A fine widget", line.Description)
	assert.Equal(t, int64(1990), line.PriceCents)
	assert.Equal(t, []string{"https://img.example.com/w.jpg"}, line.ImageURLs)
	assert.Equal(t, 2, line.Quantity)

	repo.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestCartService_AddItem_MergesWithoutRefreshingSnapshot(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 3)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	// The line keeps its original snapshot; the catalog is not consulted.
	assert.Equal(t, int64(1990), cart.Items[0].PriceCents)
	catalog.AssertNotCalled(t, "GetProduct", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_DistinctProductsGetOwnLines(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	gadget := widget()
	gadget.ID = "prod-2"
	gadget.Name = "Gadget"

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 1), nil)
	catalog.On("GetProduct", mock.Anything, "prod-2").Return(gadget, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.AddItem(context.Background(), "sess-1", "prod-2", 1)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestCartService_AddItem_RejectsNonPositiveQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	for _, qty := range []int{0, -1, -100} {
		_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", qty)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput, "quantity %d", qty)
	}

	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_RejectsExcessiveQuantity(t *testing.T) {
	svc := newTestCartService(new(mockCartRepository), new(mockCatalog))

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", MaxQuantityPerItem+1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestCartService_AddItem_RejectsMergeOverLimit(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", MaxQuantityPerItem-1), nil)

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 2)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_RejectsUnavailableProduct(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	discontinued := widget()
	discontinued.Available = false

	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	catalog.On("GetProduct", mock.Anything, "prod-1").Return(discontinued, nil)

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-1", 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	repo := new(mockCartRepository)
	catalog := new(mockCatalog)
	svc := newTestCartService(repo, catalog)

	repo.On("Get", mock.Anything, "sess-1").Return(nil, apperrors.NotFound("cart", "sess-1"))
	catalog.On("GetProduct", mock.Anything, "prod-404").Return(nil, apperrors.NotFound("product", "prod-404"))

	_, err := svc.AddItem(context.Background(), "sess-1", "prod-404", 1)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// --- UpdateItemQuantity ---

func TestCartService_UpdateItemQuantity_SetsQuantity(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateItemQuantity(context.Background(), "sess-1", "prod-1", 7)
	require.NoError(t, err)
	assert.Equal(t, 7, cart.Items[0].Quantity)
}

func TestCartService_UpdateItemQuantity_ZeroRemovesLine(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.UpdateItemQuantity(context.Background(), "sess-1", "prod-1", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_UpdateItemQuantity_AbsentProductIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)

	cart, err := svc.UpdateItemQuantity(context.Background(), "sess-1", "prod-other", 3)
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- RemoveItem ---

func TestCartService_RemoveItem(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Cart")).Return(nil)

	cart, err := svc.RemoveItem(context.Background(), "sess-1", "prod-1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestCartService_RemoveItem_AbsentProductIsNoOp(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Get", mock.Anything, "sess-1").Return(cartWithWidget("sess-1", 2), nil)

	cart, err := svc.RemoveItem(context.Background(), "sess-1", "prod-other")
	require.NoError(t, err)
	assert.Len(t, cart.Items, 1)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

// --- ClearCart ---

func TestCartService_ClearCart(t *testing.T) {
	repo := new(mockCartRepository)
	svc := newTestCartService(repo, new(mockCatalog))

	repo.On("Delete", mock.Anything, "sess-1").Return(nil)

	require.NoError(t, svc.ClearCart(context.Background(), "sess-1"))
	repo.AssertExpectations(t)
}
