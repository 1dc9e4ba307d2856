package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/caffeinepub/e-commerce-web-application-25/internal/backend"
	"github.com/caffeinepub/e-commerce-web-application-25/internal/service"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/health"
	"github.com/caffeinepub/e-commerce-web-application-25/pkg/middleware"
)

// RouterConfig bundles the dependencies the router needs.
type RouterConfig struct {
	CartService     *service.CartService
	CheckoutService *service.CheckoutService
	Backend         *backend.Client
	Health          *health.Handler
	Logger          *slog.Logger
	JWTSecret       string
	CORS            middleware.CORSConfig
	RateLimitRPS    int
	RateLimitBurst  int
}

// NewRouter assembles the storefront's HTTP surface.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.Authenticate(cfg.JWTSecret, cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	if cfg.RateLimitRPS > 0 {
		r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
	}

	// Operational endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	catalogHandler := NewCatalogHandler(cfg.Backend, cfg.Logger)
	cartHandler := NewCartHandler(cfg.CartService, cfg.Logger)
	checkoutHandler := NewCheckoutHandler(cfg.CheckoutService, cfg.Logger)
	orderHandler := NewOrderHandler(cfg.Backend, cfg.Logger)
	profileHandler := NewProfileHandler(cfg.Backend, cfg.Logger)
	adminHandler := NewAdminHandler(cfg.Backend, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/featured", catalogHandler.ListFeatured)
		r.Get("/products/search", catalogHandler.SearchProducts)
		r.Get("/products/{productID}", catalogHandler.GetProduct)
		r.Get("/categories", catalogHandler.ListCategories)

		// Cart, scoped to the browsing session
		r.Route("/cart", func(r chi.Router) {
			r.Use(RequireSession)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateItemQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})

		// Checkout needs both a session and a signed-in shopper. Submit
		// re-checks the principal itself so the error order stays stable.
		r.Route("/checkout", func(r chi.Router) {
			r.Use(RequireSession)

			r.Get("/state", checkoutHandler.State)
			r.Post("/", checkoutHandler.Submit)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth)
				r.Post("/confirm", checkoutHandler.Confirm)
			})
		})

		// Orders and profile require a signed-in shopper
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Post("/orders", orderHandler.CreateOrder)
			r.Get("/orders/mine", orderHandler.ListMine)
			r.Get("/orders/{orderID}", orderHandler.GetOrder)

			r.Get("/profile", profileHandler.GetProfile)
			r.Put("/profile", profileHandler.SaveProfile)
			r.Get("/profile/role", profileHandler.GetRole)
		})

		// Admin dashboard
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Use(RequireAdmin(cfg.Backend, cfg.Logger))

			r.Post("/products", adminHandler.AddProduct)
			r.Put("/products/{productID}", adminHandler.UpdateProduct)
			r.Delete("/products/{productID}", adminHandler.DeleteProduct)
			r.Post("/products/{productID}/images", adminHandler.AddProductImage)
			r.Post("/products/{productID}/images/remove", adminHandler.RemoveProductImage)

			r.Post("/categories", adminHandler.AddCategory)

			r.Get("/orders", adminHandler.ListOrders)
			r.Put("/orders/{orderID}/status", adminHandler.UpdateOrderStatus)

			r.Get("/users/{principal}/profile", adminHandler.GetUserProfile)
			r.Put("/users/{principal}/role", adminHandler.AssignRole)

			r.Put("/payment/configuration", adminHandler.SetPaymentConfiguration)
			r.Get("/payment/configured", adminHandler.IsPaymentConfigured)
		})
	})

	return r
}
