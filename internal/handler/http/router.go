package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zoobutik/zoobutik.bg/internal/auth"
	"github.com/zoobutik/zoobutik.bg/internal/service"
	"github.com/zoobutik/zoobutik.bg/pkg/health"
	"github.com/zoobutik/zoobutik.bg/pkg/middleware"
)

// Services bundles the storefront services the router exposes.
type Services struct {
	Catalog    *service.CatalogService
	Navigation *service.NavigationService
	Cart       *service.CartService
	Wishlist   *service.WishlistService
	Checkout   *service.CheckoutService
	Orders     *service.OrderService
	Newsletter *service.NewsletterService
	Accounts   *service.AccountService
}

// NewRouter creates a chi router with all storefront and admin routes.
func NewRouter(
	svcs Services,
	jwt *auth.JWTManager,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(corsCfg))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	catalogHandler := NewCatalogHandler(svcs.Catalog, logger)
	navigationHandler := NewNavigationHandler(svcs.Navigation, logger)
	cartHandler := NewCartHandler(svcs.Cart, logger)
	wishlistHandler := NewWishlistHandler(svcs.Wishlist, logger)
	checkoutHandler := NewCheckoutHandler(svcs.Checkout, logger)
	orderHandler := NewOrderHandler(svcs.Orders, logger)
	newsletterHandler := NewNewsletterHandler(svcs.Newsletter, logger)
	accountHandler := NewAccountHandler(svcs.Accounts, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		// Public catalog
		r.Route("/products", func(r chi.Router) {
			r.Get("/", catalogHandler.Browse)
			r.Get("/brands", catalogHandler.ListBrands)
			r.Get("/featured", catalogHandler.ListFeatured)
			r.Get("/{id}", catalogHandler.GetProduct)
		})
		r.Get("/categories/tree", navigationHandler.Tree)

		// Session stores
		r.Route("/cart", func(r chi.Router) {
			r.Use(SessionIDFromHeader)

			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productID}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productID}", cartHandler.RemoveItem)
		})
		r.Route("/wishlist", func(r chi.Router) {
			r.Use(SessionIDFromHeader)

			r.Get("/", wishlistHandler.GetWishlist)
			r.Delete("/", wishlistHandler.Clear)
			r.Post("/items", wishlistHandler.AddItem)
			r.Delete("/items/{productID}", wishlistHandler.RemoveItem)
		})

		// Checkout works for guests and logged-in customers alike.
		r.With(SessionIDFromHeader, AuthenticateOptional(jwt)).
			Post("/checkout", checkoutHandler.PlaceOrder)

		// Newsletter
		r.Post("/newsletter/subscribe", newsletterHandler.Subscribe)
		r.Post("/newsletter/unsubscribe", newsletterHandler.Unsubscribe)

		// Auth
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", accountHandler.Register)
			r.Post("/login", accountHandler.Login)
			r.Post("/refresh", accountHandler.Refresh)
		})

		// Customer account
		r.Route("/account", func(r chi.Router) {
			r.Use(Authenticate(jwt))

			r.Get("/profile", accountHandler.GetProfile)
			r.Put("/profile", accountHandler.UpdateProfile)
			r.Get("/orders", orderHandler.ListMyOrders)
		})

		// Admin back-office
		r.Route("/admin", func(r chi.Router) {
			r.Use(Authenticate(jwt))
			r.Use(RequireAdmin)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", catalogHandler.ListProducts)
				r.Post("/", catalogHandler.CreateProduct)
				r.Put("/featured", catalogHandler.SetFeatured)
				r.Put("/{id}", catalogHandler.UpdateProduct)
				r.Delete("/{id}", catalogHandler.DeleteProduct)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", navigationHandler.ListCategories)
				r.Post("/", navigationHandler.CreateCategory)
				r.Get("/{id}", navigationHandler.GetCategory)
				r.Put("/{id}", navigationHandler.UpdateCategory)
				r.Delete("/{id}", navigationHandler.DeleteCategory)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", orderHandler.ListOrders)
				r.Get("/{id}", orderHandler.GetOrder)
				r.Patch("/{id}/status", orderHandler.UpdateStatus)
			})

			r.Get("/newsletter/subscribers", newsletterHandler.ListSubscribers)
		})
	})

	return r
}
