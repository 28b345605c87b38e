package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wildwestwallart/storefront-backend/api/controllers"
	"github.com/wildwestwallart/storefront-backend/api/middleware"
	cartsvc "github.com/wildwestwallart/storefront-backend/internal/cart"
	"github.com/wildwestwallart/storefront-backend/internal/catalog"
	"github.com/wildwestwallart/storefront-backend/internal/notifications"
	"github.com/wildwestwallart/storefront-backend/internal/relay"
	"github.com/wildwestwallart/storefront-backend/pkg/config"
	"github.com/wildwestwallart/storefront-backend/pkg/logger"
	"github.com/wildwestwallart/storefront-backend/pkg/metrics"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	registry *prometheus.Registry,
	httpMetrics *metrics.HTTPMetrics,
	redisClient controllers.Pinger,
	relayService relay.Service,
	catalogService catalog.Service,
	cartService cartsvc.Service,
	notificationService notifications.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisClient))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	// Credentialed mirror of the records backend. The controller enforces
	// GET-only, so every method is routed to it.
	r.Route("/api/records", func(r chi.Router) {
		r.HandleFunc("/", controllers.RecordsProxy(relayService, logg))
		r.HandleFunc("/{recordID}", controllers.RecordsProxy(relayService, logg))
	})

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(catalogService, logg))
		r.Post("/refresh", controllers.RefreshCatalog(catalogService, logg))
		r.Get("/{productID}", controllers.GetProduct(catalogService, logg))
		r.Get("/{productID}/pricing", controllers.ProductPricing(catalogService, logg))
		r.With(middleware.Session(logg)).Post("/{productID}/buy-now", controllers.BuyNow(catalogService, cartService, logg))
	})

	r.Route("/api/v1/cart", func(r chi.Router) {
		r.Use(middleware.Session(logg))
		r.Get("/", controllers.GetCart(cartService, logg))
		r.Delete("/", controllers.ClearCart(cartService, logg))
		r.Get("/summary", controllers.CartSummary(cartService, logg))
		r.Post("/items", controllers.AddCartItem(cartService, catalogService, logg))
		r.Patch("/items/{itemID}", controllers.UpdateCartItem(cartService, logg))
		r.Delete("/items/{itemID}", controllers.RemoveCartItem(cartService, logg))
		r.Post("/validate", controllers.ValidateCart(cartService, logg))
		r.Post("/checkout", controllers.CartCheckout(cartService, logg))
	})

	r.Post("/api/v1/checkout/notify", controllers.CheckoutNotify(notificationService, logg))
	r.Post("/api/v1/contact", controllers.Contact(notificationService, logg))

	return r
}
