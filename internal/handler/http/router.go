package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/uzgnsodyum/shopping-site-2/pkg/health"
	"github.com/uzgnsodyum/shopping-site-2/pkg/middleware"

	"github.com/uzgnsodyum/shopping-site-2/internal/service"
)

// RouterConfig bundles the dependencies and tunables for the HTTP router.
type RouterConfig struct {
	Catalog   *service.CatalogService
	Reviews   *service.ReviewService
	Carts     *service.CartService
	Campaigns *service.CampaignService
	Pricing   *service.PricingService

	Health *health.Handler
	Logger *slog.Logger

	RateLimitRPS      int
	RateLimitBurst    int
	PprofAllowedCIDRs []string
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("storefront"))
	r.Use(middleware.Tracing("storefront"))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.Logger))
	r.Use(CORS)

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofAllowedCIDRs, cfg.Logger)

	productHandler := NewProductHandler(cfg.Catalog, cfg.Logger)
	reviewHandler := NewReviewHandler(cfg.Reviews, cfg.Logger)
	cartHandler := NewCartHandler(cfg.Carts, cfg.Pricing, cfg.Logger)
	campaignHandler := NewCampaignHandler(cfg.Campaigns, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.List)
			r.Post("/", productHandler.Create)
			r.Get("/{productId}", productHandler.Get)

			r.Get("/{productId}/reviews", reviewHandler.List)
			r.Post("/{productId}/reviews", reviewHandler.Create)
		})

		r.Route("/campaigns", func(r chi.Router) {
			r.Get("/", campaignHandler.List)
			r.Post("/", campaignHandler.Create)
			r.Get("/{campaignId}", campaignHandler.Get)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(UserIDFromHeader)

			r.Get("/", cartHandler.Get)
			r.Delete("/", cartHandler.Clear)

			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{itemId}", cartHandler.UpdateItem)
			r.Delete("/items/{itemId}", cartHandler.RemoveItem)

			r.Get("/quote", cartHandler.Quote)
			r.Post("/checkout", cartHandler.Checkout)
		})
	})

	return r
}
