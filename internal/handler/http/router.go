package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/alexanderdross/V0-Desiree/pkg/health"
	"github.com/alexanderdross/V0-Desiree/pkg/middleware"
)

const serviceName = "storefront"

// RouterConfig carries the handlers and HTTP settings the router is built from.
type RouterConfig struct {
	Catalog  *CatalogHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Contact  *ContactHandler
	Site     *SiteHandler
	Health   *health.Handler
	Visitors *Visitors

	AllowedOrigins []string
	PprofCIDRs     []string

	// ContactRPS and ContactBurst bound contact submissions per client IP.
	ContactRPS   float64
	ContactBurst int
}

// NewRouter creates a chi router with all storefront routes registered. ctx
// bounds the lifetime of the rate limiter's background eviction.
func NewRouter(ctx context.Context, cfg RouterConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))

	// Health check endpoints
	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, cfg.PprofCIDRs, logger)

	r.With(middleware.CacheControl(3600)).Get("/sitemap.xml", cfg.Site.Sitemap)

	contactLimit := middleware.RateLimit(ctx, cfg.ContactRPS, cfg.ContactBurst, logger)
	r.With(contactLimit, middleware.RequireJSON).Post("/api/contact", cfg.Contact.Submit)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Use(middleware.CacheControl(300))
			r.Get("/{category}", cfg.Catalog.ListCategory)
			r.Get("/{category}/{id}", cfg.Catalog.GetEntry)
		})

		r.Get("/turnstile/site-key", cfg.Site.TurnstileSiteKey)
		r.With(contactLimit, middleware.RequireJSON).Post("/contact", cfg.Contact.Submit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.NoStore)
			r.Use(middleware.RequireJSON)
			r.Use(cfg.Visitors.Middleware)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cfg.Cart.GetCart)
				r.Delete("/", cfg.Cart.ClearCart)

				r.Post("/items", cfg.Cart.AddItem)
				r.Put("/items/{id}", cfg.Cart.UpdateQuantity)
				r.Delete("/items/{id}", cfg.Cart.RemoveItem)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/config", cfg.Checkout.Config)
				r.Post("/sessions", cfg.Checkout.CreateSession)
				r.Get("/sessions/{id}", cfg.Checkout.GetSession)
			})
		})
	})

	return r
}
