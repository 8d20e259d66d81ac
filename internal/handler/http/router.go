package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/sdk788-art/ec-agent/pkg/health"
	"github.com/sdk788-art/ec-agent/pkg/middleware"
)

// serviceName labels metrics and traces emitted by the HTTP layer.
const serviceName = "ec-agent"

// NewRouter creates a chi router with all assistant routes registered.
func NewRouter(
	searchHandler *SearchHandler,
	productHandler *ProductHandler,
	customerHandler *CustomerHandler,
	sessionHandler *SessionHandler,
	healthHandler *health.Handler,
	corsCfg middleware.CORSConfig,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware. The timeout leaves room for one generation call
	// plus its transport retries.
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(90 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.PrometheusMetrics(serviceName))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/search", searchHandler.Search)

		r.Route("/products", func(r chi.Router) {
			r.With(middleware.CacheControl(300)).Get("/{id}", productHandler.Get)
			r.Get("/{id}/review-insight", productHandler.ReviewInsight)
			r.Get("/{id}/cross-sell", productHandler.CrossSell)
		})

		r.Route("/customers", func(r chi.Router) {
			r.Use(middleware.CacheControl(300))
			r.Get("/", customerHandler.List)
			r.Get("/{id}", customerHandler.Get)
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/", sessionHandler.Current)
			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)
				r.Post("/login", sessionHandler.Login)
			})
			r.Post("/logout", sessionHandler.Logout)
			r.Post("/cart/{productID}", sessionHandler.AddToCart)
			r.Get("/cart", sessionHandler.Cart)
		})
	})

	return r
}

// ContentTypeJSON rejects write requests that do not declare a JSON body.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct != "" && ct != "application/json" && !hasJSONPrefix(ct) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnsupportedMediaType)
			_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func hasJSONPrefix(ct string) bool {
	return len(ct) >= 16 && ct[:16] == "application/json"
}
