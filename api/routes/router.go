package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/pulse-analytics/api/controllers"
	analyticscontrollers "github.com/angelmondragon/pulse-analytics/api/controllers/analytics"
	"github.com/angelmondragon/pulse-analytics/api/middleware"
	"github.com/angelmondragon/pulse-analytics/internal/analytics"
	"github.com/angelmondragon/pulse-analytics/pkg/config"
	"github.com/angelmondragon/pulse-analytics/pkg/logger"
	"github.com/angelmondragon/pulse-analytics/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	redisClient *redis.Client,
	analyticsService analytics.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	var limiter middleware.RateLimiterStore
	deps := map[string]controllers.Pinger{}
	if redisClient != nil {
		limiter = redisClient
		deps["redis"] = redisClient
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	analyticsPolicy := middleware.NewRateLimitPolicy("analytics", cfg.RateLimit.Window, cfg.RateLimit.Limit).
		TrustProxyHeaders(cfg.RateLimit.TrustProxy)

	r.Route("/api/analytics", func(r chi.Router) {
		r.Use(middleware.RateLimit(analyticsPolicy, limiter, logg))
		r.Get("/", analyticscontrollers.Analytics(analyticsService, logg))
		r.Get("/dashboard", analyticscontrollers.Dashboard(analyticsService, logg))
		r.Get("/prompt", analyticscontrollers.Prompt(analyticsService, logg))
	})

	return r
}
