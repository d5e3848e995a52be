package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Aniket-7751/POS-sub001/api/controllers"
	"github.com/Aniket-7751/POS-sub001/api/middleware"
	"github.com/Aniket-7751/POS-sub001/internal/invoices"
	"github.com/Aniket-7751/POS-sub001/internal/orders"
	"github.com/Aniket-7751/POS-sub001/internal/pricing"
	"github.com/Aniket-7751/POS-sub001/pkg/config"
	"github.com/Aniket-7751/POS-sub001/pkg/enums"
	"github.com/Aniket-7751/POS-sub001/pkg/logger"
	"github.com/Aniket-7751/POS-sub001/pkg/metrics"
	"github.com/Aniket-7751/POS-sub001/pkg/redis"
)

// Dependencies carries everything the router wires into handlers.
type Dependencies struct {
	Config      *config.Config
	Logger      *logger.Logger
	Orders      orders.Service
	Pricing     pricing.Service
	Invoices    invoices.Service
	Idempotency redis.IdempotencyStore
	HTTPMetrics *metrics.HTTPMetrics
	Readiness   map[string]controllers.Pinger
	MetricsH    http.Handler
}

func NewRouter(deps Dependencies) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware)
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})

	metricsHandler := deps.MetricsH
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(
			middleware.Auth(cfg.JWT, logg),
			middleware.Idempotency(deps.Idempotency, logg),
		)

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.RequireRole(string(enums.ActorRoleStore), logg)).
				Post("/", controllers.CreateOrder(deps.Orders, logg))
			r.With(middleware.RequireRole(string(enums.ActorRoleStore), logg)).
				Get("/my", controllers.ListMyOrders(deps.Orders, logg))
			r.With(middleware.RequireRole(string(enums.ActorRoleAdmin), logg)).
				Get("/", controllers.AdminListOrders(deps.Orders, logg))
			r.With(middleware.RequireRole(string(enums.ActorRoleAdmin), logg)).
				Patch("/{orderId}", controllers.TransitionOrder(deps.Orders, logg))
		})

		r.Route("/stores/{storeId}/prices", func(r chi.Router) {
			r.Get("/", controllers.ListStorePrices(deps.Pricing, logg))
			r.Get("/{sku}/effective", controllers.GetEffectivePrice(deps.Pricing, logg))
			r.With(middleware.RequireRole(string(enums.ActorRoleStore), logg)).
				Put("/{sku}", controllers.SetStorePrice(deps.Pricing, logg))
		})

		r.Get("/invoices/{invoiceId}", controllers.GetInvoice(deps.Invoices, logg))
	})

	return r
}
