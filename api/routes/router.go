package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/bulkdiscount-backend/api/controllers"
	dashboardcontrollers "github.com/angelmondragon/bulkdiscount-backend/api/controllers/dashboards"
	discountcontrollers "github.com/angelmondragon/bulkdiscount-backend/api/controllers/discounts"
	invoicecontrollers "github.com/angelmondragon/bulkdiscount-backend/api/controllers/invoices"
	"github.com/angelmondragon/bulkdiscount-backend/api/middleware"
	"github.com/angelmondragon/bulkdiscount-backend/internal/discounts"
	"github.com/angelmondragon/bulkdiscount-backend/internal/invoices"
	"github.com/angelmondragon/bulkdiscount-backend/internal/merchants"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/config"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/db"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/logger"
	"github.com/angelmondragon/bulkdiscount-backend/pkg/redis"
)

// NewRouter wires every HTTP route. redisClient may be nil, in which case the
// idempotency guard is disabled and readiness reports redis as disabled.
// metricsHandler may be nil to skip /metrics.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	metricsHandler http.Handler,
	discountService discounts.Service,
	invoiceService invoices.Service,
	dashboardService merchants.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	var (
		idempotencyStore redis.IdempotencyStore
		redisPinger      controllers.Pinger
		dbPinger         controllers.Pinger
	)
	if redisClient != nil {
		idempotencyStore = redisClient
		redisPinger = redisClient
	}
	if dbP != nil {
		dbPinger = dbP
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbPinger, redisPinger))
	})

	if metricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", metricsHandler)
	}

	r.Route("/api/v1/merchants/{merchantId}", func(r chi.Router) {
		r.Use(middleware.MerchantScope(logg))

		r.Get("/dashboard", dashboardcontrollers.Merchant(dashboardService, logg))

		r.Route("/bulk_discounts", func(r chi.Router) {
			r.Get("/", discountcontrollers.List(discountService, logg))
			r.With(middleware.Idempotency(idempotencyStore, cfg.Idempotency.TTL, logg)).
				Post("/", discountcontrollers.Create(discountService, logg))
			r.Get("/{discountId}", discountcontrollers.Get(discountService, logg))
			r.Patch("/{discountId}", discountcontrollers.Update(discountService, logg))
			r.Delete("/{discountId}", discountcontrollers.Delete(discountService, logg))
		})

		r.Route("/invoices/{invoiceId}", func(r chi.Router) {
			r.Get("/", invoicecontrollers.MerchantShow(invoiceService, logg))
			r.Patch("/items/{invoiceItemId}", invoicecontrollers.UpdateItemStatus(invoiceService, logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Get("/dashboard", dashboardcontrollers.Admin(dashboardService, logg))
		r.Get("/invoices/{invoiceId}", invoicecontrollers.AdminShow(invoiceService, logg))
	})

	return r
}
