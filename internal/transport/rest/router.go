package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/heartmarshall/ideascore-backend/internal/auth"
	"github.com/heartmarshall/ideascore-backend/internal/config"
	"github.com/heartmarshall/ideascore-backend/internal/transport/middleware"
)

type tokenValidator interface {
	Validate(token string) (auth.Claims, error)
}

type httpMetrics interface {
	Handler() http.Handler
	InstrumentHandler(next http.Handler) http.Handler
}

// RouterDeps bundles what NewRouter mounts.
type RouterDeps struct {
	Health     *HealthHandler
	Credit     *CreditHandler
	Generation *GenerationHandler
	Admin      *AdminHandler

	Tokens  tokenValidator
	Limiter *middleware.RateLimiter
	Metrics httpMetrics
	CORS    config.CORSConfig
	Logger  *slog.Logger
}

// NewRouter builds the HTTP handler tree. Probes and /metrics bypass auth and
// rate limiting; everything under /v1 needs a verified bearer token.
func NewRouter(d RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.CORS(d.CORS))
	r.Use(middleware.Auth(d.Tokens))
	r.Use(middleware.Logger(d.Logger))
	r.Use(d.Metrics.InstrumentHandler)

	r.Get("/live", d.Health.Live)
	r.Get("/ready", d.Health.Ready)
	r.Get("/health", d.Health.Health)
	r.Handle("/metrics", d.Metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Use(d.Limiter.Limit)

		r.Get("/balance", d.Credit.Balance)
		r.Get("/eligibility", d.Credit.Eligibility)
		r.Get("/transactions", d.Credit.Transactions)

		r.Post("/generations", d.Generation.Create)
		r.Get("/generations", d.Generation.List)
		r.Get("/generations/{id}", d.Generation.Get)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Post("/accounts", d.Admin.OpenAccount)
			r.Post("/accounts/{id}/topup", d.Admin.TopUp)
			r.Post("/accounts/{id}/adjust", d.Admin.Adjust)
		})
	})

	return r
}
