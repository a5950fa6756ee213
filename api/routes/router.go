package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rewearhq/rewear-backend/api/controllers"
	"github.com/rewearhq/rewear-backend/api/middleware"
	"github.com/rewearhq/rewear-backend/internal/auth"
	"github.com/rewearhq/rewear-backend/internal/exchange"
	"github.com/rewearhq/rewear-backend/internal/items"
	"github.com/rewearhq/rewear-backend/internal/users"
	"github.com/rewearhq/rewear-backend/internal/valuation"
	"github.com/rewearhq/rewear-backend/pkg/auth/session"
	"github.com/rewearhq/rewear-backend/pkg/config"
	"github.com/rewearhq/rewear-backend/pkg/logger"
	"github.com/rewearhq/rewear-backend/pkg/redis"
)

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config          *config.Config
	Logger          *logger.Logger
	DB              controllers.Pinger
	Redis           *redis.Client
	SessionChecker  session.AccessSessionChecker
	AuthService     auth.Service
	RegisterService auth.RegisterService
	UsersService    users.Service
	ItemsService    items.Service
	ValuationSvc    valuation.Service
	ExchangeService exchange.Service
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, map[string]controllers.Pinger{
			"database": p.DB,
			"redis":    p.Redis,
		}))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.AuthService, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.AuthService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.SessionChecker, logg))
		r.Use(middleware.Idempotency(p.Redis, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/v1/me", func(r chi.Router) {
			r.Get("/", controllers.ProfileGet(p.UsersService, logg))
			r.Put("/", controllers.ProfileUpdate(p.UsersService, logg))
			r.Get("/items", controllers.ItemsMine(p.ItemsService, logg))
		})

		r.Route("/v1/items", func(r chi.Router) {
			r.Get("/", controllers.ItemsBrowse(p.ItemsService, logg))
			r.Post("/", controllers.ItemsCreate(p.ItemsService, logg))
			r.Get("/{itemId}", controllers.ItemsGet(p.ItemsService, logg))
		})

		r.Post("/v1/valuation/suggest", controllers.ValuationSuggest(p.ValuationSvc, logg))

		r.Post("/v1/exchange/redeem", controllers.ExchangeRedeem(p.ExchangeService, logg))

		r.Route("/v1/swaps", func(r chi.Router) {
			r.Get("/", controllers.SwapsList(p.ExchangeService, logg))
			r.Post("/", controllers.SwapsPropose(p.ExchangeService, logg))
			r.Post("/{proposalId}/respond", controllers.SwapsRespond(p.ExchangeService, logg))
		})
	})

	return r
}
