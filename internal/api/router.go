// Package api provides the HTTP API for Serac.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/serac-weather/serac/internal/api/handler"
	"github.com/serac-weather/serac/internal/api/middleware"
	"github.com/serac-weather/serac/internal/provider/resilience"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	Logger      zerolog.Logger
	ServiceName string

	Weather   handler.WeatherProvider
	Bulletins []handler.BulletinProvider
	Registry  *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "serac"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.Weather, cfg.Registry)
	weatherHandler := handler.NewWeatherHandler(cfg.Weather)
	avalancheHandler := handler.NewAvalancheHandler(cfg.Bulletins)
	massifHandler := handler.NewMassifHandler()

	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)

	r.Get("/healthz", opsHandler.HealthCheck)

	r.Route("/v1", func(r chi.Router) {
		r.Use(standardRateLimit)

		r.Get("/weather", weatherHandler.GetWeather)
		r.Get("/airquality", weatherHandler.GetAirQuality)

		r.Route("/avalanche", func(r chi.Router) {
			r.Get("/", avalancheHandler.ListBulletins)
			r.Get("/{massifID}", avalancheHandler.GetBulletin)
		})

		r.Route("/massifs", func(r chi.Router) {
			r.Get("/", massifHandler.ListMassifs)
			r.Get("/nearest", massifHandler.NearestMassif)
		})

		r.Get("/sources", opsHandler.ListSources)
	})

	return r
}
