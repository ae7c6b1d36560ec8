// Package main provides the entrypoint for the Serac service: poll
// upstream weather, air-quality and avalanche bulletin sources on a
// schedule and serve the merged snapshots over HTTP.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	airopenmeteo "github.com/serac-weather/serac/internal/airquality/openmeteo"
	"github.com/serac-weather/serac/internal/api"
	"github.com/serac-weather/serac/internal/api/handler"
	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/config"
	"github.com/serac-weather/serac/internal/coordinator"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider/resilience"
	"github.com/serac-weather/serac/internal/scheduler"
	"github.com/serac-weather/serac/internal/telemetry"
	"github.com/serac-weather/serac/internal/weather/openmeteo"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	const serviceName = "serac"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Info().
		Str("location", cfg.Location.Name).
		Float64("latitude", cfg.Location.Latitude).
		Float64("longitude", cfg.Location.Longitude).
		Ints("massifs", cfg.MassifIDs).
		Msg("starting Serac")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	metrics, err := coordinator.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	registry := resilience.NewRegistry()

	// Weather + air quality.
	weatherSource := openmeteo.NewClient(openmeteo.ClientConfig{
		Location: cfg.Location,
		HTTPClient: resilience.NewClient(resilience.ClientConfig{
			Name:     openmeteo.SourceName,
			Registry: registry,
		}),
		Logger: log,
	})

	var airQualitySource coordinator.AirQualitySource
	if cfg.AirQuality {
		airQualitySource = airopenmeteo.NewClient(airopenmeteo.ClientConfig{
			Location: cfg.Location,
			HTTPClient: resilience.NewClient(resilience.ClientConfig{
				Name:     airopenmeteo.SourceName,
				Registry: registry,
			}),
			Logger: log,
		})
	}

	weatherCoordinator := coordinator.NewWeatherCoordinator(coordinator.WeatherCoordinatorConfig{
		Location:   cfg.Location,
		Source:     weatherSource,
		AirQuality: airQualitySource,
		Logger:     log,
		Metrics:    metrics,
	})

	jobs := []scheduler.Job{{
		Name:     "weather",
		Poller:   weatherCoordinator,
		Interval: cfg.WeatherInterval,
		Timeout:  5 * time.Minute,
	}}

	// Avalanche bulletins, one coordinator per massif.
	var bulletinProviders []handler.BulletinProvider
	if cfg.MeteoFranceAPIKey != "" {
		braClient := resilience.NewClient(resilience.ClientConfig{
			Name:     avalanche.SourceName,
			Registry: registry,
		})

		for _, id := range cfg.MassifIDs {
			massif, ok := location.MassifByID(id)
			if !ok {
				log.Fatal().Int("massif_id", id).Msg("unknown massif id")
			}

			bc := coordinator.NewBulletinCoordinator(coordinator.BulletinCoordinatorConfig{
				Massif: massif,
				Source: avalanche.NewClient(avalanche.ClientConfig{
					APIKey:     cfg.MeteoFranceAPIKey,
					MassifID:   id,
					HTTPClient: braClient,
					Logger:     log,
				}),
				Logger:  log,
				Metrics: metrics,
			})
			bulletinProviders = append(bulletinProviders, bc)

			jobs = append(jobs, scheduler.Job{
				Name:     "bulletin-" + massif.Name,
				Poller:   bc,
				Interval: cfg.BulletinInterval,
				Timeout:  5 * time.Minute,
			})
		}
	} else {
		log.Warn().Msg("METEOFRANCE_API_KEY not set, avalanche bulletins disabled")
	}

	sched := scheduler.New(jobs, log)
	if err := sched.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start scheduler")
	}
	defer sched.Stop()

	router := api.NewRouter(api.RouterConfig{
		Version:     Version,
		Logger:      log,
		ServiceName: serviceName,
		Weather:     weatherCoordinator,
		Bulletins:   bulletinProviders,
		Registry:    registry,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
