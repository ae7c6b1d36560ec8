// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/serac-weather/serac/internal/location"
)

// Config is the full service configuration.
type Config struct {
	// Location is the monitored point.
	Location location.Location

	// MeteoFranceAPIKey enables the avalanche bulletin source. Empty
	// disables it.
	MeteoFranceAPIKey string

	// MassifIDs lists the massifs to poll bulletins for. When empty and
	// an API key is set, the massif nearest to Location is used.
	MassifIDs []int

	// WeatherInterval is the weather poll interval.
	WeatherInterval time.Duration

	// BulletinInterval is the avalanche bulletin poll interval.
	BulletinInterval time.Duration

	// AirQuality enables the air-quality fragment.
	AirQuality bool

	// Port the HTTP API listens on.
	Port string

	// Environment is the deployment environment name.
	Environment string

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled turns OTLP export on.
	TelemetryEnabled bool
}

// Load reads configuration from the environment, consulting a .env file
// when present.
func Load() (*Config, error) {
	// Missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	lat, err := getenvFloat("SERAC_LATITUDE")
	if err != nil {
		return nil, err
	}
	lon, err := getenvFloat("SERAC_LONGITUDE")
	if err != nil {
		return nil, err
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, fmt.Errorf("coordinate out of range: %f, %f", lat, lon)
	}

	cfg := &Config{
		Location: location.Location{
			Name:      getenvDefault("SERAC_LOCATION_NAME", "home"),
			Latitude:  lat,
			Longitude: lon,
		},
		MeteoFranceAPIKey: os.Getenv("METEOFRANCE_API_KEY"),
		AirQuality:        getenvDefault("SERAC_AIR_QUALITY", "true") == "true",
		Port:              getenvDefault("APP_PORT", "8080"),
		Environment:       getenvDefault("APP_ENV", "development"),
		OTLPEndpoint:      getenvDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:  os.Getenv("OTEL_ENABLED") == "true",
	}

	cfg.WeatherInterval, err = getenvDuration("SERAC_WEATHER_INTERVAL", time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.BulletinInterval, err = getenvDuration("SERAC_BULLETIN_INTERVAL", 6*time.Hour)
	if err != nil {
		return nil, err
	}

	cfg.MassifIDs, err = parseMassifIDs(os.Getenv("SERAC_MASSIF_IDS"))
	if err != nil {
		return nil, err
	}
	if len(cfg.MassifIDs) == 0 && cfg.MeteoFranceAPIKey != "" {
		nearest, _ := location.NearestMassif(lat, lon)
		cfg.MassifIDs = []int{nearest.ID}
	}

	return cfg, nil
}

// parseMassifIDs parses a comma-separated massif id list, validating
// each id against the catalog.
func parseMassifIDs(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	var ids []int
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("invalid SERAC_MASSIF_IDS entry %q: %w", part, err)
		}
		if _, ok := location.MassifByID(id); !ok {
			return nil, fmt.Errorf("unknown massif id %d", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvFloat(key string) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, fmt.Errorf("%s is required", key)
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
