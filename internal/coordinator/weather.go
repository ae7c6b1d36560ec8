// Package coordinator implements the poll cycle: fan out to every
// configured source concurrently, tolerate degradable failures, and
// merge the surviving fragments into one snapshot that replaces the
// previous one atomically.
package coordinator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/serac-weather/serac/internal/airquality"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider/resilience"
	"github.com/serac-weather/serac/internal/weather"
)

// WeatherSource is the forecast upstream consumed by the weather
// coordinator.
type WeatherSource interface {
	FetchCurrent(ctx context.Context) (weather.CurrentConditions, error)
	FetchDaily(ctx context.Context) ([]weather.DailyForecast, error)
	FetchHourly(ctx context.Context) ([]weather.HourlyForecast, error)
	FetchHourly6h(ctx context.Context) ([]weather.Hour6Detail, error)
	FetchElevation(ctx context.Context) (float64, error)
}

// AirQualitySource is the optional air-quality upstream.
type AirQualitySource interface {
	FetchAirQuality(ctx context.Context) (airquality.Snapshot, error)
}

// Snapshot is the merged result of one successful poll cycle. Snapshots
// are immutable: each cycle builds a fresh one and swaps it in whole.
type Snapshot struct {
	Location location.Location

	Current   weather.CurrentConditions
	Daily     []weather.DailyForecast
	Hourly    []weather.HourlyForecast
	Next6h    []weather.Hour6Detail
	Elevation float64

	AirQuality airquality.Snapshot

	UpdatedAt time.Time
}

// TodayMaxWind derives today's wind extremes from the hourly fragment.
func (s *Snapshot) TodayMaxWind() weather.WindExtremes {
	return weather.TodayMaxWind(s.Hourly, s.UpdatedAt)
}

// WindOutlook derives tomorrow's and the day after's wind extremes from
// the hourly fragment.
func (s *Snapshot) WindOutlook() (tomorrow, dayAfter weather.WindExtremes) {
	return weather.WindOutlook(s.Hourly, s.UpdatedAt)
}

// WeatherCoordinatorConfig holds the dependencies of a weather
// coordinator.
type WeatherCoordinatorConfig struct {
	// Location is the monitored point.
	Location location.Location

	// Source is the forecast upstream (required).
	Source WeatherSource

	// AirQuality is the air-quality upstream; nil disables the fragment.
	AirQuality AirQualitySource

	// Retry is the per-call retry policy. Zero value uses defaults.
	Retry resilience.RetryConfig

	// Logger for cycle logging.
	Logger zerolog.Logger

	// Metrics records cycle outcomes; nil disables recording.
	Metrics *Metrics
}

// WeatherCoordinator owns the weather snapshot for one location. Refresh
// runs one full poll cycle; Snapshot exposes the latest merged result.
// The host scheduler guarantees Refresh calls for the same coordinator
// never overlap.
type WeatherCoordinator struct {
	loc        location.Location
	source     WeatherSource
	airQuality AirQualitySource
	retry      resilience.RetryConfig
	logger     zerolog.Logger
	metrics    *Metrics

	mu          sync.RWMutex
	snapshot    *Snapshot
	lastSuccess time.Time
	lastErr     error
}

// NewWeatherCoordinator creates a weather coordinator.
func NewWeatherCoordinator(cfg WeatherCoordinatorConfig) *WeatherCoordinator {
	return &WeatherCoordinator{
		loc:        cfg.Location,
		source:     cfg.Source,
		airQuality: cfg.AirQuality,
		retry:      cfg.Retry,
		logger:     cfg.Logger.With().Str("coordinator", "weather").Str("location", cfg.Location.Name).Logger(),
		metrics:    cfg.Metrics,
	}
}

// cycleResults collects the settled outcome of every fetch in one cycle.
type cycleResults struct {
	current    weather.CurrentConditions
	currentErr error

	daily    []weather.DailyForecast
	dailyErr error

	hourly    []weather.HourlyForecast
	hourlyErr error

	next6h    []weather.Hour6Detail
	next6hErr error

	elevation    float64
	elevationErr error

	airQuality    airquality.Snapshot
	airQualityErr error
}

// Refresh runs one poll cycle.
//
// All fetches run concurrently, each wrapped in the retry policy, and
// the cycle waits for every one to settle: a slow or failing source
// never blocks or discards another source's result. Current-conditions
// and daily-forecast failures are critical and fail the cycle, leaving
// the previous snapshot in place. Hourly, 6-hour, elevation and
// air-quality failures are degradable: the fragment is replaced with its
// empty value and the cycle still succeeds.
func (c *WeatherCoordinator) Refresh(ctx context.Context) error {
	start := time.Now()

	var (
		wg  sync.WaitGroup
		res cycleResults
	)

	run := func(fetch func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch()
		}()
	}

	run(func() {
		res.current, res.currentErr = resilience.Retry(ctx, c.retry, c.source.FetchCurrent)
	})
	run(func() {
		res.daily, res.dailyErr = resilience.Retry(ctx, c.retry, c.source.FetchDaily)
	})
	run(func() {
		res.hourly, res.hourlyErr = resilience.Retry(ctx, c.retry, c.source.FetchHourly)
	})
	run(func() {
		res.next6h, res.next6hErr = resilience.Retry(ctx, c.retry, c.source.FetchHourly6h)
	})
	run(func() {
		res.elevation, res.elevationErr = resilience.Retry(ctx, c.retry, c.source.FetchElevation)
	})
	if c.airQuality != nil {
		run(func() {
			res.airQuality, res.airQualityErr = resilience.Retry(ctx, c.retry, c.airQuality.FetchAirQuality)
		})
	}

	wg.Wait()

	// Critical fragments: without current conditions and the daily
	// forecast the snapshot is useless, so the previous one is retained.
	if res.currentErr != nil {
		return c.fail(ctx, start, fmt.Errorf("current conditions: %w", res.currentErr))
	}
	if res.dailyErr != nil {
		return c.fail(ctx, start, fmt.Errorf("daily forecast: %w", res.dailyErr))
	}

	// Degradable fragments: absorb the failure, keep the cycle.
	if res.hourlyErr != nil {
		c.logger.Warn().Err(res.hourlyErr).Msg("hourly forecast degraded")
		res.hourly = nil
	}
	if res.next6hErr != nil {
		c.logger.Warn().Err(res.next6hErr).Msg("6-hour detail degraded")
		res.next6h = nil
	}
	if res.elevationErr != nil {
		c.logger.Warn().Err(res.elevationErr).Msg("elevation degraded")
		res.elevation = 0
	}
	if res.airQualityErr != nil {
		c.logger.Warn().Err(res.airQualityErr).Msg("air quality degraded")
		res.airQuality = airquality.Snapshot{}
	}

	snapshot := &Snapshot{
		Location:   c.loc,
		Current:    res.current,
		Daily:      res.daily,
		Hourly:     res.hourly,
		Next6h:     res.next6h,
		Elevation:  res.elevation,
		AirQuality: res.airQuality,
		UpdatedAt:  time.Now(),
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.lastSuccess = snapshot.UpdatedAt
	c.lastErr = nil
	c.mu.Unlock()

	c.metrics.RecordPoll(ctx, "weather", true, time.Since(start))
	c.logger.Info().
		Int("daily", len(snapshot.Daily)).
		Int("hourly", len(snapshot.Hourly)).
		Int("next6h", len(snapshot.Next6h)).
		Bool("air_quality", !snapshot.AirQuality.Empty()).
		Dur("duration", time.Since(start)).
		Msg("weather snapshot updated")

	return nil
}

func (c *WeatherCoordinator) fail(ctx context.Context, start time.Time, err error) error {
	c.mu.Lock()
	c.lastErr = err
	c.mu.Unlock()

	c.metrics.RecordPoll(ctx, "weather", false, time.Since(start))
	c.logger.Error().Err(err).Msg("weather poll cycle failed")
	return err
}

// Snapshot returns the latest merged snapshot and whether one exists.
func (c *WeatherCoordinator) Snapshot() (*Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, c.snapshot != nil
}

// LastSuccess returns the time of the last successful cycle.
func (c *WeatherCoordinator) LastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// LastError returns the error of the most recent cycle, or nil if it
// succeeded.
func (c *WeatherCoordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Healthy reports whether a snapshot exists and the most recent cycle
// succeeded.
func (c *WeatherCoordinator) Healthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot != nil && c.lastErr == nil
}
