package coordinator

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/serac-weather/serac/internal/avalanche"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider/resilience"
)

// BulletinSource is the avalanche bulletin upstream for one massif.
type BulletinSource interface {
	FetchBulletin(ctx context.Context) (avalanche.Bulletin, error)
}

// BulletinCoordinatorConfig holds the dependencies of a bulletin
// coordinator.
type BulletinCoordinatorConfig struct {
	// Massif is the catalog entry this coordinator polls.
	Massif location.Massif

	// Source is the bulletin upstream (required).
	Source BulletinSource

	// Retry is the per-call retry policy. Zero value uses defaults.
	Retry resilience.RetryConfig

	// Logger for cycle logging.
	Logger zerolog.Logger

	// Metrics records cycle outcomes; nil disables recording.
	Metrics *Metrics
}

// BulletinCoordinator owns the avalanche bulletin for one massif. Each
// massif gets its own coordinator so one massif's failure or
// out-of-season state never affects another massif or the weather
// snapshot.
type BulletinCoordinator struct {
	massif  location.Massif
	source  BulletinSource
	retry   resilience.RetryConfig
	logger  zerolog.Logger
	metrics *Metrics

	mu          sync.RWMutex
	bulletin    *avalanche.Bulletin
	lastSuccess time.Time
	lastErr     error
}

// NewBulletinCoordinator creates a bulletin coordinator.
func NewBulletinCoordinator(cfg BulletinCoordinatorConfig) *BulletinCoordinator {
	return &BulletinCoordinator{
		massif:  cfg.Massif,
		source:  cfg.Source,
		retry:   cfg.Retry,
		logger: cfg.Logger.With().
			Str("coordinator", "bulletin").
			Int("massif_id", cfg.Massif.ID).
			Str("massif", cfg.Massif.Name).
			Logger(),
		metrics: cfg.Metrics,
	}
}

// Massif returns the catalog entry this coordinator polls.
func (c *BulletinCoordinator) Massif() location.Massif {
	return c.massif
}

// Refresh runs one bulletin poll cycle. A bulletin with HasData=false is
// a successful cycle: "no bulletin this season" is domain data, not a
// failure.
func (c *BulletinCoordinator) Refresh(ctx context.Context) error {
	start := time.Now()

	bulletin, err := resilience.Retry(ctx, c.retry, c.source.FetchBulletin)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()

		c.metrics.RecordPoll(ctx, "avalanche", false, time.Since(start))
		c.logger.Error().Err(err).Msg("bulletin poll cycle failed")
		return err
	}

	c.mu.Lock()
	c.bulletin = &bulletin
	c.lastSuccess = time.Now()
	c.lastErr = nil
	c.mu.Unlock()

	c.metrics.RecordPoll(ctx, "avalanche", true, time.Since(start))

	event := c.logger.Info().Bool("has_data", bulletin.HasData)
	if bulletin.HasData {
		event = event.
			Str("bulletin_date", bulletin.BulletinDate).
			Interface("risk_today", bulletin.RiskToday).
			Interface("risk_tomorrow", bulletin.RiskTomorrow)
	}
	event.Msg("bulletin updated")

	return nil
}

// Bulletin returns the latest bulletin and whether one has been fetched.
func (c *BulletinCoordinator) Bulletin() (*avalanche.Bulletin, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bulletin, c.bulletin != nil
}

// LastSuccess returns the time of the last successful cycle.
func (c *BulletinCoordinator) LastSuccess() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastSuccess
}

// LastError returns the error of the most recent cycle, or nil.
func (c *BulletinCoordinator) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}
