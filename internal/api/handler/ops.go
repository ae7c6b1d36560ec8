// Package handler provides HTTP handlers for the Serac API.
package handler

import (
	"net/http"
	"time"

	"github.com/serac-weather/serac/internal/api/models"
	"github.com/serac-weather/serac/internal/api/response"
	"github.com/serac-weather/serac/internal/coordinator"
	"github.com/serac-weather/serac/internal/provider/resilience"
)

// WeatherProvider exposes the weather coordinator's state to handlers.
type WeatherProvider interface {
	Snapshot() (*coordinator.Snapshot, bool)
	LastSuccess() time.Time
	LastError() error
}

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version  string
	weather  WeatherProvider
	registry *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version string, weather WeatherProvider, registry *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:  version,
		weather:  weather,
		registry: registry,
	}
}

// HealthCheck handles GET /healthz.
//
// The service is ready once the first poll cycle has produced a
// snapshot and the most recent cycle succeeded. Before the first
// snapshot, and while the latest refresh is failing, it reports 503
// so orchestrators hold traffic until a cycle goes through again.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version": h.version,
		},
	}

	if _, ok := h.weather.Snapshot(); !ok {
		health.Status = models.HealthStatusFail
		health.Details["reason"] = "no weather snapshot yet"
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}

	if err := h.weather.LastError(); err != nil {
		health.Status = models.HealthStatusDegraded
		health.Details["lastError"] = err.Error()
		response.JSON(w, r, http.StatusServiceUnavailable, health)
		return
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ListSources handles GET /v1/sources - upstream source health.
func (h *OpsHandler) ListSources(w http.ResponseWriter, r *http.Request) {
	health := h.registry.Health()

	sources := make([]models.SourceStatus, 0, len(health))
	for _, s := range health {
		status := models.HealthStatusOK
		if !s.Healthy() {
			status = models.HealthStatusDegraded
		}
		sources = append(sources, models.SourceStatus{
			Name:          s.Name,
			Status:        status,
			CircuitState:  s.CircuitState.String(),
			LastSuccessAt: timestampPtr(s.LastSuccessAt),
			LastFailureAt: timestampPtr(s.LastFailureAt),
			LastError:     s.LastError,
		})
	}

	response.JSON(w, r, http.StatusOK, models.SourcesResponse{Sources: sources})
}

func timestampPtr(t *time.Time) *models.Timestamp {
	if t == nil {
		return nil
	}
	ts := models.Timestamp(*t)
	return &ts
}
