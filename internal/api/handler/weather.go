package handler

import (
	"net/http"

	"github.com/serac-weather/serac/internal/api/models"
	"github.com/serac-weather/serac/internal/api/response"
)

// WeatherHandler handles weather snapshot endpoints.
type WeatherHandler struct {
	weather WeatherProvider
}

// NewWeatherHandler creates a new WeatherHandler.
func NewWeatherHandler(weather WeatherProvider) *WeatherHandler {
	return &WeatherHandler{weather: weather}
}

// GetWeather handles GET /v1/weather - the latest merged snapshot.
func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.weather.Snapshot()
	if !ok {
		response.ServiceUnavailable(w, r, "no weather snapshot available yet")
		return
	}
	response.JSON(w, r, http.StatusOK, models.WeatherFromSnapshot(snapshot))
}

// GetAirQuality handles GET /v1/airquality - the air-quality fragment.
func (h *WeatherHandler) GetAirQuality(w http.ResponseWriter, r *http.Request) {
	snapshot, ok := h.weather.Snapshot()
	if !ok {
		response.ServiceUnavailable(w, r, "no weather snapshot available yet")
		return
	}
	if snapshot.AirQuality.Empty() {
		response.NotFound(w, r, "air quality data is not available")
		return
	}
	response.JSON(w, r, http.StatusOK, models.AirQualityFromSnapshot(snapshot.AirQuality))
}
