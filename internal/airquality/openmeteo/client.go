// Package openmeteo provides the Open-Meteo air-quality client.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/serac-weather/serac/internal/airquality"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider"
	"github.com/serac-weather/serac/internal/provider/resilience"
)

const (
	// SourceName identifies this upstream in errors and logs.
	SourceName = "openmeteo-air-quality"

	// DefaultBaseURL is the Open-Meteo air-quality endpoint.
	DefaultBaseURL = "https://air-quality-api.open-meteo.com/v1/air-quality"

	// forecastDays is the hourly horizon reduced to daily maxima (API limit).
	forecastDays = 5
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the air-quality client.
type ClientConfig struct {
	// Location is the monitored point (required).
	Location location.Location

	// BaseURL overrides the endpoint (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient executes requests. If nil, a resilient client with a
	// 30-second timeout is created.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an Open-Meteo air-quality API client for one location.
type Client struct {
	loc        location.Location
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates an air-quality client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: SourceName})
	}

	return &Client{
		loc:        cfg.Location,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

type airQualityResponse struct {
	Timezone      string `json:"timezone"`
	UTCOffsetSecs int    `json:"utc_offset_seconds"`

	Current struct {
		Time            string   `json:"time"`
		EuropeanAQI     *float64 `json:"european_aqi"`
		PM25            *float64 `json:"pm2_5"`
		PM10            *float64 `json:"pm10"`
		NitrogenDioxide *float64 `json:"nitrogen_dioxide"`
		Ozone           *float64 `json:"ozone"`
		SulphurDioxide  *float64 `json:"sulphur_dioxide"`
	} `json:"current"`

	Hourly struct {
		Time        []string   `json:"time"`
		EuropeanAQI []*float64 `json:"european_aqi"`
		PM25        []*float64 `json:"pm2_5"`
		PM10        []*float64 `json:"pm10"`
	} `json:"hourly"`
}

// FetchAirQuality fetches current pollutant concentrations plus five
// days of hourly series reduced to per-day maxima.
func (c *Client) FetchAirQuality(ctx context.Context) (airquality.Snapshot, error) {
	params := url.Values{
		"latitude":      {fmt.Sprintf("%.6f", c.loc.Latitude)},
		"longitude":     {fmt.Sprintf("%.6f", c.loc.Longitude)},
		"current":       {"european_aqi,pm2_5,pm10,nitrogen_dioxide,ozone,sulphur_dioxide"},
		"hourly":        {"european_aqi,pm2_5,pm10"},
		"timezone":      {"auto"},
		"forecast_days": {fmt.Sprintf("%d", forecastDays)},
	}

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return airquality.Snapshot{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return airquality.Snapshot{}, err
	}
	defer resp.Body.Close()

	var payload airQualityResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return airquality.Snapshot{}, provider.NewParseError(SourceName, fmt.Errorf("decode air-quality response: %w", err))
	}

	loc := c.timezone(&payload)

	measuredAt, _ := time.ParseInLocation("2006-01-02T15:04", payload.Current.Time, loc)

	times := make([]time.Time, 0, len(payload.Hourly.Time))
	for _, ts := range payload.Hourly.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", ts, loc)
		if err != nil {
			return airquality.Snapshot{}, provider.NewParseError(SourceName, fmt.Errorf("hourly time %q: %w", ts, err))
		}
		times = append(times, t)
	}

	return airquality.Snapshot{
		Current: airquality.Current{
			Time:            measuredAt,
			EuropeanAQI:     payload.Current.EuropeanAQI,
			PM25:            payload.Current.PM25,
			PM10:            payload.Current.PM10,
			NitrogenDioxide: payload.Current.NitrogenDioxide,
			Ozone:           payload.Current.Ozone,
			SulphurDioxide:  payload.Current.SulphurDioxide,
		},
		Daily:     airquality.AggregateDailyMax(times, payload.Hourly.EuropeanAQI, payload.Hourly.PM25, payload.Hourly.PM10),
		FetchedAt: time.Now(),
	}, nil
}

func (c *Client) timezone(r *airQualityResponse) *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone("offset", r.UTCOffsetSecs)
}
