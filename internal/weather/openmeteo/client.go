// Package openmeteo provides the Open-Meteo forecast client. Open-Meteo
// serves the Météo-France AROME/ARPEGE models for France, which is what
// makes it usable for mountain locations in the Alps and Pyrenees.
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

	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider"
	"github.com/serac-weather/serac/internal/provider/resilience"
	"github.com/serac-weather/serac/internal/weather"
)

const (
	// SourceName identifies this upstream in errors and logs.
	SourceName = "openmeteo"

	// DefaultBaseURL is the Open-Meteo forecast endpoint.
	DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

	// maxHourlyEntries caps the hourly forecast horizon.
	maxHourlyEntries = 48

	// hour6Entries is the length of the short-horizon detail sequence.
	hour6Entries = 6
)

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the Open-Meteo client.
type ClientConfig struct {
	// Location is the monitored point (required).
	Location location.Location

	// BaseURL overrides the forecast endpoint (defaults to DefaultBaseURL).
	BaseURL string

	// HTTPClient executes requests. If nil, a resilient client with a
	// 30-second timeout is created.
	HTTPClient HTTPDoer

	// Logger for client operations.
	Logger zerolog.Logger

	// Now is the clock used to filter past hours. Defaults to time.Now;
	// overridable in tests.
	Now func() time.Time
}

// Client is an Open-Meteo forecast API client for one location.
type Client struct {
	loc        location.Location
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
	now        func() time.Time
}

// NewClient creates an Open-Meteo client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = resilience.NewClient(resilience.ClientConfig{Name: SourceName})
	}

	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	return &Client{
		loc:        cfg.Location,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		logger:     cfg.Logger,
		now:        now,
	}
}

// Open-Meteo response payload. Forecast groups are parallel arrays
// indexed by position against the shared time array; individual entries
// may be null.

type forecastResponse struct {
	Elevation      float64        `json:"elevation"`
	Timezone       string         `json:"timezone"`
	UTCOffsetSecs  int            `json:"utc_offset_seconds"`
	Current        currentPayload `json:"current"`
	Daily          dailyPayload   `json:"daily"`
	Hourly         hourlyPayload  `json:"hourly"`
}

type currentPayload struct {
	Time          string   `json:"time"`
	Temperature   *float64 `json:"temperature_2m"`
	Humidity      *float64 `json:"relative_humidity_2m"`
	Pressure      *float64 `json:"pressure_msl"`
	WindSpeed     *float64 `json:"wind_speed_10m"`
	WindDirection *float64 `json:"wind_direction_10m"`
	WindGust      *float64 `json:"wind_gusts_10m"`
	CloudCover    *float64 `json:"cloud_cover"`
	IsDay         *int     `json:"is_day"`
	Precipitation *float64 `json:"precipitation"`
	Rain          *float64 `json:"rain"`
	Showers       *float64 `json:"showers"`
	Snowfall      *float64 `json:"snowfall"`
}

type dailyPayload struct {
	Time               []string   `json:"time"`
	TempMax            []*float64 `json:"temperature_2m_max"`
	TempMin            []*float64 `json:"temperature_2m_min"`
	PrecipitationSum   []*float64 `json:"precipitation_sum"`
	WeatherCode        []*int     `json:"weather_code"`
	WindSpeedMax       []*float64 `json:"wind_speed_10m_max"`
	WindGustMax        []*float64 `json:"wind_gusts_10m_max"`
	WindDirection      []*float64 `json:"wind_direction_10m_dominant"`
	Sunrise            []*string  `json:"sunrise"`
	Sunset             []*string  `json:"sunset"`
	SunshineDuration   []*float64 `json:"sunshine_duration"`
	DaylightDuration   []*float64 `json:"daylight_duration"`
	UVIndexMax         []*float64 `json:"uv_index_max"`
	RainSum            []*float64 `json:"rain_sum"`
	ShowersSum         []*float64 `json:"showers_sum"`
	SnowfallSum        []*float64 `json:"snowfall_sum"`
	PrecipitationHours []*float64 `json:"precipitation_hours"`
}

type hourlyPayload struct {
	Time          []string   `json:"time"`
	Temperature   []*float64 `json:"temperature_2m"`
	Precipitation []*float64 `json:"precipitation"`
	WeatherCode   []*int     `json:"weather_code"`
	CloudCover    []*float64 `json:"cloud_cover"`
	WindSpeed     []*float64 `json:"wind_speed_10m"`
	WindGust      []*float64 `json:"wind_gusts_10m"`
	WindDirection []*float64 `json:"wind_direction_10m"`
	Snowfall      []*float64 `json:"snowfall"`
	Rain          []*float64 `json:"rain"`
}

// FetchCurrent fetches current conditions.
func (c *Client) FetchCurrent(ctx context.Context) (weather.CurrentConditions, error) {
	params := url.Values{
		"current": {"temperature_2m,relative_humidity_2m,pressure_msl," +
			"wind_speed_10m,wind_direction_10m,wind_gusts_10m,cloud_cover," +
			"is_day,precipitation,rain,showers,snowfall"},
	}

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	loc := resp.timezone()
	cur := resp.Current

	observedAt, _ := parseLocalTime(cur.Time, loc)

	return weather.CurrentConditions{
		Time:          observedAt,
		Condition:     weather.ConditionFromCloudCover(cur.CloudCover),
		Temperature:   cur.Temperature,
		Humidity:      cur.Humidity,
		Pressure:      cur.Pressure,
		WindSpeed:     cur.WindSpeed,
		WindDirection: cur.WindDirection,
		WindGust:      cur.WindGust,
		CloudCover:    cur.CloudCover,
		Precipitation: cur.Precipitation,
		Rain:          cur.Rain,
		Showers:       cur.Showers,
		Snowfall:      cur.Snowfall,
		IsDay:         cur.IsDay == nil || *cur.IsDay == 1,
	}, nil
}

// FetchDaily fetches the 8-day daily forecast (today plus 7 days),
// ordered by ascending date.
func (c *Client) FetchDaily(ctx context.Context) ([]weather.DailyForecast, error) {
	params := url.Values{
		"daily": {"temperature_2m_max,temperature_2m_min,precipitation_sum," +
			"weather_code,wind_speed_10m_max,wind_gusts_10m_max,wind_direction_10m_dominant," +
			"sunrise,sunset,sunshine_duration,daylight_duration,uv_index_max," +
			"rain_sum,showers_sum,snowfall_sum,precipitation_hours"},
		"forecast_days": {"8"},
	}

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	loc := resp.timezone()
	d := resp.Daily

	days := make([]weather.DailyForecast, 0, len(d.Time))
	for i, ts := range d.Time {
		date, err := time.ParseInLocation("2006-01-02", ts, loc)
		if err != nil {
			return nil, provider.NewParseError(SourceName, fmt.Errorf("daily time %q: %w", ts, err))
		}

		days = append(days, weather.DailyForecast{
			Date:                  date,
			Condition:             weather.ConditionFromWMOCode(at(d.WeatherCode, i)),
			TempMax:               at(d.TempMax, i),
			TempMin:               at(d.TempMin, i),
			PrecipitationSum:      at(d.PrecipitationSum, i),
			RainSum:               at(d.RainSum, i),
			ShowersSum:            at(d.ShowersSum, i),
			SnowfallSum:           at(d.SnowfallSum, i),
			PrecipitationHours:    at(d.PrecipitationHours, i),
			WindSpeedMax:          at(d.WindSpeedMax, i),
			WindGustMax:           at(d.WindGustMax, i),
			WindDirectionDominant: at(d.WindDirection, i),
			Sunrise:               parseOptionalTime(at(d.Sunrise, i), loc),
			Sunset:                parseOptionalTime(at(d.Sunset, i), loc),
			SunshineDuration:      at(d.SunshineDuration, i),
			DaylightDuration:      at(d.DaylightDuration, i),
			UVIndexMax:            at(d.UVIndexMax, i),
		})
	}

	return days, nil
}

// FetchHourly fetches the hourly forecast, keeping only strictly-future
// hours up to a 48-entry horizon, ordered by ascending timestamp.
func (c *Client) FetchHourly(ctx context.Context) ([]weather.HourlyForecast, error) {
	params := url.Values{
		"hourly": {"temperature_2m,precipitation,weather_code,cloud_cover," +
			"wind_speed_10m,wind_gusts_10m,wind_direction_10m"},
		// 72 hours so at least 48 remain after dropping past hours.
		"forecast_days": {"3"},
	}

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	loc := resp.timezone()
	h := resp.Hourly
	now := c.now().In(loc)

	hours := make([]weather.HourlyForecast, 0, maxHourlyEntries)
	for i, ts := range h.Time {
		t, err := parseLocalTime(ts, loc)
		if err != nil {
			return nil, provider.NewParseError(SourceName, fmt.Errorf("hourly time %q: %w", ts, err))
		}
		if !t.After(now) {
			continue
		}

		hours = append(hours, weather.HourlyForecast{
			Time:          t,
			Condition:     weather.ConditionFromWMOCode(at(h.WeatherCode, i)),
			Temperature:   at(h.Temperature, i),
			Precipitation: at(h.Precipitation, i),
			WindSpeed:     at(h.WindSpeed, i),
			WindGust:      at(h.WindGust, i),
			WindDirection: at(h.WindDirection, i),
			CloudCover:    at(h.CloudCover, i),
		})

		if len(hours) >= maxHourlyEntries {
			break
		}
	}

	return hours, nil
}

// FetchHourly6h fetches the short-horizon detail sequence: the next six
// future hours of temperature, wind and precipitation breakdown.
func (c *Client) FetchHourly6h(ctx context.Context) ([]weather.Hour6Detail, error) {
	params := url.Values{
		"hourly": {"temperature_2m,wind_speed_10m,wind_gusts_10m,cloud_cover," +
			"snowfall,rain,precipitation"},
		"forecast_days": {"1"},
	}

	resp, err := c.fetch(ctx, params)
	if err != nil {
		return nil, err
	}

	loc := resp.timezone()
	h := resp.Hourly
	now := c.now().In(loc)

	details := make([]weather.Hour6Detail, 0, hour6Entries)
	for i, ts := range h.Time {
		t, err := parseLocalTime(ts, loc)
		if err != nil {
			return nil, provider.NewParseError(SourceName, fmt.Errorf("hourly time %q: %w", ts, err))
		}
		if !t.After(now) {
			continue
		}

		details = append(details, weather.Hour6Detail{
			Hour:          len(details) + 1,
			Time:          t,
			Temperature:   at(h.Temperature, i),
			WindSpeed:     at(h.WindSpeed, i),
			WindGust:      at(h.WindGust, i),
			CloudCover:    at(h.CloudCover, i),
			Snowfall:      at(h.Snowfall, i),
			Rain:          at(h.Rain, i),
			Precipitation: at(h.Precipitation, i),
		})

		if len(details) >= hour6Entries {
			break
		}
	}

	return details, nil
}

// FetchElevation fetches the model elevation for the location.
func (c *Client) FetchElevation(ctx context.Context) (float64, error) {
	resp, err := c.fetch(ctx, url.Values{})
	if err != nil {
		return 0, err
	}
	return resp.Elevation, nil
}

// fetch performs one GET against the forecast endpoint with the shared
// location/timezone parameters plus the caller's field selection.
func (c *Client) fetch(ctx context.Context, params url.Values) (*forecastResponse, error) {
	params.Set("latitude", fmt.Sprintf("%.6f", c.loc.Latitude))
	params.Set("longitude", fmt.Sprintf("%.6f", c.loc.Longitude))
	params.Set("timezone", "auto")

	reqURL := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, provider.NewParseError(SourceName, fmt.Errorf("decode forecast response: %w", err))
	}

	return &payload, nil
}

// timezone resolves the forecast's reported timezone, falling back to
// the reported UTC offset when the zone name is not loadable.
func (r *forecastResponse) timezone() *time.Location {
	if r.Timezone != "" {
		if loc, err := time.LoadLocation(r.Timezone); err == nil {
			return loc
		}
	}
	return time.FixedZone("offset", r.UTCOffsetSecs)
}

// parseLocalTime parses Open-Meteo's local ISO timestamps, which carry
// no offset ("2006-01-02T15:04").
func parseLocalTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation("2006-01-02T15:04", s, loc)
}

func parseOptionalTime(s *string, loc *time.Location) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := parseLocalTime(*s, loc)
	if err != nil {
		return nil
	}
	return &t
}

// at returns the i-th element of a parallel array, or the zero pointer
// when the array is shorter than the time array it is indexed against.
func at[T any](values []*T, i int) *T {
	if i >= len(values) {
		return nil
	}
	return values[i]
}
