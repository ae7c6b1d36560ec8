package openmeteo_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/airquality/openmeteo"
	"github.com/serac-weather/serac/internal/location"
	"github.com/serac-weather/serac/internal/provider"
)

const airQualityPayload = `{
  "timezone": "UTC",
  "utc_offset_seconds": 0,
  "current": {
    "time": "2026-03-01T11:00",
    "european_aqi": 38,
    "pm2_5": 7.2,
    "pm10": 14.5,
    "nitrogen_dioxide": 10.1,
    "ozone": 80.0,
    "sulphur_dioxide": null
  },
  "hourly": {
    "time": ["2026-03-01T10:00", "2026-03-01T16:00", "2026-03-02T10:00"],
    "european_aqi": [30, 45, 25],
    "pm2_5": [6.0, null, 4.0],
    "pm10": [12.0, 18.0, 9.0]
  }
}`

func TestFetchAirQuality(t *testing.T) {
	var query url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(airQualityPayload))
	}))
	t.Cleanup(server.Close)

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		Location: location.Location{Name: "Chamonix", Latitude: 45.9237, Longitude: 6.8694},
		BaseURL:  server.URL,
	})

	snapshot, err := client.FetchAirQuality(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "5", query.Get("forecast_days"))
	assert.Equal(t, "auto", query.Get("timezone"))

	assert.False(t, snapshot.Empty())
	require.NotNil(t, snapshot.Current.EuropeanAQI)
	assert.Equal(t, 38.0, *snapshot.Current.EuropeanAQI)
	assert.Nil(t, snapshot.Current.SulphurDioxide)

	require.Len(t, snapshot.Daily, 2)
	assert.Equal(t, "2026-03-01", snapshot.Daily[0].Date)
	assert.Equal(t, 45.0, *snapshot.Daily[0].AQIMax)
	assert.Equal(t, 6.0, *snapshot.Daily[0].PM25Max)
	assert.Equal(t, 18.0, *snapshot.Daily[0].PM10Max)
	assert.Equal(t, "2026-03-02", snapshot.Daily[1].Date)
	assert.Equal(t, 25.0, *snapshot.Daily[1].AQIMax)
}

func TestFetchAirQuality_MalformedBodyIsParseError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("oops"))
	}))
	t.Cleanup(server.Close)

	client := openmeteo.NewClient(openmeteo.ClientConfig{
		Location: location.Location{Latitude: 45.9, Longitude: 6.9},
		BaseURL:  server.URL,
	})

	_, err := client.FetchAirQuality(context.Background())
	require.Error(t, err)

	kind, ok := provider.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, provider.KindParse, kind)
}
