package airquality_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serac-weather/serac/internal/airquality"
	"github.com/serac-weather/serac/internal/weather"
)

func TestAggregateDailyMax(t *testing.T) {
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	times := []time.Time{
		day1.Add(6 * time.Hour),
		day1.Add(12 * time.Hour),
		day1.Add(18 * time.Hour),
		day1.Add(30 * time.Hour), // next day
		day1.Add(36 * time.Hour),
	}
	aqi := []*float64{weather.Float(20), weather.Float(45), weather.Float(30), weather.Float(60), weather.Float(55)}
	pm25 := []*float64{weather.Float(5), nil, weather.Float(12), weather.Float(8), nil}
	pm10 := []*float64{nil, nil, nil, nil, nil}

	daily := airquality.AggregateDailyMax(times, aqi, pm25, pm10)
	require.Len(t, daily, 2)

	assert.Equal(t, "2026-03-01", daily[0].Date)
	assert.Equal(t, 45.0, *daily[0].AQIMax)
	assert.Equal(t, 12.0, *daily[0].PM25Max)
	assert.Nil(t, daily[0].PM10Max)

	assert.Equal(t, "2026-03-02", daily[1].Date)
	assert.Equal(t, 60.0, *daily[1].AQIMax)
	assert.Equal(t, 8.0, *daily[1].PM25Max)
}

func TestAggregateDailyMax_FloorsInSampleTimezone(t *testing.T) {
	paris := time.FixedZone("CET", 3600)

	// 23:30 UTC is 00:30 the next day in Paris; the date key follows the
	// sample's own timezone.
	times := []time.Time{
		time.Date(2026, 3, 1, 23, 30, 0, 0, time.UTC).In(paris),
	}
	aqi := []*float64{weather.Float(10)}

	daily := airquality.AggregateDailyMax(times, aqi, nil, nil)
	require.Len(t, daily, 1)
	assert.Equal(t, "2026-03-02", daily[0].Date)
}

func TestAggregateDailyMax_Empty(t *testing.T) {
	assert.Empty(t, airquality.AggregateDailyMax(nil, nil, nil, nil))
}

func TestSnapshot_Empty(t *testing.T) {
	assert.True(t, airquality.Snapshot{}.Empty())
	assert.False(t, airquality.Snapshot{FetchedAt: time.Now()}.Empty())
}
