// Package weather defines the weather-side domain model: current
// conditions, daily/hourly forecast sequences, the condition vocabulary
// and the reducers that derive wind extremes from hourly data.
//
// Optional upstream values are pointers: nil means the upstream omitted
// or nulled the field, which is distinct from a measured zero.
package weather

import "time"

// CurrentConditions is a point-in-time observation for the monitored
// location.
type CurrentConditions struct {
	Time      time.Time
	Condition Condition

	Temperature   *float64 // °C
	Humidity      *float64 // %
	Pressure      *float64 // hPa (mean sea level)
	WindSpeed     *float64 // km/h
	WindDirection *float64 // degrees
	WindGust      *float64 // km/h
	CloudCover    *float64 // %

	Precipitation *float64 // mm, preceding hour
	Rain          *float64 // mm
	Showers       *float64 // mm
	Snowfall      *float64 // cm

	IsDay bool
}

// DailyForecast is one day of the 8-day forecast.
type DailyForecast struct {
	Date      time.Time
	Condition Condition

	TempMax *float64 // °C
	TempMin *float64 // °C

	PrecipitationSum   *float64 // mm
	RainSum            *float64 // mm
	ShowersSum         *float64 // mm
	SnowfallSum        *float64 // cm
	PrecipitationHours *float64

	WindSpeedMax          *float64 // km/h
	WindGustMax           *float64 // km/h
	WindDirectionDominant *float64 // degrees

	Sunrise *time.Time
	Sunset  *time.Time

	SunshineDuration *float64 // seconds
	DaylightDuration *float64 // seconds
	UVIndexMax       *float64
}

// HourlyForecast is one hour of the 48-hour forecast.
type HourlyForecast struct {
	Time      time.Time
	Condition Condition

	Temperature   *float64 // °C
	Precipitation *float64 // mm
	WindSpeed     *float64 // km/h
	WindGust      *float64 // km/h
	WindDirection *float64 // degrees
	CloudCover    *float64 // %
}

// Hour6Detail is one entry of the short-horizon 6-hour detail sequence.
type Hour6Detail struct {
	// Hour counts from 1 for the first future hour.
	Hour int
	Time time.Time

	Temperature   *float64 // °C
	WindSpeed     *float64 // km/h
	WindGust      *float64 // km/h
	CloudCover    *float64 // %
	Snowfall      *float64 // cm
	Rain          *float64 // mm
	Precipitation *float64 // mm
}

// Float returns a pointer to v. Convenience for building forecasts in
// tests and mappers.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
