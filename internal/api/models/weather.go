package models

import (
	"time"

	"github.com/serac-weather/serac/internal/coordinator"
	"github.com/serac-weather/serac/internal/weather"
)

// WeatherResponse is the full weather snapshot for the monitored
// location.
type WeatherResponse struct {
	Location  LocationInfo `json:"location"`
	Elevation float64      `json:"elevation"`

	Current CurrentConditions `json:"current"`
	Daily   []DailyForecast   `json:"daily"`
	Hourly  []HourlyForecast  `json:"hourly"`
	Next6h  []Hour6Detail     `json:"next6h"`

	Wind WindSummary `json:"wind"`

	UpdatedAt Timestamp `json:"updatedAt"`
}

// LocationInfo identifies the monitored point.
type LocationInfo struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// CurrentConditions is the point-in-time observation.
type CurrentConditions struct {
	Time      Timestamp `json:"time"`
	Condition string    `json:"condition"`

	Temperature   *float64 `json:"temperature,omitempty"`
	Humidity      *float64 `json:"humidity,omitempty"`
	Pressure      *float64 `json:"pressure,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	WindDirection *float64 `json:"windDirection,omitempty"`
	WindGust      *float64 `json:"windGust,omitempty"`
	CloudCover    *float64 `json:"cloudCover,omitempty"`

	Precipitation *float64 `json:"precipitation,omitempty"`
	Rain          *float64 `json:"rain,omitempty"`
	Showers       *float64 `json:"showers,omitempty"`
	Snowfall      *float64 `json:"snowfall,omitempty"`

	IsDay bool `json:"isDay"`
}

// DailyForecast is one day of the daily forecast.
type DailyForecast struct {
	Date      string `json:"date"`
	Condition string `json:"condition"`

	TempMax *float64 `json:"tempMax,omitempty"`
	TempMin *float64 `json:"tempMin,omitempty"`

	PrecipitationSum   *float64 `json:"precipitationSum,omitempty"`
	RainSum            *float64 `json:"rainSum,omitempty"`
	ShowersSum         *float64 `json:"showersSum,omitempty"`
	SnowfallSum        *float64 `json:"snowfallSum,omitempty"`
	PrecipitationHours *float64 `json:"precipitationHours,omitempty"`

	WindSpeedMax          *float64 `json:"windSpeedMax,omitempty"`
	WindGustMax           *float64 `json:"windGustMax,omitempty"`
	WindDirectionDominant *float64 `json:"windDirectionDominant,omitempty"`

	Sunrise *Timestamp `json:"sunrise,omitempty"`
	Sunset  *Timestamp `json:"sunset,omitempty"`

	SunshineDuration *float64 `json:"sunshineDuration,omitempty"`
	DaylightDuration *float64 `json:"daylightDuration,omitempty"`
	UVIndexMax       *float64 `json:"uvIndexMax,omitempty"`
}

// HourlyForecast is one hour of the hourly forecast.
type HourlyForecast struct {
	Time      Timestamp `json:"time"`
	Condition string    `json:"condition"`

	Temperature   *float64 `json:"temperature,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	WindGust      *float64 `json:"windGust,omitempty"`
	WindDirection *float64 `json:"windDirection,omitempty"`
	CloudCover    *float64 `json:"cloudCover,omitempty"`
}

// Hour6Detail is one entry of the next-6-hours detail.
type Hour6Detail struct {
	Hour int       `json:"hour"`
	Time Timestamp `json:"time"`

	Temperature   *float64 `json:"temperature,omitempty"`
	WindSpeed     *float64 `json:"windSpeed,omitempty"`
	WindGust      *float64 `json:"windGust,omitempty"`
	CloudCover    *float64 `json:"cloudCover,omitempty"`
	Snowfall      *float64 `json:"snowfall,omitempty"`
	Rain          *float64 `json:"rain,omitempty"`
	Precipitation *float64 `json:"precipitation,omitempty"`
}

// WindSummary carries the wind extremes derived from the hourly series.
type WindSummary struct {
	Today    WindExtremes `json:"today"`
	Tomorrow WindExtremes `json:"tomorrow"`
	DayAfter WindExtremes `json:"dayAfterTomorrow"`
}

// WindExtremes is a daily wind maximum pair.
type WindExtremes struct {
	MaxWindSpeed float64 `json:"maxWindSpeed"`
	MaxWindGust  float64 `json:"maxWindGust"`
}

// WeatherFromSnapshot maps a coordinator snapshot to the response model.
func WeatherFromSnapshot(s *coordinator.Snapshot) WeatherResponse {
	daily := make([]DailyForecast, 0, len(s.Daily))
	for _, d := range s.Daily {
		daily = append(daily, DailyForecast{
			Date:                  d.Date.Format("2006-01-02"),
			Condition:             string(d.Condition),
			TempMax:               d.TempMax,
			TempMin:               d.TempMin,
			PrecipitationSum:      d.PrecipitationSum,
			RainSum:               d.RainSum,
			ShowersSum:            d.ShowersSum,
			SnowfallSum:           d.SnowfallSum,
			PrecipitationHours:    d.PrecipitationHours,
			WindSpeedMax:          d.WindSpeedMax,
			WindGustMax:           d.WindGustMax,
			WindDirectionDominant: d.WindDirectionDominant,
			Sunrise:               timestampPtr(d.Sunrise),
			Sunset:                timestampPtr(d.Sunset),
			SunshineDuration:      d.SunshineDuration,
			DaylightDuration:      d.DaylightDuration,
			UVIndexMax:            d.UVIndexMax,
		})
	}

	hourly := make([]HourlyForecast, 0, len(s.Hourly))
	for _, h := range s.Hourly {
		hourly = append(hourly, HourlyForecast{
			Time:          Timestamp(h.Time),
			Condition:     string(h.Condition),
			Temperature:   h.Temperature,
			Precipitation: h.Precipitation,
			WindSpeed:     h.WindSpeed,
			WindGust:      h.WindGust,
			WindDirection: h.WindDirection,
			CloudCover:    h.CloudCover,
		})
	}

	next6h := make([]Hour6Detail, 0, len(s.Next6h))
	for _, h := range s.Next6h {
		next6h = append(next6h, Hour6Detail{
			Hour:          h.Hour,
			Time:          Timestamp(h.Time),
			Temperature:   h.Temperature,
			WindSpeed:     h.WindSpeed,
			WindGust:      h.WindGust,
			CloudCover:    h.CloudCover,
			Snowfall:      h.Snowfall,
			Rain:          h.Rain,
			Precipitation: h.Precipitation,
		})
	}

	today := s.TodayMaxWind()
	tomorrow, dayAfter := s.WindOutlook()

	return WeatherResponse{
		Location: LocationInfo{
			Name:      s.Location.Name,
			Latitude:  s.Location.Latitude,
			Longitude: s.Location.Longitude,
		},
		Elevation: s.Elevation,
		Current: CurrentConditions{
			Time:          Timestamp(s.Current.Time),
			Condition:     string(s.Current.Condition),
			Temperature:   s.Current.Temperature,
			Humidity:      s.Current.Humidity,
			Pressure:      s.Current.Pressure,
			WindSpeed:     s.Current.WindSpeed,
			WindDirection: s.Current.WindDirection,
			WindGust:      s.Current.WindGust,
			CloudCover:    s.Current.CloudCover,
			Precipitation: s.Current.Precipitation,
			Rain:          s.Current.Rain,
			Showers:       s.Current.Showers,
			Snowfall:      s.Current.Snowfall,
			IsDay:         s.Current.IsDay,
		},
		Daily:  daily,
		Hourly: hourly,
		Next6h: next6h,
		Wind: WindSummary{
			Today:    windExtremes(today),
			Tomorrow: windExtremes(tomorrow),
			DayAfter: windExtremes(dayAfter),
		},
		UpdatedAt: Timestamp(s.UpdatedAt),
	}
}

func windExtremes(w weather.WindExtremes) WindExtremes {
	return WindExtremes{MaxWindSpeed: w.MaxWindSpeed, MaxWindGust: w.MaxWindGust}
}

func timestampPtr(t *time.Time) *Timestamp {
	if t == nil {
		return nil
	}
	ts := Timestamp(*t)
	return &ts
}
