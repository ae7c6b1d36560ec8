package models

import "github.com/serac-weather/serac/internal/airquality"

// AirQualityResponse is the air-quality fragment for the monitored
// location.
type AirQualityResponse struct {
	Current   AirQualityCurrent `json:"current"`
	Daily     []AirQualityDay   `json:"daily"`
	FetchedAt Timestamp         `json:"fetchedAt"`
}

// AirQualityCurrent holds the latest pollutant concentrations.
type AirQualityCurrent struct {
	Time Timestamp `json:"time"`

	EuropeanAQI     *float64 `json:"europeanAqi,omitempty"`
	PM25            *float64 `json:"pm25,omitempty"`
	PM10            *float64 `json:"pm10,omitempty"`
	NitrogenDioxide *float64 `json:"nitrogenDioxide,omitempty"`
	Ozone           *float64 `json:"ozone,omitempty"`
	SulphurDioxide  *float64 `json:"sulphurDioxide,omitempty"`
}

// AirQualityDay is one day of pollutant maxima.
type AirQualityDay struct {
	Date    string   `json:"date"`
	AQIMax  *float64 `json:"aqiMax,omitempty"`
	PM25Max *float64 `json:"pm25Max,omitempty"`
	PM10Max *float64 `json:"pm10Max,omitempty"`
}

// AirQualityFromSnapshot maps the domain snapshot to the response model.
func AirQualityFromSnapshot(s airquality.Snapshot) AirQualityResponse {
	daily := make([]AirQualityDay, 0, len(s.Daily))
	for _, d := range s.Daily {
		daily = append(daily, AirQualityDay{
			Date:    d.Date,
			AQIMax:  d.AQIMax,
			PM25Max: d.PM25Max,
			PM10Max: d.PM10Max,
		})
	}

	return AirQualityResponse{
		Current: AirQualityCurrent{
			Time:            Timestamp(s.Current.Time),
			EuropeanAQI:     s.Current.EuropeanAQI,
			PM25:            s.Current.PM25,
			PM10:            s.Current.PM10,
			NitrogenDioxide: s.Current.NitrogenDioxide,
			Ozone:           s.Current.Ozone,
			SulphurDioxide:  s.Current.SulphurDioxide,
		},
		Daily:     daily,
		FetchedAt: Timestamp(s.FetchedAt),
	}
}
