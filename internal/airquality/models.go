// Package airquality defines the air-quality domain model: current
// pollutant concentrations and per-day maxima derived from the hourly
// forecast.
package airquality

import "time"

// Current holds the latest pollutant concentrations for the monitored
// location. Concentrations are µg/m³; the European AQI is unitless.
type Current struct {
	Time time.Time

	EuropeanAQI     *float64
	PM25            *float64
	PM10            *float64
	NitrogenDioxide *float64
	Ozone           *float64
	SulphurDioxide  *float64
}

// DailyMax is the per-day maximum of selected pollutant series, keyed by
// calendar date in the source timezone (YYYY-MM-DD).
type DailyMax struct {
	Date    string
	AQIMax  *float64
	PM25Max *float64
	PM10Max *float64
}

// Snapshot is the air-quality fragment of a poll cycle: current values
// plus five days of per-day maxima. The zero value is the explicit
// "no data" fragment used when the air-quality source is degraded.
type Snapshot struct {
	Current   Current
	Daily     []DailyMax
	FetchedAt time.Time
}

// Empty reports whether the snapshot carries no data.
func (s Snapshot) Empty() bool {
	return s.FetchedAt.IsZero()
}

// AggregateDailyMax floors each hourly timestamp to its calendar date in
// the timestamp's own timezone and reduces each pollutant series with
// max, skipping missing samples. The result is sorted by ascending date.
func AggregateDailyMax(times []time.Time, aqi, pm25, pm10 []*float64) []DailyMax {
	byDate := make(map[string]*DailyMax)
	order := make([]string, 0)

	for i, t := range times {
		key := t.Format("2006-01-02")
		day, ok := byDate[key]
		if !ok {
			day = &DailyMax{Date: key}
			byDate[key] = day
			order = append(order, key)
		}

		day.AQIMax = maxSample(day.AQIMax, sampleAt(aqi, i))
		day.PM25Max = maxSample(day.PM25Max, sampleAt(pm25, i))
		day.PM10Max = maxSample(day.PM10Max, sampleAt(pm10, i))
	}

	// Hourly series arrive in ascending time order, so insertion order
	// is already date order.
	out := make([]DailyMax, 0, len(order))
	for _, key := range order {
		out = append(out, *byDate[key])
	}
	return out
}

func sampleAt(values []*float64, i int) *float64 {
	if i >= len(values) {
		return nil
	}
	return values[i]
}

func maxSample(current, candidate *float64) *float64 {
	if candidate == nil {
		return current
	}
	if current == nil || *candidate > *current {
		return candidate
	}
	return current
}
