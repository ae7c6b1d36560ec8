package weather

import "time"

// WindExtremes holds the maximum wind speed and gust over some set of
// hourly samples. Zero values mean no sample fell in the window.
type WindExtremes struct {
	MaxWindSpeed float64 // km/h
	MaxWindGust  float64 // km/h
}

// TodayMaxWind reduces an hourly sequence to the maximum wind speed and
// gust among samples falling on the current calendar date. Dates are
// compared in the forecast's reported timezone (carried by each sample's
// timestamp), and missing values count as zero, so the result is always
// defined.
func TodayMaxWind(hours []HourlyForecast, now time.Time) WindExtremes {
	return maxWindOnDay(hours, now, 0)
}

// WindOutlook reduces an hourly sequence to wind extremes for tomorrow
// and the day after, relative to now.
func WindOutlook(hours []HourlyForecast, now time.Time) (tomorrow, dayAfter WindExtremes) {
	return maxWindOnDay(hours, now, 1), maxWindOnDay(hours, now, 2)
}

func maxWindOnDay(hours []HourlyForecast, now time.Time, dayOffset int) WindExtremes {
	var ex WindExtremes
	for _, h := range hours {
		ref := now.In(h.Time.Location()).AddDate(0, 0, dayOffset)
		if !sameDate(h.Time, ref) {
			continue
		}
		if v := deref(h.WindSpeed); v > ex.MaxWindSpeed {
			ex.MaxWindSpeed = v
		}
		if v := deref(h.WindGust); v > ex.MaxWindGust {
			ex.MaxWindGust = v
		}
	}
	return ex
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
