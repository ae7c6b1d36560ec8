package weather

// Condition is the closed set of semantic weather conditions exposed to
// consumers.
type Condition string

const (
	ConditionSunny          Condition = "sunny"
	ConditionPartlyCloudy   Condition = "partly-cloudy"
	ConditionCloudy         Condition = "cloudy"
	ConditionFog            Condition = "fog"
	ConditionRainy          Condition = "rainy"
	ConditionPouring        Condition = "pouring"
	ConditionSnowy          Condition = "snowy"
	ConditionLightningRainy Condition = "lightning-rainy"
	ConditionUnknown        Condition = "unknown"
)

// ConditionFromWMOCode maps a WMO weather interpretation code to a
// Condition. Total over all inputs: nil maps to unknown, every
// documented code maps to exactly one condition, and unrecognized codes
// fall back to partly-cloudy.
func ConditionFromWMOCode(code *int) Condition {
	if code == nil {
		return ConditionUnknown
	}

	switch *code {
	case 0:
		return ConditionSunny
	case 1, 2:
		return ConditionPartlyCloudy
	case 3:
		return ConditionCloudy
	case 45, 48:
		return ConditionFog
	case 51, 53, 55, 56, 57:
		return ConditionRainy
	case 61, 63, 65, 66, 67, 80, 81, 82:
		return ConditionPouring
	case 71, 73, 75, 77, 85, 86:
		return ConditionSnowy
	case 95, 96, 99:
		return ConditionLightningRainy
	default:
		return ConditionPartlyCloudy
	}
}

// ConditionFromCloudCover derives a condition from cloud cover percent.
// The upstream current-conditions group carries no weather code, so
// cloud cover is the best available signal. nil maps to unknown.
func ConditionFromCloudCover(cloudCover *float64) Condition {
	if cloudCover == nil {
		return ConditionUnknown
	}

	switch {
	case *cloudCover < 20:
		return ConditionSunny
	case *cloudCover < 50:
		return ConditionPartlyCloudy
	default:
		return ConditionCloudy
	}
}
