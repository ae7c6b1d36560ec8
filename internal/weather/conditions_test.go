package weather_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/serac-weather/serac/internal/weather"
)

func TestConditionFromWMOCode(t *testing.T) {
	tests := []struct {
		code *int
		want weather.Condition
	}{
		{nil, weather.ConditionUnknown},
		{weather.Int(0), weather.ConditionSunny},
		{weather.Int(1), weather.ConditionPartlyCloudy},
		{weather.Int(2), weather.ConditionPartlyCloudy},
		{weather.Int(3), weather.ConditionCloudy},
		{weather.Int(45), weather.ConditionFog},
		{weather.Int(48), weather.ConditionFog},
		{weather.Int(51), weather.ConditionRainy},
		{weather.Int(57), weather.ConditionRainy},
		{weather.Int(61), weather.ConditionPouring},
		{weather.Int(67), weather.ConditionPouring},
		{weather.Int(82), weather.ConditionPouring},
		{weather.Int(71), weather.ConditionSnowy},
		{weather.Int(77), weather.ConditionSnowy},
		{weather.Int(86), weather.ConditionSnowy},
		{weather.Int(95), weather.ConditionLightningRainy},
		{weather.Int(99), weather.ConditionLightningRainy},
		// Undocumented codes fall back rather than failing.
		{weather.Int(42), weather.ConditionPartlyCloudy},
		{weather.Int(-1), weather.ConditionPartlyCloudy},
	}

	for _, tt := range tests {
		name := "nil"
		if tt.code != nil {
			name = fmt.Sprintf("code_%d", *tt.code)
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, weather.ConditionFromWMOCode(tt.code))
		})
	}
}

func TestConditionFromCloudCover(t *testing.T) {
	assert.Equal(t, weather.ConditionUnknown, weather.ConditionFromCloudCover(nil))
	assert.Equal(t, weather.ConditionSunny, weather.ConditionFromCloudCover(weather.Float(0)))
	assert.Equal(t, weather.ConditionSunny, weather.ConditionFromCloudCover(weather.Float(19.9)))
	assert.Equal(t, weather.ConditionPartlyCloudy, weather.ConditionFromCloudCover(weather.Float(20)))
	assert.Equal(t, weather.ConditionPartlyCloudy, weather.ConditionFromCloudCover(weather.Float(49.9)))
	assert.Equal(t, weather.ConditionCloudy, weather.ConditionFromCloudCover(weather.Float(50)))
	assert.Equal(t, weather.ConditionCloudy, weather.ConditionFromCloudCover(weather.Float(100)))
}
