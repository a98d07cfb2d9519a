package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDayNightHoursEquator(t *testing.T) {
	// The equator sits near 12/12 all year round.
	for _, day := range []int{15, 105, 198, 290} {
		dayHours, nightHours := DayNightHours(0, day)
		assert.InDelta(t, 12.0, dayHours, 0.01, "day %d", day)
		assert.InDelta(t, 12.0, nightHours, 0.01, "day %d", day)
	}
}

func TestDayNightHoursPolar(t *testing.T) {
	// High northern latitude: polar night in January, polar day in July.
	dayHours, nightHours := DayNightHours(80, 15)
	assert.InDelta(t, 0.0, dayHours, 1e-9)
	assert.InDelta(t, 24.0, nightHours, 1e-9)

	dayHours, nightHours = DayNightHours(80, 198)
	assert.InDelta(t, 24.0, dayHours, 1e-9)
	assert.InDelta(t, 0.0, nightHours, 1e-9)
}

func TestDayNightHoursSum(t *testing.T) {
	dayHours, nightHours := DayNightHours(45, 167)
	assert.InDelta(t, 24.0, dayHours+nightHours, 1e-9)
	assert.Greater(t, dayHours, 12.0) // northern summer
}

func TestCheckPowerFeasibilityPositive(t *testing.T) {
	// 2000Wh battery, 45W payload, mid-latitude June: short nights.
	result := CheckPowerFeasibility(45, 6, 2000, 45)

	assert.True(t, result.SurvivesNight)
	assert.Equal(t, "Power Positive", result.Status)
	assert.Greater(t, result.MarginWh, 0.0)
	assert.Equal(t, 2000.0, result.BatteryCapacityWh)
	assert.InDelta(t, result.MarginWh, 2000*0.8-result.NightEnergyNeeded, 0.01)
}

func TestCheckPowerFeasibilityInsufficientBattery(t *testing.T) {
	// 100Wh battery cannot carry a 120W payload through any night.
	result := CheckPowerFeasibility(45, 12, 100, 120)

	assert.False(t, result.SurvivesNight)
	assert.Equal(t, "Insufficient Battery", result.Status)
	assert.Less(t, result.MarginWh, 0.0)
}
