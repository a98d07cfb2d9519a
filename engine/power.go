// Package engine models the physics side of a stratospheric mission:
// platform energy balance and wind-driven station keeping.
package engine

import (
	"math"

	"github.com/involve-space/stratosim-station/simapi"
)

const (
	// Usable depth of discharge. Batteries are never drained past 80%
	// to prolong cycle life.
	batteryDoD = 0.8
)

// DayNightHours calculates day and night hours for a latitude and day
// of year using a simplified solar declination model.
func DayNightHours(lat float64, dayOfYear int) (dayHours, nightHours float64) {
	declination := 23.44 * math.Sin((math.Pi/180)*(360.0/365.0)*(float64(dayOfYear)-81))

	// cos(h) = -tan(lat) * tan(decl), clamped for polar day/night
	val := -math.Tan(lat*math.Pi/180) * math.Tan(declination*math.Pi/180)
	val = math.Max(-1.0, math.Min(1.0, val))
	hourAngle := math.Acos(val) * 180 / math.Pi
	dayHours = (2 * hourAngle) / 15.0

	return dayHours, 24.0 - dayHours
}

// CheckPowerFeasibility determines whether the platform battery carries
// the payload through the worst-case night of the given month. The
// payload is assumed to run at a 100% duty cycle.
func CheckPowerFeasibility(lat float64, month int, batteryCapacityWh, payloadPowerW float64) simapi.PowerAnalysis {
	// Mid-month day of year is close enough for seasonality.
	dayOfYear := int(float64(month-1)*30.5 + 15)

	dayHours, nightHours := DayNightHours(lat, dayOfYear)

	nightEnergyNeeded := payloadPowerW * nightHours
	maxUsableBattery := batteryCapacityWh * batteryDoD

	survives := maxUsableBattery >= nightEnergyNeeded
	margin := maxUsableBattery - nightEnergyNeeded

	status := "Power Positive"
	if !survives {
		status = "Insufficient Battery"
	}

	return simapi.PowerAnalysis{
		SurvivesNight:     survives,
		DayHours:          round2(dayHours),
		NightHours:        round2(nightHours),
		NightEnergyNeeded: round2(nightEnergyNeeded),
		BatteryCapacityWh: batteryCapacityWh,
		MarginWh:          round2(margin),
		Status:            status,
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
