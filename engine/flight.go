package engine

import (
	"math"

	"github.com/involve-space/stratosim-station/simapi"
)

// Drift risk labels carried on the wire.
const (
	DriftRiskLow      = "Low"
	DriftRiskModerate = "Moderate"
	DriftRiskHigh     = "High"
)

// WindVolatility returns a 0.0-0.9 volatility score for a latitude and
// month. Mid-to-high latitudes in local winter sit at the rough edge of
// the polar vortex; the equatorial band stays comparatively calm.
func WindVolatility(lat float64, month int) float64 {
	var isWinter bool
	if lat > 0 {
		isWinter = month == 12 || month == 1 || month == 2
	} else {
		isWinter = month == 6 || month == 7 || month == 8
	}

	absLat := math.Abs(lat)

	base := 0.1
	latFactor := 0.0
	switch {
	case absLat > 20 && absLat < 60:
		latFactor = 0.4
	case absLat >= 60:
		// Inside the vortex can be stable, but the edge is rough.
		latFactor = 0.3
	}

	seasonMultiplier := 1.0
	if isWinter {
		seasonMultiplier = 1.5
	}

	return math.Min(0.9, (base+latFactor)*seasonMultiplier)
}

// SimulateStationKeeping estimates the probability of holding position
// within targetRadiusKm and the fleet overprovisioning factor needed to
// keep one vehicle on station.
func SimulateStationKeeping(lat float64, month int, targetRadiusKm float64) simapi.FlightAnalysis {
	volatility := WindVolatility(lat, month)

	// Tighter radius is harder to hold; 50km is the reference box.
	radiusDifficulty := 50.0 / math.Max(10.0, targetRadiusKm)

	failureProb := volatility * radiusDifficulty
	failureProb = math.Min(0.8, math.Max(0.01, failureProb))

	// Fleet replenishment: 10% failure -> 1.15x fleet, 50% -> 1.75x.
	kFactor := 1.0 + failureProb*1.5

	risk := DriftRiskLow
	switch {
	case failureProb > 0.4:
		risk = DriftRiskHigh
	case failureProb > 0.2:
		risk = DriftRiskModerate
	}

	return simapi.FlightAnalysis{
		WindVolatilityScore:    round2(volatility),
		StationKeepingProb:     round2(1.0 - failureProb),
		OverprovisioningFactor: round2(kFactor),
		DriftRisk:              risk,
	}
}
