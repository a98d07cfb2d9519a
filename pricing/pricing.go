// Package pricing computes the cost breakdown and quoted price for a
// configured mission.
package pricing

import (
	"math"

	"github.com/involve-space/stratosim-station/simapi"
)

const (
	// LaunchTeamDailyRate is the launch team / ops cost per mission day.
	LaunchTeamDailyRate = 2000.0
	// DatalinkCostPerGB is the satellite downlink cost per gigabyte.
	DatalinkCostPerGB = 5.0
	// Payload instruments are reusable and amortized over this many
	// missions.
	payloadAmortizationMissions = 10
)

// CalculateQuote prices a mission. The overprovisioning factor from the
// flight analysis multiplies platform, ops and data costs, since the
// fleet must be sized to keep one vehicle on station. marginPercent is
// a fraction (0.30 for 30%).
func CalculateQuote(platform simapi.Platform, payload simapi.Payload, durationDays int, flight simapi.FlightAnalysis, marginPercent float64) simapi.Quote {
	k := flight.OverprovisioningFactor
	if k <= 0 {
		k = 1.0
	}

	// Platform amortized per flight; one launch covers the mission.
	amortFlights := platform.AmortizationFlights
	if amortFlights < 1 {
		amortFlights = 1
	}
	costPerFlight := (platform.Capex + platform.LaunchCost) / float64(amortFlights)

	payloadPerMission := payload.Capex / payloadAmortizationMissions

	dailyOpsCost := LaunchTeamDailyRate * k
	totalOpsCost := dailyOpsCost * float64(durationDays)

	totalDataGB := payload.DailyDataRateGB * float64(durationDays) * k
	dataCost := totalDataGB * DatalinkCostPerGB

	baseMissionCost := costPerFlight + payloadPerMission
	totalPlatformCost := baseMissionCost * k

	totalCost := totalPlatformCost + totalOpsCost + dataCost

	price := totalCost / (1.0 - marginPercent)
	netMargin := price - totalCost

	return simapi.Quote{
		Breakdown: simapi.QuoteBreakdown{
			PlatformAmortized:      round2(costPerFlight * k),
			PayloadAmortized:       round2(payloadPerMission * k),
			OpsCost:                round2(totalOpsCost),
			DataCost:               round2(dataCost),
			OverprovisioningFactor: k,
		},
		TotalCost:      round2(totalCost),
		PriceQuoted:    round2(price),
		MarginAbsolute: round2(netMargin),
		MarginPercent:  round1(marginPercent * 100),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
