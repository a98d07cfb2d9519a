// Package presenter maps a simulation result (or its absence) onto a
// deterministic presentation model. It is a pure function of its input
// and holds no state.
package presenter

import (
	"fmt"
	"math"
	"strings"

	"github.com/involve-space/stratosim-station/simapi"
)

// DriftRisk is the qualitative wind-drift label as a closed variant.
// Server strings outside the known set map to DriftUnknown rather than
// silently falling through to a default.
type DriftRisk int

const (
	DriftUnknown DriftRisk = iota
	DriftLow
	DriftModerate
	DriftHigh
)

// ParseDriftRisk maps a wire label onto the variant.
func ParseDriftRisk(label string) DriftRisk {
	switch label {
	case "Low":
		return DriftLow
	case "Moderate":
		return DriftModerate
	case "High":
		return DriftHigh
	default:
		return DriftUnknown
	}
}

func (r DriftRisk) String() string {
	switch r {
	case DriftLow:
		return "Low"
	case DriftModerate:
		return "Moderate"
	case DriftHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Variant is a presentation style class.
type Variant string

const (
	VariantNominal  Variant = "nominal"
	VariantInfo     Variant = "info"
	VariantCritical Variant = "critical"
	VariantUnknown  Variant = "unknown"
)

// FlightVariant gives the exhaustive risk-to-style mapping.
func (r DriftRisk) FlightVariant() Variant {
	switch r {
	case DriftLow, DriftModerate:
		return VariantInfo
	case DriftHigh:
		return VariantCritical
	default:
		return VariantUnknown
	}
}

// Banner is the feasibility status header.
type Banner struct {
	Feasible bool
	Title    string
	Warnings []string
}

// PowerPanel presents the energy-balance result.
type PowerPanel struct {
	Status   string
	MarginWh float64
	Variant  Variant
}

// FlightPanel presents the station-keeping result.
type FlightPanel struct {
	Risk        DriftRisk
	Label       string
	Variant     Variant
	FleetFactor float64
	KeepProb    float64
	Volatility  float64
}

// QuoteView is the conditional cost section. Operations and data costs
// are presented as one combined line item.
type QuoteView struct {
	PriceQuoted       string
	PlatformAmortized string
	PayloadAmortized  string
	OpsAndDataCost    float64
	OpsAndData        string
	FleetFactor       float64
	MarginPercent     float64
	MarginAbsolute    string
}

// View is the full presentation model for the result card.
type View struct {
	HasResult bool
	Banner    Banner
	Power     PowerPanel
	Flight    FlightPanel
	// Quote is nil when the mission is infeasible: an infeasible
	// mission is never quoted, whatever the quote payload contains.
	Quote *QuoteView
}

// Present maps a result onto the view. A nil result yields the
// awaiting-submission placeholder.
func Present(result *simapi.SimulationResponse) View {
	if result == nil {
		return View{}
	}

	title := "Mission Viable"
	if !result.IsFeasible {
		title = "Mission Constraints Exceeded"
	}

	powerVariant := VariantNominal
	if !result.PowerAnalysis.SurvivesNight {
		powerVariant = VariantCritical
	}

	risk := ParseDriftRisk(result.FlightAnalysis.DriftRisk)

	view := View{
		HasResult: true,
		Banner: Banner{
			Feasible: result.IsFeasible,
			Title:    title,
			Warnings: result.Warnings,
		},
		Power: PowerPanel{
			Status:   result.PowerAnalysis.Status,
			MarginWh: result.PowerAnalysis.MarginWh,
			Variant:  powerVariant,
		},
		Flight: FlightPanel{
			Risk:        risk,
			Label:       risk.String(),
			Variant:     risk.FlightVariant(),
			FleetFactor: result.FlightAnalysis.OverprovisioningFactor,
			KeepProb:    result.FlightAnalysis.StationKeepingProb,
			Volatility:  result.FlightAnalysis.WindVolatilityScore,
		},
	}

	if result.IsFeasible {
		q := result.Quote
		opsAndData := q.Breakdown.OpsCost + q.Breakdown.DataCost
		view.Quote = &QuoteView{
			PriceQuoted:       FormatUSD(q.PriceQuoted),
			PlatformAmortized: FormatUSD(q.Breakdown.PlatformAmortized),
			PayloadAmortized:  FormatUSD(q.Breakdown.PayloadAmortized),
			OpsAndDataCost:    opsAndData,
			OpsAndData:        FormatUSD(opsAndData),
			FleetFactor:       q.Breakdown.OverprovisioningFactor,
			MarginPercent:     q.MarginPercent,
			MarginAbsolute:    FormatUSD(q.MarginAbsolute),
		}
	}

	return view
}

// FormatUSD renders a dollar amount with thousands separators. Whole
// amounts drop the cents.
func FormatUSD(v float64) string {
	neg := v < 0
	v = math.Abs(v)

	whole := int64(v)
	cents := math.Round((v - float64(whole)) * 100)
	if cents >= 100 {
		whole++
		cents = 0
	}

	s := groupThousands(whole)
	if cents > 0 {
		s = fmt.Sprintf("%s.%02d", s, int64(cents))
	}
	if neg {
		return "-$" + s
	}
	return "$" + s
}

func groupThousands(v int64) string {
	digits := fmt.Sprintf("%d", v)
	if len(digits) <= 3 {
		return digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	return digits + "," + strings.Join(parts, ",")
}
