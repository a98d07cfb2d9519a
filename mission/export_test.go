package mission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/involve-space/stratosim-station/simapi"
)

func TestExportRefusesWithoutResult(t *testing.T) {
	_, err := ExportQuoteToExcel(Configuration{}, nil)
	assert.Error(t, err)
}

func TestExportRefusesInfeasibleMission(t *testing.T) {
	// An infeasible response may still carry quote numbers from the
	// engine; they must never leave the station.
	result := &simapi.SimulationResponse{
		IsFeasible: false,
		Quote:      simapi.Quote{PriceQuoted: 131428.57},
	}
	_, err := ExportQuoteToExcel(Configuration{}, result)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not feasible")
}

func TestExportWritesQuoteSheet(t *testing.T) {
	cfg := Configuration{
		Lat:            45,
		Lon:            10,
		Month:          6,
		DurationDays:   30,
		TargetRadiusKm: 50,
	}
	result := &simapi.SimulationResponse{
		IsFeasible: true,
		Quote: simapi.Quote{
			Breakdown: simapi.QuoteBreakdown{
				PlatformAmortized:      8000,
				PayloadAmortized:       3000,
				OpsCost:                72000,
				DataCost:               9000,
				OverprovisioningFactor: 1.2,
			},
			TotalCost:      92000,
			PriceQuoted:    131428.57,
			MarginAbsolute: 39428.57,
			MarginPercent:  30,
		},
	}

	buf, err := ExportQuoteToExcel(cfg, result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	cell := func(ref string) string {
		v, err := f.GetCellValue("Quote", ref)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Mission Quote", cell("A1"))
	assert.Equal(t, "45.0000, 10.0000", cell("B4"))
	assert.Equal(t, "Platform (Fleet x1.2)", cell("A9"))
	assert.Equal(t, "8000", cell("B9"))
	// Ops and data are one combined line.
	assert.Equal(t, "81000", cell("B11"))
	assert.Equal(t, "92000", cell("B13"))
	assert.Equal(t, "Net Margin (30%)", cell("A14"))
	assert.Equal(t, "131428.57", cell("B15"))
}
