package mission

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/simapi"
)

// ExportQuoteToExcel renders the current quote as a one-sheet .xlsx
// breakdown. It follows the presenter policy: infeasible missions are
// never quoted.
func ExportQuoteToExcel(cfg Configuration, result *simapi.SimulationResponse) (*bytes.Buffer, error) {
	if result == nil {
		return nil, fmt.Errorf("no simulation result to export")
	}
	if !result.IsFeasible {
		return nil, fmt.Errorf("mission is not feasible; no quote to export")
	}

	f := excelize.NewFile()
	sheet := "Quote"
	f.SetSheetName("Sheet1", sheet)

	q := result.Quote
	rows := [][]any{
		{"Mission Quote", ""},
		{"Generated", time.Now().Format("2006-01-02 15:04:05")},
		{"", ""},
		{"Target Center", fmt.Sprintf("%.4f, %.4f", cfg.Lat, cfg.Lon)},
		{"Month", cfg.Month},
		{"Duration (days)", cfg.DurationDays},
		{"Target Radius (km)", cfg.TargetRadiusKm},
		{"", ""},
		{"Platform (Fleet x" + fmt.Sprintf("%g", q.Breakdown.OverprovisioningFactor) + ")", q.Breakdown.PlatformAmortized},
		{"Payload", q.Breakdown.PayloadAmortized},
		{"Operations & Data", q.Breakdown.OpsCost + q.Breakdown.DataCost},
		{"", ""},
		{"Total Cost", q.TotalCost},
		{fmt.Sprintf("Net Margin (%g%%)", q.MarginPercent), q.MarginAbsolute},
		{"Price Quoted", q.PriceQuoted},
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write quote row: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func (s *Station) handleExport(w http.ResponseWriter, r *http.Request) {
	buf, err := ExportQuoteToExcel(s.Config(), s.Result())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	events.LogEvent(events.Event{
		Type:      "quote_exported",
		Source:    "Station",
		Timestamp: time.Now(),
	})

	filename := fmt.Sprintf("mission_quote_%s.xlsx", time.Now().Format("2006-01-02_15-04-05"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(buf.Bytes())
}
