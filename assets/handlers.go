package assets

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/involve-space/stratosim-station/engine"
	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/pricing"
	"github.com/involve-space/stratosim-station/simapi"
)

func SetupHandlers() {
	http.HandleFunc("/api/platforms", handlePlatforms)
	http.HandleFunc("/api/payloads", handlePayloads)
	http.HandleFunc("/api/simulate", handleSimulate)
	http.HandleFunc("/api/quotes", handleQuoteHistory)
}

func handlePlatforms(w http.ResponseWriter, r *http.Request) {
	platforms, err := ListPlatforms()
	if err != nil {
		log.Printf("Error listing platforms: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(platforms)
}

func handlePayloads(w http.ResponseWriter, r *http.Request) {
	payloads, err := ListPayloads()
	if err != nil {
		log.Printf("Error listing payloads: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payloads)
}

func handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req simapi.SimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	resp, err := RunSimulation(req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	if err := RecordQuote(req, resp); err != nil {
		// History is best effort; the caller still gets the result.
		log.Printf("Error recording quote: %v", err)
	}

	events.LogEvent(events.Event{
		Type:      "simulation_completed",
		Source:    "Simulator",
		Timestamp: time.Now(),
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func handleQuoteHistory(w http.ResponseWriter, r *http.Request) {
	records, err := ListQuoteHistory(50)
	if err != nil {
		log.Printf("Error listing quote history: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(records)
}

// RunSimulation executes the power, flight and pricing models for a
// request against the stored catalog.
func RunSimulation(req simapi.SimulationRequest) (*simapi.SimulationResponse, error) {
	platform, err := GetPlatform(req.PlatformID)
	if err != nil {
		return nil, err
	}
	payload, err := GetPayload(req.PayloadID)
	if err != nil {
		return nil, err
	}
	if platform == nil || payload == nil {
		return nil, fmt.Errorf("platform or payload not found")
	}

	warnings := []string{}

	power := engine.CheckPowerFeasibility(req.Lat, req.Month, platform.BatteryCapacity, payload.PowerConsumption)
	if !power.SurvivesNight {
		warnings = append(warnings, "Insufficient Battery for Night Operations")
	}

	if payload.Mass > platform.MaxPayloadMass {
		warnings = append(warnings, fmt.Sprintf("Payload Overweight: %gkg > %gkg", payload.Mass, platform.MaxPayloadMass))
	}

	flight := engine.SimulateStationKeeping(req.Lat, req.Month, req.TargetRadiusKm)
	if flight.DriftRisk == engine.DriftRiskHigh {
		warnings = append(warnings, "High Drift Risk: Requires large fleet overprovisioning")
	}

	quote := pricing.CalculateQuote(*platform, *payload, req.DurationDays, flight, req.MarginPercent)

	// Drift alone is quotable; power or mass violations are not.
	feasible := len(warnings) == 0 ||
		(len(warnings) == 1 && strings.Contains(warnings[0], "Drift"))

	return &simapi.SimulationResponse{
		IsFeasible:     feasible,
		Warnings:       warnings,
		PowerAnalysis:  power,
		FlightAnalysis: flight,
		Quote:          quote,
	}, nil
}
