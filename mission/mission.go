// Package mission owns the mission configuration state machine: catalog
// selections, target coordinates, temporal and spatial parameters, the
// submission lifecycle and the latest simulation result.
package mission

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/involve-space/stratosim-station/catalog"
	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/simapi"
)

// Simulator is the collaborator that runs a mission simulation.
type Simulator interface {
	Simulate(ctx context.Context, req simapi.SimulationRequest) (*simapi.SimulationResponse, error)
}

// Station is the single owner of all mutable mission state. Every event
// (field edit, pointer activation, submit trigger, network completion)
// is serialized through its mutex.
type Station struct {
	mutex sync.Mutex

	catalog   *catalog.Cache
	simulator Simulator

	config    Configuration
	state     State
	result    *simapi.SimulationResponse
	lastError string

	wsClients    map[*websocket.Conn]bool
	wsClientsMux sync.Mutex
}

// NewStation creates a station with the default configuration centered
// on northern Italy.
func NewStation(cache *catalog.Cache, simulator Simulator) *Station {
	return &Station{
		catalog:   cache,
		simulator: simulator,
		config: Configuration{
			Lat:            45.0,
			Lon:            10.0,
			Month:          6,
			DurationDays:   30,
			TargetRadiusKm: 50,
		},
		wsClients: make(map[*websocket.Conn]bool),
	}
}

// LoadCatalog starts the two catalog fetches and auto-selects the first
// platform and payload once their lists arrive.
func (s *Station) LoadCatalog(fetcher catalog.Fetcher) {
	s.catalog.Load(fetcher, s.autoSelectDefaults)
}

func (s *Station) autoSelectDefaults() {
	s.mutex.Lock()
	if s.config.PlatformID == 0 {
		s.config.PlatformID = s.catalog.FirstPlatformID()
	}
	if s.config.PayloadID == 0 {
		s.config.PayloadID = s.catalog.FirstPayloadID()
	}
	s.mutex.Unlock()

	events.LogEvent(events.Event{
		Type:      "catalog_loaded",
		Source:    "Station",
		Timestamp: time.Now(),
	})
	s.BroadcastState()
}

// Config returns a copy of the current configuration.
func (s *Station) Config() Configuration {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.config
}

// State returns the current submission state.
func (s *Station) State() State {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.state
}

// Result returns the live simulation result, or nil.
func (s *Station) Result() *simapi.SimulationResponse {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.result
}

// LastError returns the transient submission error message, if any.
func (s *Station) LastError() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.lastError
}

// Catalog returns the station's catalog cache.
func (s *Station) Catalog() *catalog.Cache {
	return s.catalog
}

// ApplyField applies a form field-change event, clamping the value to
// the field's declared domain. Unknown catalog identities and unknown
// field names are ignored. Legal in every state.
func (s *Station) ApplyField(field string, value float64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	switch field {
	case FieldPlatformID:
		id := int64(value)
		if s.catalog.HasPlatform(id) {
			s.config.PlatformID = id
		}
	case FieldPayloadID:
		id := int64(value)
		if s.catalog.HasPayload(id) {
			s.config.PayloadID = id
		}
	case FieldMonth:
		s.config.Month = clampInt(int(value), MonthMin, MonthMax)
	case FieldDuration:
		s.config.DurationDays = clampInt(int(value), DurationMin, DurationMax)
	case FieldRadius:
		s.config.TargetRadiusKm = clampFloat(value, RadiusMin, RadiusMax)
	default:
		log.Printf("Ignoring unknown field %q", field)
	}
}

// SetTarget applies a pointer activation from the map. Coordinates are
// taken verbatim; the selector performs no rounding and neither do we.
func (s *Station) SetTarget(lat, lon float64) {
	s.mutex.Lock()
	s.config.Lat = lat
	s.config.Lon = lon
	s.mutex.Unlock()

	events.LogEvent(events.Event{
		Type:      "target_moved",
		Source:    "Station",
		Timestamp: time.Now(),
	})
}

// BuildRequest flattens the current configuration into the wire shape.
// The margin constant goes out as a fraction.
func (s *Station) BuildRequest() simapi.SimulationRequest {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.buildRequestLocked()
}

func (s *Station) buildRequestLocked() simapi.SimulationRequest {
	return simapi.SimulationRequest{
		PlatformID:     s.config.PlatformID,
		PayloadID:      s.config.PayloadID,
		Lat:            s.config.Lat,
		Lon:            s.config.Lon,
		Month:          s.config.Month,
		DurationDays:   s.config.DurationDays,
		TargetRadiusKm: s.config.TargetRadiusKm,
		MarginPercent:  MarginPercent / 100.0,
	}
}

// Submit triggers a simulation run. The request is a frozen snapshot of
// the configuration at trigger time; field edits during flight never
// alter it. If a submission is already in flight the trigger is a
// no-op and started is false. On failure the previous result is kept
// and the error is held for display.
func (s *Station) Submit(ctx context.Context) (started bool, err error) {
	s.mutex.Lock()
	if s.state == StateSubmitting {
		s.mutex.Unlock()
		return false, nil
	}
	req := s.buildRequestLocked()
	s.state = StateSubmitting
	s.mutex.Unlock()

	events.LogEvent(events.Event{
		Type:      "simulation_submitted",
		Source:    "Station",
		Timestamp: time.Now(),
	})
	s.BroadcastState()

	result, simErr := s.simulator.Simulate(ctx, req)

	s.mutex.Lock()
	if simErr != nil {
		s.state = StateIdleWithError
		s.lastError = fmt.Sprintf("Simulation failed: %v", simErr)
	} else {
		s.result = result
		s.lastError = ""
		s.state = StateIdleWithResult
	}
	s.mutex.Unlock()
	s.BroadcastState()

	if simErr != nil {
		log.Printf("Simulation failed: %v", simErr)
		events.LogEvent(events.Event{
			Type:      "simulation_failed",
			Source:    "Station",
			Timestamp: time.Now(),
		})
		return true, simErr
	}
	return true, nil
}

// StateSnapshot returns the map-facing view of the configuration.
// The radius goes out twice: in kilometers for the form and in meters
// for the leaflet circle overlay.
func (s *Station) StateSnapshot() StateUpdate {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return StateUpdate{
		Lat:        s.config.Lat,
		Lon:        s.config.Lon,
		RadiusKm:   s.config.TargetRadiusKm,
		RadiusM:    s.config.TargetRadiusKm * 1000,
		Submitting: s.state == StateSubmitting,
	}
}

// BroadcastState pushes the current coordinates, radius overlay and
// submitting flag to all connected map clients. This is the one-way
// controller-to-view synchronization: the map re-centers on whatever
// it receives here.
func (s *Station) BroadcastState() {
	update := s.StateSnapshot()

	s.wsClientsMux.Lock()
	for client := range s.wsClients {
		if err := client.WriteJSON(update); err != nil {
			log.Printf("Error sending state to map client: %v", err)
			client.Close()
			delete(s.wsClients, client)
		}
	}
	s.wsClientsMux.Unlock()
}
