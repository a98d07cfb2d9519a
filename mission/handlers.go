package mission

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/involve-space/stratosim-station/presenter"
	"github.com/involve-space/stratosim-station/simapi"
)

//go:generate go tool templ generate

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The station serves its own frontend; same-host pages only.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func SetupHandlers(s *Station) {
	http.HandleFunc("/mission/panel", s.handlePanel)
	http.HandleFunc("/mission/result", s.handleResult)
	http.HandleFunc("/mission/field", s.handleField)
	http.HandleFunc("/mission/target", s.handleTarget)
	http.HandleFunc("/mission/simulate", s.handleSimulate)
	http.HandleFunc("/mission/export", s.handleExport)
	http.HandleFunc("/mission/ws", s.handleWebSocket)
}

// HTMX Handlers

func (s *Station) handlePanel(w http.ResponseWriter, r *http.Request) {
	cfg := s.Config()

	w.Header().Set("Content-Type", "text/html")
	err := ConfigPanel(s.catalog.Platforms(), s.catalog.Payloads(), cfg, s.State() == StateSubmitting).Render(r.Context(), w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Station) handleResult(w http.ResponseWriter, r *http.Request) {
	view := presenter.Present(s.Result())

	w.Header().Set("Content-Type", "text/html")
	err := ResultCard(view, s.LastError()).Render(r.Context(), w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (s *Station) handleField(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	field := r.FormValue("field")
	valueStr := r.FormValue("value")
	if field == "" || valueStr == "" {
		http.Error(w, "Missing required fields", http.StatusBadRequest)
		return
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid value: %v", err), http.StatusBadRequest)
		return
	}

	s.ApplyField(field, value)
	s.BroadcastState()

	// Return updated panel
	s.handlePanel(w, r)
}

func (s *Station) handleTarget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var data struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	}
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	s.SetTarget(data.Lat, data.Lon)
	s.BroadcastState()

	w.WriteHeader(http.StatusOK)
}

func (s *Station) handleSimulate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	started, err := s.Submit(r.Context())
	if !started {
		log.Printf("Submission already in flight, ignoring trigger")
	}
	_ = err // failure is presented through the result card's error banner

	// Return updated result card, plus an out-of-band swap so the
	// submit button tracks the submission state.
	s.handleResult(w, r)
	if err := SubmitButtonOOB(s.State() == StateSubmitting).Render(r.Context(), w); err != nil {
		log.Printf("Error rendering submit button: %v", err)
	}
}

func (s *Station) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading map client: %v", err)
		return
	}

	s.wsClientsMux.Lock()
	s.wsClients[conn] = true
	s.wsClientsMux.Unlock()

	// Sync the new client immediately.
	s.BroadcastState()

	// Drain until the client goes away.
	go func() {
		defer func() {
			s.wsClientsMux.Lock()
			delete(s.wsClients, conn)
			s.wsClientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

// Helper functions for templates

func platformLabel(p simapi.Platform) string {
	return fmt.Sprintf("%s (Max %gkg)", p.Name, p.MaxPayloadMass)
}

func payloadLabel(p simapi.Payload) string {
	return fmt.Sprintf("%s (%gW)", p.Name, p.PowerConsumption)
}

func bannerClass(feasible bool) string {
	if feasible {
		return "bg-green-50 border-green-300 text-green-800"
	}
	return "bg-red-50 border-red-300 text-red-800"
}

func variantClass(v presenter.Variant) string {
	switch v {
	case presenter.VariantCritical:
		return "text-red-600 font-medium"
	case presenter.VariantNominal:
		return "text-green-600 font-medium"
	case presenter.VariantUnknown:
		return "text-gray-500 font-medium"
	default:
		return "text-blue-600 font-medium"
	}
}
