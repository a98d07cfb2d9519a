package events

import (
	"encoding/json"
	"net/http"
	"strings"
)

//go:generate go tool templ generate

func SetupHandlers() {
	http.HandleFunc("/events", handleEvents)

	// HTMX endpoint
	http.HandleFunc("/events/list", handleEventsList)
}

// HTMX Handlers

func handleEventsList(w http.ResponseWriter, r *http.Request) {
	eventsList := GetEvents()

	// Reverse the events to show newest first
	reversed := make([]Event, len(eventsList))
	for i, j := 0, len(eventsList)-1; i < len(eventsList); i, j = i+1, j-1 {
		reversed[i] = eventsList[j]
	}

	w.Header().Set("Content-Type", "text/html")
	err := EventsList(reversed).Render(r.Context(), w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
}

// JSON API handler

func handleEvents(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetEvents())
}

// Helper functions for templates

func formatEventType(eventType string) string {
	parts := strings.Split(eventType, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func getEventTypeClass(eventType string) string {
	switch eventType {
	case "catalog_loaded", "simulation_completed":
		return "bg-green-100 text-green-800"
	case "catalog_load_failed", "simulation_failed":
		return "bg-red-100 text-red-800"
	case "simulation_submitted":
		return "bg-indigo-100 text-indigo-800"
	case "target_moved":
		return "bg-yellow-100 text-yellow-800"
	case "quote_exported":
		return "bg-purple-100 text-purple-800"
	default:
		return "bg-blue-100 text-blue-800"
	}
}
