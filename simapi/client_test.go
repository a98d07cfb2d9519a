package simapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlatformsFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/platforms", r.URL.Path)
		json.NewEncoder(w).Encode([]Platform{
			{ID: 1, Name: "SmartBalloon Mk1", BatteryCapacity: 2000},
			{ID: 2, Name: "PseudoSat Alpha", BatteryCapacity: 5000},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	platforms, err := client.Platforms(context.Background())
	require.NoError(t, err)
	require.Len(t, platforms, 2)
	assert.Equal(t, "SmartBalloon Mk1", platforms[0].Name)
}

func TestSimulateWireShape(t *testing.T) {
	var received map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/simulate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(SimulationResponse{IsFeasible: true})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	resp, err := client.Simulate(context.Background(), SimulationRequest{
		PlatformID:     1,
		PayloadID:      1,
		Lat:            45.0,
		Lon:            10.0,
		Month:          6,
		DurationDays:   30,
		TargetRadiusKm: 50,
		MarginPercent:  0.3,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsFeasible)

	// The wire field names are fixed by the server contract.
	assert.Equal(t, map[string]any{
		"platform_id":      float64(1),
		"payload_id":       float64(1),
		"lat":              45.0,
		"lon":              10.0,
		"month":            float64(6),
		"duration_days":    float64(30),
		"target_radius_km": float64(50),
		"margin_percent":   0.3,
	}, received)
}

func TestSimulateNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "platform or payload not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Simulate(context.Background(), SimulationRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSimulateConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	client := NewClient(server.URL)
	_, err := client.Simulate(context.Background(), SimulationRequest{})
	require.Error(t, err)
}
