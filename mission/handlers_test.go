package mission

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWebSocketSyncsNewMapClient(t *testing.T) {
	s := newTestStation(&fakeSimulator{})
	s.SetTarget(46.5, 11.25)
	s.ApplyField(FieldRadius, 80)

	srv := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	// A fresh client gets the full state immediately, with the radius
	// converted to meters for the circle overlay.
	conn.SetReadDeadline(time.Now().Add(time.Second))
	var update StateUpdate
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, 46.5, update.Lat)
	assert.Equal(t, 11.25, update.Lon)
	assert.Equal(t, 80.0, update.RadiusKm)
	assert.Equal(t, 80000.0, update.RadiusM)
	assert.False(t, update.Submitting)
}

func TestTargetHandlerBroadcastsToMapClients(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	srv := httptest.NewServer(http.HandlerFunc(s.handleWebSocket))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(time.Second))
	var update StateUpdate
	require.NoError(t, conn.ReadJSON(&update))

	req := httptest.NewRequest(http.MethodPost, "/mission/target", strings.NewReader(`{"lat": 48.25, "lon": -3.5}`))
	rec := httptest.NewRecorder()
	s.handleTarget(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, 48.25, update.Lat)
	assert.Equal(t, -3.5, update.Lon)
}

func TestSimulateResponseSyncsSubmitButton(t *testing.T) {
	sim := &fakeSimulator{
		resp:    feasibleResponse(),
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	s := newTestStation(sim)

	done := make(chan struct{})
	go func() {
		s.Submit(context.Background())
		close(done)
	}()
	<-sim.started

	// A trigger during flight is a no-op, but the response still has to
	// carry an out-of-band button swap showing the in-flight state.
	req := httptest.NewRequest(http.MethodPost, "/mission/simulate", nil)
	rec := httptest.NewRecorder()
	s.handleSimulate(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "hx-swap-oob")
	assert.Contains(t, body, "Simulating...")
	assert.Equal(t, 1, sim.callCount())

	close(sim.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}
}
