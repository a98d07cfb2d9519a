package mission

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/involve-space/stratosim-station/catalog"
	"github.com/involve-space/stratosim-station/simapi"
)

type fakeSimulator struct {
	mutex sync.Mutex
	calls int
	reqs  []simapi.SimulationRequest
	resp  *simapi.SimulationResponse
	err   error

	// When set, Simulate signals started and blocks until release is
	// closed.
	started chan struct{}
	release chan struct{}
}

func (f *fakeSimulator) Simulate(ctx context.Context, req simapi.SimulationRequest) (*simapi.SimulationResponse, error) {
	f.mutex.Lock()
	f.calls++
	f.reqs = append(f.reqs, req)
	started, release := f.started, f.release
	f.mutex.Unlock()

	if started != nil {
		started <- struct{}{}
		<-release
	}
	return f.resp, f.err
}

func (f *fakeSimulator) callCount() int {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	return f.calls
}

func newTestStation(sim Simulator) *Station {
	cache := catalog.NewCache()
	cache.SetLists(
		[]simapi.Platform{{ID: 1, Name: "SmartBalloon Mk1", MaxPayloadMass: 15}},
		[]simapi.Payload{{ID: 1, Name: "Optical High-Res (EOS-1)", PowerConsumption: 45}},
	)
	s := NewStation(cache, sim)
	s.autoSelectDefaults()
	return s
}

func feasibleResponse() *simapi.SimulationResponse {
	return &simapi.SimulationResponse{
		IsFeasible: true,
		Warnings:   []string{},
		Quote:      simapi.Quote{PriceQuoted: 2000},
	}
}

func TestAutoSelectFirstCatalogEntries(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	cfg := s.Config()
	assert.Equal(t, int64(1), cfg.PlatformID)
	assert.Equal(t, int64(1), cfg.PayloadID)
}

func TestAutoSelectKeepsExistingSelection(t *testing.T) {
	cache := catalog.NewCache()
	cache.SetLists(
		[]simapi.Platform{{ID: 1}, {ID: 2}},
		[]simapi.Payload{{ID: 1}},
	)
	s := NewStation(cache, &fakeSimulator{})
	s.autoSelectDefaults()
	s.ApplyField(FieldPlatformID, 2)

	// A second catalog completion must not reset the selection.
	s.autoSelectDefaults()
	assert.Equal(t, int64(2), s.Config().PlatformID)
}

func TestBuildRequestSnapshot(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	req := s.BuildRequest()
	assert.Equal(t, simapi.SimulationRequest{
		PlatformID:     1,
		PayloadID:      1,
		Lat:            45.0,
		Lon:            10.0,
		Month:          6,
		DurationDays:   30,
		TargetRadiusKm: 50,
		MarginPercent:  0.3,
	}, req)
}

func TestMarginIsAFraction(t *testing.T) {
	s := newTestStation(&fakeSimulator{})
	assert.Equal(t, MarginPercent/100.0, s.BuildRequest().MarginPercent)
}

func TestSetTargetVerbatim(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	// Coordinates pass through untouched; the map surface may hand us
	// wrapped longitudes and we keep them as given.
	s.SetTarget(45.123456789, -200.25)
	cfg := s.Config()
	assert.Equal(t, 45.123456789, cfg.Lat)
	assert.Equal(t, -200.25, cfg.Lon)
}

func TestFieldClampingBoundaries(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	cases := []struct {
		field string
		value float64
		want  float64
	}{
		{FieldDuration, 6, 7},
		{FieldDuration, 7, 7},
		{FieldDuration, 180, 180},
		{FieldDuration, 181, 180},
		{FieldMonth, 0, 1},
		{FieldMonth, 13, 12},
		{FieldRadius, 5, 10},
		{FieldRadius, 250, 200},
	}
	for _, tc := range cases {
		s.ApplyField(tc.field, tc.value)
		cfg := s.Config()
		var got float64
		switch tc.field {
		case FieldDuration:
			got = float64(cfg.DurationDays)
		case FieldMonth:
			got = float64(cfg.Month)
		case FieldRadius:
			got = cfg.TargetRadiusKm
		}
		assert.Equal(t, tc.want, got, "field %s value %g", tc.field, tc.value)
	}
}

func TestFieldSelectionRequiresCatalogIdentity(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	s.ApplyField(FieldPlatformID, 99)
	s.ApplyField(FieldPayloadID, 99)

	cfg := s.Config()
	assert.Equal(t, int64(1), cfg.PlatformID)
	assert.Equal(t, int64(1), cfg.PayloadID)
}

func TestStateSnapshotMirrorsConfiguration(t *testing.T) {
	s := newTestStation(&fakeSimulator{})

	s.SetTarget(45.123456789, -200.25)
	s.ApplyField(FieldRadius, 120)

	// The map consumes this snapshot verbatim: coordinates pass through
	// and the circle overlay needs the radius in meters.
	update := s.StateSnapshot()
	assert.Equal(t, 45.123456789, update.Lat)
	assert.Equal(t, -200.25, update.Lon)
	assert.Equal(t, 120.0, update.RadiusKm)
	assert.Equal(t, 120000.0, update.RadiusM)
	assert.False(t, update.Submitting)
}

func TestStateSnapshotSubmittingFlag(t *testing.T) {
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
	assert.True(t, s.StateSnapshot().Submitting)

	close(sim.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}
	assert.False(t, s.StateSnapshot().Submitting)
}

func TestSubmitSuccess(t *testing.T) {
	sim := &fakeSimulator{resp: feasibleResponse()}
	s := newTestStation(sim)

	started, err := s.Submit(context.Background())
	require.NoError(t, err)
	assert.True(t, started)
	assert.Equal(t, StateIdleWithResult, s.State())
	require.NotNil(t, s.Result())
	assert.True(t, s.Result().IsFeasible)
	assert.Empty(t, s.LastError())
}

func TestSubmitWhileSubmittingIsNoOp(t *testing.T) {
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
	assert.Equal(t, StateSubmitting, s.State())

	started, err := s.Submit(context.Background())
	assert.False(t, started)
	assert.NoError(t, err)
	assert.Equal(t, 1, sim.callCount())

	close(sim.release)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("submission did not complete")
	}
	assert.Equal(t, StateIdleWithResult, s.State())
}

func TestInFlightRequestIsFrozen(t *testing.T) {
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
	// Edits during flight are visible in the configuration but must
	// not reach the request already sent.
	s.ApplyField(FieldDuration, 90)
	s.SetTarget(10, 20)

	close(sim.release)
	<-done

	assert.Equal(t, 90, s.Config().DurationDays)
	require.Len(t, sim.reqs, 1)
	assert.Equal(t, 30, sim.reqs[0].DurationDays)
	assert.Equal(t, 45.0, sim.reqs[0].Lat)
}

func TestSubmitFailureRetainsPriorResult(t *testing.T) {
	sim := &fakeSimulator{resp: feasibleResponse()}
	s := newTestStation(sim)

	_, err := s.Submit(context.Background())
	require.NoError(t, err)
	prior := s.Result()

	sim.mutex.Lock()
	sim.resp = nil
	sim.err = errors.New("boom")
	sim.mutex.Unlock()

	started, err := s.Submit(context.Background())
	assert.True(t, started)
	assert.Error(t, err)
	assert.Equal(t, StateIdleWithError, s.State())
	assert.Same(t, prior, s.Result())
	assert.NotEmpty(t, s.LastError())

	// A later success clears the error flag and replaces the result.
	sim.mutex.Lock()
	sim.resp = feasibleResponse()
	sim.err = nil
	sim.mutex.Unlock()

	_, err = s.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdleWithResult, s.State())
	assert.Empty(t, s.LastError())
	assert.NotSame(t, prior, s.Result())
}

func TestFieldEditsLegalInErrorState(t *testing.T) {
	sim := &fakeSimulator{err: errors.New("unreachable")}
	s := newTestStation(sim)

	_, err := s.Submit(context.Background())
	require.Error(t, err)
	require.Equal(t, StateIdleWithError, s.State())

	s.ApplyField(FieldMonth, 12)
	assert.Equal(t, 12, s.Config().Month)
}
