package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/involve-space/stratosim-station/events"
	"github.com/involve-space/stratosim-station/simapi"
)

type fakeFetcher struct {
	platforms    []simapi.Platform
	payloads     []simapi.Payload
	platformsErr error
	payloadsErr  error
}

func (f *fakeFetcher) Platforms(ctx context.Context) ([]simapi.Platform, error) {
	return f.platforms, f.platformsErr
}

func (f *fakeFetcher) Payloads(ctx context.Context) ([]simapi.Payload, error) {
	return f.payloads, f.payloadsErr
}

func waitLoaded(t *testing.T, loaded chan struct{}, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-loaded:
		case <-time.After(time.Second):
			t.Fatal("catalog load did not complete")
		}
	}
}

func TestLoadPreservesServerOrder(t *testing.T) {
	fetcher := &fakeFetcher{
		platforms: []simapi.Platform{{ID: 7, Name: "B"}, {ID: 3, Name: "A"}},
		payloads:  []simapi.Payload{{ID: 2, Name: "Y"}, {ID: 1, Name: "X"}},
	}
	cache := NewCache()
	loaded := make(chan struct{}, 2)
	cache.Load(fetcher, func() { loaded <- struct{}{} })
	waitLoaded(t, loaded, 2)

	platforms := cache.Platforms()
	require.Len(t, platforms, 2)
	assert.Equal(t, int64(7), platforms[0].ID)
	assert.Equal(t, int64(7), cache.FirstPlatformID())

	payloads := cache.Payloads()
	require.Len(t, payloads, 2)
	assert.Equal(t, int64(2), payloads[0].ID)
	assert.Equal(t, int64(2), cache.FirstPayloadID())
}

func TestLoadFailureLeavesListEmpty(t *testing.T) {
	fetcher := &fakeFetcher{
		platformsErr: errors.New("server unreachable"),
		payloads:     []simapi.Payload{{ID: 1}},
	}
	cache := NewCache()
	loaded := make(chan struct{}, 2)
	cache.Load(fetcher, func() { loaded <- struct{}{} })

	// Only the payload fetch completes; the platform failure is logged
	// and never retried.
	waitLoaded(t, loaded, 1)

	assert.Empty(t, cache.Platforms())
	assert.Equal(t, int64(0), cache.FirstPlatformID())
	assert.Len(t, cache.Payloads(), 1)
}

func loadFailedCount() int {
	count := 0
	for _, e := range events.GetEvents() {
		if e.Type == "catalog_load_failed" {
			count++
		}
	}
	return count
}

func TestLoadFailureEmitsOperatorEvent(t *testing.T) {
	fetcher := &fakeFetcher{
		platformsErr: errors.New("server unreachable"),
		payloadsErr:  errors.New("server unreachable"),
	}
	cache := NewCache()
	before := loadFailedCount()
	cache.Load(fetcher, nil)

	// Both fetches fail, so each must leave a catalog_load_failed event
	// in the operator log.
	require.Eventually(t, func() bool {
		return loadFailedCount() >= before+2
	}, time.Second, 10*time.Millisecond)
}

func TestLookups(t *testing.T) {
	cache := NewCache()
	cache.SetLists(
		[]simapi.Platform{{ID: 1, Name: "SmartBalloon Mk1"}},
		[]simapi.Payload{{ID: 4, Name: "SAR Radar (S-Band)"}},
	)

	require.NotNil(t, cache.Platform(1))
	assert.Equal(t, "SmartBalloon Mk1", cache.Platform(1).Name)
	assert.Nil(t, cache.Platform(2))
	assert.True(t, cache.HasPayload(4))
	assert.False(t, cache.HasPayload(1))
}
