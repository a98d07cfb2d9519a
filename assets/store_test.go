package assets

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/involve-space/stratosim-station/simapi"
)

func openTestDatabase(t *testing.T) {
	t.Helper()
	var err error
	db, err = sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	require.NoError(t, initSchemaAndSeed(db))
	t.Cleanup(func() { db.Close() })
}

func TestSeedCatalog(t *testing.T) {
	openTestDatabase(t)

	platforms, err := ListPlatforms()
	require.NoError(t, err)
	require.Len(t, platforms, 2)
	assert.Equal(t, "SmartBalloon Mk1", platforms[0].Name)
	assert.Equal(t, "PseudoSat Alpha", platforms[1].Name)
	assert.Equal(t, 2000.0, platforms[0].BatteryCapacity)

	payloads, err := ListPayloads()
	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, "Optical High-Res (EOS-1)", payloads[0].Name)
	assert.Equal(t, 120.0, payloads[1].PowerConsumption)
}

func TestSeedIsIdempotent(t *testing.T) {
	openTestDatabase(t)
	require.NoError(t, initSchemaAndSeed(db))

	platforms, err := ListPlatforms()
	require.NoError(t, err)
	assert.Len(t, platforms, 2)
}

func TestGetByID(t *testing.T) {
	openTestDatabase(t)

	platform, err := GetPlatform(1)
	require.NoError(t, err)
	require.NotNil(t, platform)
	assert.Equal(t, "SmartBalloon Mk1", platform.Name)

	missing, err := GetPlatform(42)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestQuoteHistory(t *testing.T) {
	openTestDatabase(t)

	req := simapi.SimulationRequest{PlatformID: 1, PayloadID: 1}
	resp := &simapi.SimulationResponse{
		IsFeasible: true,
		Quote:      simapi.Quote{TotalCost: 92000, PriceQuoted: 131428.57, MarginAbsolute: 39428.57},
	}
	require.NoError(t, RecordQuote(req, resp))

	records, err := ListQuoteHistory(10)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].IsFeasible)
	assert.Equal(t, 131428.57, records[0].PriceQuoted)
	assert.False(t, records[0].CreatedAt.IsZero())
}
