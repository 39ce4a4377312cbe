package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func initTestDB(t *testing.T) {
	t.Helper()
	require.NoError(t, InitDB(filepath.Join(t.TempDir(), "bot.db")))
	t.Cleanup(func() { CloseDB() })
}

func TestAlertLogRoundTrip(t *testing.T) {
	initTestDB(t)

	require.NoError(t, InsertAlertLog(AlertLogEntry{
		Symbol:       "SAP.DE",
		CompanyName:  "SAP SE",
		DeltaPct:     -0.6,
		Direction:    "down",
		Price:        99.4,
		Currency:     "EUR",
		ThresholdAbs: 0.5,
	}))
	require.NoError(t, InsertAlertLog(AlertLogEntry{
		Symbol:       "AAPL",
		CompanyName:  "Apple Inc.",
		DeltaPct:     1.2,
		Direction:    "up",
		Price:        231.59,
		Currency:     "USD",
		ThresholdAbs: 1,
	}))

	entries, err := GetRecentAlerts(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	assert.Equal(t, "AAPL", entries[0].Symbol)
	assert.Equal(t, "up", entries[0].Direction)
	assert.Equal(t, "SAP.DE", entries[1].Symbol)
	assert.InDelta(t, -0.6, entries[1].DeltaPct, 1e-9)
}

func TestGetRecentAlertsRespectsLimit(t *testing.T) {
	initTestDB(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, InsertAlertLog(AlertLogEntry{
			Symbol: "AAPL", CompanyName: "Apple Inc.", Direction: "up", Currency: "USD",
		}))
	}

	entries, err := GetRecentAlerts(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestMetricsRoundTrip(t *testing.T) {
	initTestDB(t)

	value, err := GetMetric("alerts_sent")
	require.NoError(t, err)
	assert.Zero(t, value)

	require.NoError(t, SaveMetric("alerts_sent", 42))
	value, err = GetMetric("alerts_sent")
	require.NoError(t, err)
	assert.Equal(t, 42.0, value)

	require.NoError(t, SaveMetric("alerts_sent", 43))
	value, err = GetMetric("alerts_sent")
	require.NoError(t, err)
	assert.Equal(t, 43.0, value)
}
