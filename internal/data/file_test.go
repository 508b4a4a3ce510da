package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkotak/sectorscan/internal/scoring"
)

func writeSnapshots(t *testing.T, body string) *FileProvider {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snapshots.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return NewFileProvider(path)
}

const sampleDoc = `
snapshots:
  - timestamp: 2026-08-15T00:00:00Z
    entries:
      - entity: IT
        symbol: "^CNXIT"
        values: {RSI: 61.0, RS_Rating: 1.08}
      - entity: Pharma
        symbol: "^CNXPHARMA"
        values: {RSI: 48.5, RS_Rating: 0.97}
  - timestamp: 2026-08-01T00:00:00Z
    entries:
      - entity: IT
        symbol: "^CNXIT"
        values: {RSI: 55.2}
`

func TestHistoryOldestFirst(t *testing.T) {
	p := writeSnapshots(t, sampleDoc)
	history, err := p.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0][0].Timestamp.Before(history[1][0].Timestamp))
	assert.Len(t, history[0], 1)
	assert.Len(t, history[1], 2)
}

func TestLatestIsNewestGroup(t *testing.T) {
	p := writeSnapshots(t, sampleDoc)
	latest, err := p.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, latest, 2)
	assert.Equal(t, "IT", latest[0].Entity)
	v, ok := latest[0].Value(scoring.RSI)
	require.True(t, ok)
	assert.InDelta(t, 61.0, v, 1e-12)
	assert.Equal(t, "2026-08-15", latest[0].Timestamp.Format("2006-01-02"))
}

func TestLatestEmptyFile(t *testing.T) {
	p := writeSnapshots(t, "snapshots: []\n")
	latest, err := p.Latest(context.Background())
	require.NoError(t, err)
	assert.Empty(t, latest)
}

func TestHistoryRejectsMissingTimestamp(t *testing.T) {
	p := writeSnapshots(t, `
snapshots:
  - entries:
      - entity: IT
        values: {RSI: 50}
`)
	_, err := p.History(context.Background())
	require.Error(t, err)
}

func TestHistoryRejectsMissingEntity(t *testing.T) {
	p := writeSnapshots(t, `
snapshots:
  - timestamp: 2026-08-01T00:00:00Z
    entries:
      - symbol: "^CNXIT"
        values: {RSI: 50}
`)
	_, err := p.History(context.Background())
	require.Error(t, err)
}

func TestHistoryMissingFile(t *testing.T) {
	p := NewFileProvider(filepath.Join(t.TempDir(), "absent.yaml"))
	_, err := p.History(context.Background())
	require.Error(t, err)
}

func TestHistoryCancelledContext(t *testing.T) {
	p := writeSnapshots(t, sampleDoc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.History(ctx)
	require.Error(t, err)
}
