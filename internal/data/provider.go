// Package data supplies indicator snapshots to the scan pipeline. The
// pipeline itself never touches files or the network; it consumes whatever
// a Provider hands it.
package data

import (
	"context"

	"github.com/rkotak/sectorscan/internal/scoring"
)

// Provider yields pre-computed indicator snapshots. Latest returns the most
// recent snapshot group; History returns every group ordered oldest first.
type Provider interface {
	Latest(ctx context.Context) ([]scoring.Snapshot, error)
	History(ctx context.Context) ([][]scoring.Snapshot, error)
}
