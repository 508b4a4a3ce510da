package data

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rkotak/sectorscan/internal/scoring"
)

// FileProvider reads snapshot groups from a YAML document:
//
//	snapshots:
//	  - timestamp: 2026-08-01T00:00:00Z
//	    entries:
//	      - entity: IT
//	        symbol: "^CNXIT"
//	        values: {RSI: 55.2, RS_Rating: 1.04}
//
// Groups may appear in any order in the file; History always returns them
// oldest first.
type FileProvider struct {
	path string
}

type snapshotFile struct {
	Snapshots []snapshotGroup `yaml:"snapshots"`
}

type snapshotGroup struct {
	Timestamp time.Time       `yaml:"timestamp"`
	Entries   []snapshotEntry `yaml:"entries"`
}

type snapshotEntry struct {
	Entity string             `yaml:"entity"`
	Symbol string             `yaml:"symbol"`
	Values map[string]float64 `yaml:"values"`
}

// NewFileProvider returns a provider backed by the given YAML file. The
// file is re-read on every call, so it can be regenerated between scans.
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

// History returns every snapshot group in the file, oldest first.
func (p *FileProvider) History(ctx context.Context) ([][]scoring.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("read snapshots %s: %w", p.path, err)
	}
	var doc snapshotFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse snapshots %s: %w", p.path, err)
	}

	groups := make([]snapshotGroup, len(doc.Snapshots))
	copy(groups, doc.Snapshots)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Timestamp.Before(groups[j].Timestamp)
	})

	out := make([][]scoring.Snapshot, 0, len(groups))
	for i, g := range groups {
		if g.Timestamp.IsZero() {
			return nil, fmt.Errorf("snapshots %s: group %d has no timestamp", p.path, i)
		}
		snaps := make([]scoring.Snapshot, 0, len(g.Entries))
		for _, e := range g.Entries {
			if e.Entity == "" {
				return nil, fmt.Errorf("snapshots %s: entry without entity at %s", p.path, g.Timestamp.Format(time.RFC3339))
			}
			values := make(map[scoring.Indicator]float64, len(e.Values))
			for k, v := range e.Values {
				values[scoring.Indicator(k)] = v
			}
			snaps = append(snaps, scoring.Snapshot{
				Entity:    e.Entity,
				Symbol:    e.Symbol,
				Timestamp: g.Timestamp,
				Values:    values,
			})
		}
		out = append(out, snaps)
	}
	return out, nil
}

// Latest returns the newest snapshot group, or an empty slice when the file
// holds no groups.
func (p *FileProvider) Latest(ctx context.Context) ([]scoring.Snapshot, error) {
	history, err := p.History(ctx)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return []scoring.Snapshot{}, nil
	}
	return history[len(history)-1], nil
}
