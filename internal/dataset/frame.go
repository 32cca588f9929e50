// Package dataset merges bars, features and targets into flat tables and
// performs the leakage-safe chronological split.
package dataset

import (
	"fmt"

	"grx-data/internal/feature"
	"grx-data/internal/model"
	"grx-data/internal/target"
)

// Frame is a flat table: one timestamp plus one float64 per column per
// row. Only complete rows make it into a Frame: the assembler drops any
// row with a missing feature or target, never imputes.
type Frame struct {
	// Columns is the ordered column list after timestamp:
	// open, high, low, close, features (in features.txt order), targets.
	Columns    []string
	Timestamps []int64
	Rows       [][]float64
}

// Len returns the number of rows.
func (f *Frame) Len() int { return len(f.Rows) }

// DropStats reports how many rows the assembler kept vs dropped, so a
// silently large data loss is observable.
type DropStats struct {
	Total   int
	Kept    int
	Dropped int
}

// DroppedPct returns the dropped share in percent.
func (d DropStats) DroppedPct() float64 {
	if d.Total == 0 {
		return 0
	}
	return float64(d.Dropped) / float64(d.Total) * 100
}

// Assemble merges the series with its feature and target columns by bar
// index (all three are keyed by the same timestamps) and drops incomplete
// rows whole.
func Assemble(s *model.Series, feats *feature.Result, targets []target.Columns) (*Frame, DropStats, error) {
	n := s.Len()
	if len(feats.Rows) != n {
		return nil, DropStats{}, fmt.Errorf("dataset: feature rows (%d) do not match series length (%d)", len(feats.Rows), n)
	}
	for _, tc := range targets {
		if len(tc.Trend) != n || len(tc.Direction) != n {
			return nil, DropStats{}, fmt.Errorf("dataset: target columns for horizon %d do not match series length (%d)", tc.Horizon, n)
		}
	}

	columns := []string{"open", "high", "low", "close"}
	columns = append(columns, feats.Names...)
	for _, tc := range targets {
		columns = append(columns, target.TrendName(tc.Horizon), target.DirectionName(tc.Horizon))
	}

	f := &Frame{Columns: columns}
	stats := DropStats{Total: n}

rows:
	for i := 0; i < n; i++ {
		for _, v := range feats.Rows[i] {
			if !v.Valid {
				continue rows
			}
		}
		for _, tc := range targets {
			if !tc.Trend[i].Valid || !tc.Direction[i].Valid {
				continue rows
			}
		}

		b := s.At(i)
		row := make([]float64, 0, len(columns))
		row = append(row, b.Open, b.High, b.Low, b.Close)
		for _, v := range feats.Rows[i] {
			row = append(row, v.Value)
		}
		for _, tc := range targets {
			row = append(row, tc.Trend[i].Value, float64(tc.Direction[i].Value))
		}
		f.Timestamps = append(f.Timestamps, b.Timestamp)
		f.Rows = append(f.Rows, row)
	}

	stats.Kept = f.Len()
	stats.Dropped = stats.Total - stats.Kept
	return f, stats, nil
}
