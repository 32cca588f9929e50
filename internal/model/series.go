package model

import (
	"fmt"
	"math"
)

// Series is an ordered, validated sequence of bars. Construction via
// NewSeries is the only place raw-data quality is checked; the feature and
// target engines trust the invariants (strictly increasing timestamps,
// finite positive OHLC) and treat the series as read-only.
type Series struct {
	bars []Bar
}

// NewSeries validates bars and wraps them. The slice is retained, not
// copied; the caller must not mutate it afterwards.
func NewSeries(bars []Bar) (*Series, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("series: no bars")
	}
	for i, b := range bars {
		if i > 0 && b.Timestamp <= bars[i-1].Timestamp {
			return nil, fmt.Errorf("series: timestamp not strictly increasing at index %d (%d after %d)", i, b.Timestamp, bars[i-1].Timestamp)
		}
		for _, f := range [4]struct {
			name string
			v    float64
		}{{"open", b.Open}, {"high", b.High}, {"low", b.Low}, {"close", b.Close}} {
			if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
				return nil, fmt.Errorf("series: non-finite %s at index %d (ts=%d)", f.name, i, b.Timestamp)
			}
			if f.v <= 0 {
				return nil, fmt.Errorf("series: non-positive %s at index %d (ts=%d): %v", f.name, i, b.Timestamp, f.v)
			}
		}
	}
	return &Series{bars: bars}, nil
}

// Len returns the number of bars.
func (s *Series) Len() int { return len(s.bars) }

// At returns the bar at index i.
func (s *Series) At(i int) Bar { return s.bars[i] }

// Closes returns a fresh slice of close prices in series order.
func (s *Series) Closes() []float64 {
	closes := make([]float64, len(s.bars))
	for i, b := range s.bars {
		closes[i] = b.Close
	}
	return closes
}

// Timestamps returns a fresh slice of bar timestamps in series order.
func (s *Series) Timestamps() []int64 {
	ts := make([]int64, len(s.bars))
	for i, b := range s.bars {
		ts[i] = b.Timestamp
	}
	return ts
}
