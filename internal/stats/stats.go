// Package stats produces the descriptive statistics used to sanity-check a
// bar series before preparation: per-column summaries, 1-minute return
// extremes and gap counts. Pure computation; printing stays in the caller.
package stats

import (
	"math"
	"sort"

	"grx-data/internal/model"
)

// ColumnStats is a describe()-style summary of one numeric column.
type ColumnStats struct {
	Name  string
	Count int
	Mean  float64
	Std   float64
	Min   float64
	Max   float64
}

// Extreme is one 1-minute return outlier.
type Extreme struct {
	Timestamp int64
	Return    float64
}

func describeColumn(name string, values []float64) ColumnStats {
	c := ColumnStats{Name: name, Count: len(values), Min: math.Inf(1), Max: math.Inf(-1)}
	if len(values) == 0 {
		c.Min, c.Max = math.NaN(), math.NaN()
		return c
	}
	var sum float64
	for _, v := range values {
		sum += v
		if v < c.Min {
			c.Min = v
		}
		if v > c.Max {
			c.Max = v
		}
	}
	c.Mean = sum / float64(len(values))
	if len(values) > 1 {
		var ss float64
		for _, v := range values {
			d := v - c.Mean
			ss += d * d
		}
		c.Std = math.Sqrt(ss / float64(len(values)-1))
	}
	return c
}

// returns1m computes simple close-to-close returns (length n-1).
func returns1m(s *model.Series) []float64 {
	out := make([]float64, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		prev := s.At(i - 1).Close
		out = append(out, (s.At(i).Close-prev)/prev)
	}
	return out
}

// Describe summarizes OHLCV plus the 1-minute return distribution.
func Describe(s *model.Series) []ColumnStats {
	n := s.Len()
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	volume := make([]float64, n)
	for i := 0; i < n; i++ {
		b := s.At(i)
		open[i], high[i], low[i], closes[i], volume[i] = b.Open, b.High, b.Low, b.Close, b.Volume
	}
	return []ColumnStats{
		describeColumn("open", open),
		describeColumn("high", high),
		describeColumn("low", low),
		describeColumn("close", closes),
		describeColumn("volume", volume),
		describeColumn("return_1m", returns1m(s)),
	}
}

// TopReturns returns the k largest positive and k largest negative
// 1-minute returns with their timestamps.
func TopReturns(s *model.Series, k int) (largest, smallest []Extreme) {
	ext := make([]Extreme, 0, s.Len()-1)
	for i := 1; i < s.Len(); i++ {
		prev := s.At(i - 1).Close
		ext = append(ext, Extreme{
			Timestamp: s.At(i).Timestamp,
			Return:    (s.At(i).Close - prev) / prev,
		})
	}
	sorted := append([]Extreme{}, ext...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Return > sorted[j].Return })
	if k > len(sorted) {
		k = len(sorted)
	}
	largest = append(largest, sorted[:k]...)
	smallest = append(smallest, sorted[len(sorted)-k:]...)
	// smallest ascending by return (most negative first)
	sort.Slice(smallest, func(i, j int) bool { return smallest[i].Return < smallest[j].Return })
	return largest, smallest
}

// GapCount counts consecutive-bar gaps larger than one minute
// (non-trading periods; permitted by the series contract).
func GapCount(s *model.Series) int {
	const minuteMs = 60_000
	var gaps int
	for i := 1; i < s.Len(); i++ {
		if s.At(i).Timestamp-s.At(i-1).Timestamp > minuteMs {
			gaps++
		}
	}
	return gaps
}
