// Package feature derives causal technical features from an OHLC series.
// Every value at bar i is computed from bars <= i only; forward-looking
// information never enters here (that is the target package's side).
package feature

import (
	"fmt"

	"grx-data/internal/model"
)

// denomEps keeps ratio denominators away from exact zero. Matches the
// 1e-8 used for the rolling-std denominator in z-scores.
const denomEps = 1e-8

// Config selects the feature set. EMA periods double as smoothing windows;
// slope periods must reference computed EMAs.
type Config struct {
	EMAPeriods   []int
	SlopePeriods []int
	ZNormWindow  int
}

// Validate fails fast on configuration errors, before any computation.
func (c Config) Validate() error {
	if len(c.EMAPeriods) == 0 {
		return fmt.Errorf("feature: no EMA periods")
	}
	for _, p := range c.EMAPeriods {
		if p <= 0 {
			return fmt.Errorf("feature: EMA period must be positive, got %d", p)
		}
	}
	ema := make(map[int]bool, len(c.EMAPeriods))
	for _, p := range c.EMAPeriods {
		ema[p] = true
	}
	for _, p := range c.SlopePeriods {
		if !ema[p] {
			return fmt.Errorf("feature: slope period %d has no matching EMA period", p)
		}
	}
	if c.ZNormWindow < 2 {
		return fmt.Errorf("feature: z-norm window must be >= 2, got %d", c.ZNormWindow)
	}
	return nil
}

// Names returns the ordered feature column names for this config.
// The order is fixed and is what lands in features.txt.
func (c Config) Names() []string {
	names := []string{"price_normalized", "return_1m"}
	for _, p := range c.EMAPeriods {
		names = append(names, fmt.Sprintf("ema_%dm_normalized", p), fmt.Sprintf("ema_%dm_z", p))
	}
	for _, p := range c.SlopePeriods {
		names = append(names, fmt.Sprintf("slope_ema_%dm_normalized", p), fmt.Sprintf("slope2_ema_%dm_normalized", p))
	}
	names = append(names, "price_z", "price_range", "minute_of_day", "day_of_week", "hour_of_day")
	return names
}

// Result holds one feature row per bar, aligned with Names.
type Result struct {
	Names []string
	Rows  [][]model.OptFloat
}

// emaTrack is the per-period recursive state: the EMA itself plus the
// previous EMA and previous first-order slope for the diff features, and
// the trailing window for the z-score.
type emaTrack struct {
	period    int
	ema       *EMA
	win       *Window
	prevEMA   float64
	prevSlope float64
}

// Compute runs one forward pass over the series. Deterministic: no
// randomness, no second pass, bit-identical output on identical input.
func Compute(s *model.Series, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	names := cfg.Names()
	n := s.Len()
	rows := make([][]model.OptFloat, n)

	priceWin := NewWindow(cfg.ZNormWindow)
	tracks := make([]*emaTrack, len(cfg.EMAPeriods))
	for i, p := range cfg.EMAPeriods {
		tracks[i] = &emaTrack{period: p, ema: NewEMA(p), win: NewWindow(cfg.ZNormWindow)}
	}
	slopeIdx := make([]int, len(cfg.SlopePeriods))
	for i, p := range cfg.SlopePeriods {
		for j, t := range tracks {
			if t.period == p {
				slopeIdx[i] = j
			}
		}
	}

	prevClose := 0.0
	for i := 0; i < n; i++ {
		b := s.At(i)
		row := make([]model.OptFloat, 0, len(names))

		// Rolling windows include the current bar, same as a trailing
		// pandas rolling(window).
		priceWin.Push(b.Close)

		// price_normalized: rolling mean defined from the first bar on.
		row = append(row, model.Some(b.Close/priceWin.Mean()-1.0))

		// return_1m: undefined at the first bar.
		if i == 0 {
			row = append(row, model.None())
		} else {
			row = append(row, model.Some((b.Close-prevClose)/prevClose))
		}

		// EMA block: normalized ratio + rolling z-score per period.
		for _, t := range tracks {
			v := t.ema.Update(b.Close)
			t.win.Push(v)
			row = append(row, model.Some(v/b.Close-1.0))
			if t.win.Full() {
				row = append(row, model.Some((v-t.win.Mean())/(t.win.Std()+denomEps)))
			} else {
				row = append(row, model.None())
			}
		}

		// Slope block: first and second EMA differences, price-normalized.
		for _, j := range slopeIdx {
			t := tracks[j]
			cur := t.ema.value
			if i == 0 {
				row = append(row, model.None(), model.None())
				t.prevEMA = cur
				continue
			}
			slope := cur - t.prevEMA
			row = append(row, model.Some(slope/(b.Close+denomEps)))
			if i == 1 {
				row = append(row, model.None())
			} else {
				row = append(row, model.Some((slope-t.prevSlope)/(b.Close+denomEps)))
			}
			t.prevEMA = cur
			t.prevSlope = slope
		}

		// price_z over the same trailing close window.
		if priceWin.Full() {
			row = append(row, model.Some((b.Close-priceWin.Mean())/(priceWin.Std()+denomEps)))
		} else {
			row = append(row, model.None())
		}

		// price_range and intraday time features.
		row = append(row, model.Some((b.High-b.Low)/(b.Close+denomEps)))
		ts := b.Time()
		row = append(row,
			model.Some(float64(ts.Hour()*60+ts.Minute())),
			model.Some(float64((int(ts.Weekday())+6)%7)), // 0=Monday .. 6=Sunday
			model.Some(float64(ts.Hour())),
		)

		rows[i] = row
		prevClose = b.Close
	}

	return &Result{Names: names, Rows: rows}, nil
}
