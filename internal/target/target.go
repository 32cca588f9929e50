// Package target derives forward-looking trend labels. The label at bar i
// uses the close prices at bars (i, i+h] only, never bar i itself or
// anything earlier, so it can be predicted from causal features without
// leakage.
package target

import (
	"fmt"
	"math"
	"sync"

	"grx-data/internal/model"
)

// Direction is the three-class trend label. Flat is a literal third
// class, not folded into up/down.
type Direction int8

const (
	Down Direction = -1
	Flat Direction = 0
	Up   Direction = 1
)

// OptDirection is an optional Direction, undefined where the trend slope
// itself is undefined.
type OptDirection struct {
	Value Direction
	Valid bool
}

// Config selects the horizons and the flat-band epsilon.
type Config struct {
	Horizons []int
	// Epsilon widens the flat band around zero: |normalized slope| <= Epsilon
	// classifies as Flat. Zero means exact-zero slopes only.
	Epsilon float64
}

// Validate fails fast on configuration errors.
func (c Config) Validate() error {
	if len(c.Horizons) == 0 {
		return fmt.Errorf("target: no horizons")
	}
	for i, h := range c.Horizons {
		if h <= 0 {
			return fmt.Errorf("target: horizon must be positive, got %d", h)
		}
		if i > 0 && h <= c.Horizons[i-1] {
			return fmt.Errorf("target: horizons must be strictly ascending, got %d after %d", h, c.Horizons[i-1])
		}
	}
	if c.Epsilon < 0 || math.IsNaN(c.Epsilon) {
		return fmt.Errorf("target: epsilon must be >= 0, got %v", c.Epsilon)
	}
	return nil
}

// Columns holds the two label series for one horizon.
type Columns struct {
	Horizon   int
	Trend     []model.OptFloat // normalized OLS slope
	Direction []OptDirection
}

// TrendName returns the trend column name for horizon h.
func TrendName(h int) string { return fmt.Sprintf("target_trend_%dm", h) }

// DirectionName returns the direction column name for horizon h.
func DirectionName(h int) string { return fmt.Sprintf("target_direction_%dm", h) }

// Compute labels every bar for every horizon. Horizons are independent and
// run in parallel, each goroutine writing only its own Columns; the series
// is shared read-only.
func Compute(s *model.Series, cfg Config) ([]Columns, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	closes := s.Closes()
	out := make([]Columns, len(cfg.Horizons))

	var wg sync.WaitGroup
	wg.Add(len(cfg.Horizons))
	for i, h := range cfg.Horizons {
		go func(i, h int) {
			defer wg.Done()
			out[i] = computeHorizon(closes, h, cfg.Epsilon)
		}(i, h)
	}
	wg.Wait()

	return out, nil
}

func computeHorizon(closes []float64, h int, eps float64) Columns {
	n := len(closes)
	c := Columns{
		Horizon:   h,
		Trend:     make([]model.OptFloat, n),
		Direction: make([]OptDirection, n),
	}
	for i := 0; i < n; i++ {
		// Window of h strictly-future closes. Fewer than h future bars, or
		// a degenerate single-point window, means undefined, not an error.
		if i+h >= n || h < 2 {
			continue
		}
		ns, ok := NormalizedSlope(closes[i+1 : i+1+h])
		if !ok {
			continue
		}
		c.Trend[i] = model.Some(ns)
		c.Direction[i] = OptDirection{Value: Classify(ns, eps), Valid: true}
	}
	return c
}

// NormalizedSlope fits an ordinary least-squares line of y against the
// index 0..len(y)-1 and divides the slope by mean(y). Returns false when
// the window cannot be regressed (fewer than 2 points) or the mean is
// zero or non-finite.
func NormalizedSlope(y []float64) (float64, bool) {
	h := len(y)
	if h < 2 {
		return 0, false
	}
	xMean := float64(h-1) / 2.0
	var yMean float64
	for _, v := range y {
		yMean += v
	}
	yMean /= float64(h)
	if yMean == 0 || math.IsNaN(yMean) || math.IsInf(yMean, 0) {
		return 0, false
	}
	var num, den float64
	for i, v := range y {
		xc := float64(i) - xMean
		num += xc * (v - yMean)
		den += xc * xc
	}
	return (num / den) / yMean, true
}

// Classify maps a normalized slope to the three-class direction. Slopes
// within [-eps, eps] are Flat.
func Classify(ns, eps float64) Direction {
	switch {
	case ns > eps:
		return Up
	case ns < -eps:
		return Down
	default:
		return Flat
	}
}
