package model

// OptFloat is an optional float64. Warm-up features and end-of-series
// targets are undefined, not zero; a sentinel value would collide with
// legitimate zeros (a flat slope is exactly 0).
type OptFloat struct {
	Value float64
	Valid bool
}

// Some wraps a defined value.
func Some(v float64) OptFloat { return OptFloat{Value: v, Valid: true} }

// None is the undefined value.
func None() OptFloat { return OptFloat{} }
