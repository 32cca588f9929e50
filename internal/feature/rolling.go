package feature

import "math"

// EMA is a recursive exponential moving average with alpha = 2/(period+1),
// seeded with the first absorbed value. Value at step i depends only on
// steps <= i, so the recursion must stay sequential in time.
type EMA struct {
	alpha  float64
	value  float64
	seeded bool
}

// NewEMA creates an EMA state for the given period in bars.
func NewEMA(period int) *EMA {
	return &EMA{alpha: 2.0 / (float64(period) + 1.0)}
}

// Update absorbs the next value and returns the current EMA.
func (e *EMA) Update(v float64) float64 {
	if !e.seeded {
		e.value = v
		e.seeded = true
		return e.value
	}
	e.value = e.alpha*v + (1-e.alpha)*e.value
	return e.value
}

// Window is a fixed-size trailing window over the most recent values,
// including the current one. Mean is defined from the first value on;
// Std (sample, ddof=1) is only defined once the window is full.
type Window struct {
	buf   []float64
	next  int
	count int
}

// NewWindow creates a trailing window of the given size (>= 2).
func NewWindow(size int) *Window {
	return &Window{buf: make([]float64, size)}
}

// Push absorbs the next value, evicting the oldest when full.
func (w *Window) Push(v float64) {
	w.buf[w.next] = v
	w.next = (w.next + 1) % len(w.buf)
	if w.count < len(w.buf) {
		w.count++
	}
}

// Full reports whether the window holds its full complement of values.
func (w *Window) Full() bool { return w.count == len(w.buf) }

// Mean returns the mean of the held values. Panics if empty.
func (w *Window) Mean() float64 {
	var sum float64
	for i := 0; i < w.count; i++ {
		sum += w.buf[i]
	}
	return sum / float64(w.count)
}

// Std returns the sample standard deviation of the held values.
// Recomputed from the buffer each call; no incremental sums, so repeated
// runs over the same input are bit-identical.
func (w *Window) Std() float64 {
	if w.count < 2 {
		return math.NaN()
	}
	m := w.Mean()
	var ss float64
	for i := 0; i < w.count; i++ {
		d := w.buf[i] - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(w.count-1))
}
