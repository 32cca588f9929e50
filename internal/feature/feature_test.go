package feature

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grx-data/internal/model"
)

func defaultConfig() Config {
	return Config{
		EMAPeriods:   []int{5, 10, 15, 30, 60},
		SlopePeriods: []int{5, 10, 15, 30, 60},
		ZNormWindow:  60,
	}
}

func minuteBars(closes []float64) []model.Bar {
	start := time.Date(2015, 3, 2, 9, 0, 0, 0, time.UTC) // a Monday
	bars := make([]model.Bar, len(closes))
	for i, c := range closes {
		bars[i] = model.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Minute).UnixMilli(),
			Open:      c, High: c + 1, Low: c - 1, Close: c,
		}
	}
	return bars
}

func mustSeries(t *testing.T, closes []float64) *model.Series {
	t.Helper()
	s, err := model.NewSeries(minuteBars(closes))
	require.NoError(t, err)
	return s
}

func constCloses(v float64, n int) []float64 {
	c := make([]float64, n)
	for i := range c {
		c[i] = v
	}
	return c
}

func TestConfig_Names_Count(t *testing.T) {
	names := defaultConfig().Names()
	assert.Len(t, names, 27)
	assert.Equal(t, "price_normalized", names[0])
	assert.Equal(t, "return_1m", names[1])
	assert.Equal(t, "ema_5m_normalized", names[2])
	assert.Equal(t, "ema_5m_z", names[3])
	assert.Equal(t, "slope_ema_5m_normalized", names[12])
	assert.Equal(t, "slope2_ema_5m_normalized", names[13])
	assert.Equal(t, []string{"price_z", "price_range", "minute_of_day", "day_of_week", "hour_of_day"}, names[22:])
}

func TestConfig_Validate(t *testing.T) {
	assert.Error(t, Config{ZNormWindow: 60}.Validate())
	assert.Error(t, Config{EMAPeriods: []int{0}, ZNormWindow: 60}.Validate())
	assert.Error(t, Config{EMAPeriods: []int{5}, SlopePeriods: []int{10}, ZNormWindow: 60}.Validate())
	assert.Error(t, Config{EMAPeriods: []int{5}, ZNormWindow: 1}.Validate())
	assert.NoError(t, Config{EMAPeriods: []int{5}, SlopePeriods: []int{5}, ZNormWindow: 2}.Validate())
}

// A constant close series must keep every EMA pinned at the seed value:
// seeding uses the first close, so there is no drift and no warm-up hole.
func TestEMA_SeededAtFirstClose_NoDrift(t *testing.T) {
	for _, period := range []int{5, 10, 60} {
		ema := NewEMA(period)
		for i := 0; i < 3*period; i++ {
			assert.Equal(t, 50.0, ema.Update(50.0), "period %d step %d", period, i)
		}
	}
}

func TestEMA_Recursion(t *testing.T) {
	ema := NewEMA(5) // alpha = 1/3
	assert.Equal(t, 100.0, ema.Update(100))
	assert.InDelta(t, 100.0+1.0/3.0*(103.0-100.0), ema.Update(103), 1e-12)
}

func TestWindow_StdUndefinedUntilFull(t *testing.T) {
	w := NewWindow(3)
	w.Push(1)
	assert.False(t, w.Full())
	assert.True(t, math.IsNaN(w.Std()))
	w.Push(2)
	w.Push(3)
	assert.True(t, w.Full())
	assert.Equal(t, 2.0, w.Mean())
	assert.InDelta(t, 1.0, w.Std(), 1e-12) // sample std of 1,2,3
	w.Push(4)                              // evicts 1
	assert.Equal(t, 3.0, w.Mean())
}

func TestCompute_WarmupMissing(t *testing.T) {
	cfg := Config{EMAPeriods: []int{3}, SlopePeriods: []int{3}, ZNormWindow: 4}
	res, err := Compute(mustSeries(t, []float64{100, 101, 102, 103, 104, 105}), cfg)
	require.NoError(t, err)
	require.Len(t, res.Rows, 6)

	idx := make(map[string]int)
	for i, n := range res.Names {
		idx[n] = i
	}

	assert.False(t, res.Rows[0][idx["return_1m"]].Valid)
	assert.True(t, res.Rows[1][idx["return_1m"]].Valid)
	assert.InDelta(t, 0.01, res.Rows[1][idx["return_1m"]].Value, 1e-12)

	// z-scores undefined until the window holds 4 observations.
	for i := 0; i < 3; i++ {
		assert.False(t, res.Rows[i][idx["price_z"]].Valid, "row %d", i)
		assert.False(t, res.Rows[i][idx["ema_3m_z"]].Valid, "row %d", i)
	}
	assert.True(t, res.Rows[3][idx["price_z"]].Valid)
	assert.True(t, res.Rows[3][idx["ema_3m_z"]].Valid)

	// slope undefined at bar 0, slope2 until bar 2.
	assert.False(t, res.Rows[0][idx["slope_ema_3m_normalized"]].Valid)
	assert.True(t, res.Rows[1][idx["slope_ema_3m_normalized"]].Valid)
	assert.False(t, res.Rows[1][idx["slope2_ema_3m_normalized"]].Valid)
	assert.True(t, res.Rows[2][idx["slope2_ema_3m_normalized"]].Valid)

	// never-missing columns defined from the first bar.
	for _, name := range []string{"price_normalized", "ema_3m_normalized", "price_range", "minute_of_day", "day_of_week", "hour_of_day"} {
		assert.True(t, res.Rows[0][idx[name]].Valid, name)
	}
}

func TestCompute_TimeFeatures(t *testing.T) {
	res, err := Compute(mustSeries(t, constCloses(100, 2)), Config{EMAPeriods: []int{5}, ZNormWindow: 2})
	require.NoError(t, err)
	idx := make(map[string]int)
	for i, n := range res.Names {
		idx[n] = i
	}
	// bars start 2015-03-02 09:00 UTC, a Monday.
	assert.Equal(t, 540.0, res.Rows[0][idx["minute_of_day"]].Value)
	assert.Equal(t, 0.0, res.Rows[0][idx["day_of_week"]].Value)
	assert.Equal(t, 9.0, res.Rows[0][idx["hour_of_day"]].Value)
	assert.Equal(t, 541.0, res.Rows[1][idx["minute_of_day"]].Value)
}

// Causality: mutating any bar after index t must not change the feature
// row at t.
func TestCompute_Causal(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109}
	cfg := Config{EMAPeriods: []int{3, 5}, SlopePeriods: []int{3, 5}, ZNormWindow: 4}

	base, err := Compute(mustSeries(t, closes), cfg)
	require.NoError(t, err)

	for cut := 1; cut < len(closes); cut++ {
		mutated := append([]float64{}, closes...)
		mutated[cut] = 999.0
		got, err := Compute(mustSeries(t, mutated), cfg)
		require.NoError(t, err)
		for i := 0; i < cut; i++ {
			assert.Equal(t, base.Rows[i], got.Rows[i], "cut=%d row=%d", cut, i)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	closes := []float64{100, 102, 101, 103, 105, 104, 106, 108, 107, 109}
	cfg := defaultConfig()
	a, err := Compute(mustSeries(t, closes), cfg)
	require.NoError(t, err)
	b, err := Compute(mustSeries(t, closes), cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func BenchmarkCompute(b *testing.B) {
	closes := make([]float64, 100_000)
	for i := range closes {
		closes[i] = 6000 + math.Sin(float64(i)/100)*50
	}
	s, err := model.NewSeries(minuteBars(closes))
	if err != nil {
		b.Fatal(err)
	}
	cfg := defaultConfig()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Compute(s, cfg); err != nil {
			b.Fatal(err)
		}
	}
}
