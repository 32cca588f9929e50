package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "GRXEUR", cfg.Symbol)
	assert.Equal(t, "parquet", cfg.SaveFormat)
	assert.Equal(t, []int{5, 10, 15, 30, 60}, cfg.PredictionPeriods)
	assert.Equal(t, []int{5, 10, 15, 30, 60}, cfg.EMAPeriods)
	assert.Equal(t, 60, cfg.ZNormWindow)
	assert.Equal(t, 0.0, cfg.DirectionEpsilon)

	bounds := cfg.SplitBounds()
	require.NoError(t, bounds.Validate())
	// boundary dates include their full day
	assert.Equal(t, time.Date(2016, 12, 31, 23, 59, 59, 999000000, time.UTC), bounds.TrainEnd)
	assert.True(t, bounds.TrainEnd.Before(bounds.ValidationEnd))
}

func TestLoadConfig_Paths(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "data/raw/GRXEUR_M1", cfg.RawDir())
	assert.Equal(t, "data/bars/Bars_1m_GRXEUR", cfg.BarsDir())
	assert.Equal(t, "data/processed", cfg.ProcessedDir())
	assert.Equal(t, "data/bars/Bars_1m_GRXEUR/.lastyear.json", cfg.ProgressPath())
}

func TestLoadConfig_BadSaveFormat(t *testing.T) {
	t.Setenv("SAVE_FORMAT", "xml")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_EmptyHorizons(t *testing.T) {
	t.Setenv("PREDICTION_PERIODS", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_DescendingHorizons(t *testing.T) {
	t.Setenv("PREDICTION_PERIODS", "60,30")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_SlopeWithoutEMA(t *testing.T) {
	t.Setenv("EMA_PERIODS", "5,10")
	t.Setenv("SLOPE_PERIODS", "5,15")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slope period")
}

func TestLoadConfig_InvertedSplit(t *testing.T) {
	t.Setenv("TRAIN_END", "2018-12-31")
	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRAIN_END")
}

func TestLoadConfig_BadDate(t *testing.T) {
	t.Setenv("TEST_END", "31/12/2018")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_BadZWindow(t *testing.T) {
	t.Setenv("Z_NORM_WINDOW", "1")
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_NegativeEpsilon(t *testing.T) {
	t.Setenv("DIRECTION_EPSILON", "-0.1")
	_, err := LoadConfig()
	assert.Error(t, err)
}
