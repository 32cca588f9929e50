package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"grx-data/internal/dataset"
	"grx-data/internal/feature"
	"grx-data/internal/target"
)

// Config holds application configuration from env (.env supported).
type Config struct {
	Symbol        string `envconfig:"SYMBOL" default:"GRXEUR" validate:"required"`
	DataDir       string `envconfig:"DATA_DIR" default:"data" validate:"required"`
	BarsFile      string `envconfig:"BARS_FILE"` // explicit bar file; otherwise resolved from BarsDir
	SaveFormat    string `envconfig:"SAVE_FORMAT" default:"parquet" validate:"oneof=csv parquet json"`
	LogLevel      string `envconfig:"LOG_LEVEL" default:"info"` // debug | info | warn | error
	IngestWorkers int    `envconfig:"INGEST_WORKERS" default:"4" validate:"gte=1"`

	PredictionPeriods []int   `envconfig:"PREDICTION_PERIODS" default:"5,10,15,30,60" validate:"min=1,dive,gt=0"`
	EMAPeriods        []int   `envconfig:"EMA_PERIODS" default:"5,10,15,30,60" validate:"min=1,dive,gt=0"`
	SlopePeriods      []int   `envconfig:"SLOPE_PERIODS" default:"5,10,15,30,60" validate:"dive,gt=0"`
	ZNormWindow       int     `envconfig:"Z_NORM_WINDOW" default:"60" validate:"gte=2"`
	DirectionEpsilon  float64 `envconfig:"DIRECTION_EPSILON" default:"0" validate:"gte=0"`

	TrainEnd      string `envconfig:"TRAIN_END" default:"2016-12-31" validate:"required,datetime=2006-01-02"`
	ValidationEnd string `envconfig:"VALIDATION_END" default:"2017-12-31" validate:"required,datetime=2006-01-02"`
	TestEnd       string `envconfig:"TEST_END" default:"2018-12-31" validate:"required,datetime=2006-01-02"`
}

// LoadConfig reads config from environment and fails fast on anything the
// engines would later reject: empty horizon lists, inverted split ranges,
// slope periods without a matching EMA.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.FeatureConfig().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.TargetConfig().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.SplitBounds().Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// RawDir returns the directory of provider ASCII files, e.g. data/raw/GRXEUR_M1.
func (c *Config) RawDir() string {
	return filepath.Join(c.DataDir, "raw", c.Symbol+"_M1")
}

// BarsDir returns the directory of ingested parquet bar files.
func (c *Config) BarsDir() string {
	return filepath.Join(c.DataDir, "bars", "Bars_1m_"+c.Symbol)
}

// ProcessedDir returns the directory of train/validation/test outputs.
func (c *Config) ProcessedDir() string {
	return filepath.Join(c.DataDir, "processed")
}

// ProgressPath returns the ingest checkpoint path (.lastyear.json).
func (c *Config) ProgressPath() string {
	return filepath.Join(c.BarsDir(), ".lastyear.json")
}

// FeatureConfig maps config onto the feature engine.
func (c *Config) FeatureConfig() feature.Config {
	return feature.Config{
		EMAPeriods:   c.EMAPeriods,
		SlopePeriods: c.SlopePeriods,
		ZNormWindow:  c.ZNormWindow,
	}
}

// TargetConfig maps config onto the target engine.
func (c *Config) TargetConfig() target.Config {
	return target.Config{
		Horizons: c.PredictionPeriods,
		Epsilon:  c.DirectionEpsilon,
	}
}

// SplitBounds parses the three boundary dates; each is inclusive of its
// whole calendar day.
func (c *Config) SplitBounds() dataset.SplitBounds {
	return dataset.SplitBounds{
		TrainEnd:      endOfDay(c.TrainEnd),
		ValidationEnd: endOfDay(c.ValidationEnd),
		TestEnd:       endOfDay(c.TestEnd),
	}
}

// endOfDay parses a YYYY-MM-DD date and moves it to the last millisecond
// of that day (UTC), so boundary dates include their own trading day.
// Format errors are caught by the validator before this runs.
func endOfDay(date string) time.Time {
	d, _ := time.ParseInLocation("2006-01-02", date, time.UTC)
	return d.Add(24*time.Hour - time.Millisecond)
}
