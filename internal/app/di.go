package app

import (
	"fmt"

	"grx-data/internal/saver"
)

// App holds application dependencies built by Wire.
type App struct {
	Config *Config
	Saver  saver.FrameSaver
}

// ProvideConfig loads config from environment (for Wire).
func ProvideConfig() (*Config, error) {
	return LoadConfig()
}

// ProvideFrameSaver creates FrameSaver from config (for Wire).
// Returns error if SaveFormat is not supported.
func ProvideFrameSaver(cfg *Config) (saver.FrameSaver, error) {
	fs := saver.NewFrameSaver(cfg.SaveFormat)
	if fs == nil {
		return nil, fmt.Errorf("unsupported SAVE_FORMAT %q (use: csv, parquet, json)", cfg.SaveFormat)
	}
	return fs, nil
}
