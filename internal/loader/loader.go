// Package loader reads raw bar files. It is the boundary collaborator of
// the core: everything downstream trusts model.NewSeries to have validated
// what comes out of here.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"grx-data/internal/model"
)

// BarLoader is the abstraction used by the application when reading a bar
// source. Implementations own their format-specific parsing.
type BarLoader interface {
	Name() string
	Load(path string) ([]model.Bar, error)
}

// ForPath picks a loader by file extension (.parquet or .csv).
func ForPath(path string) (BarLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return Parquet{}, nil
	case ".csv":
		return ASCII{}, nil
	default:
		return nil, fmt.Errorf("loader: unsupported bar file extension %q (use: .parquet, .csv)", filepath.Ext(path))
	}
}
