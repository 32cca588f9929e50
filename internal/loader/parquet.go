package loader

import (
	"github.com/parquet-go/parquet-go"

	"grx-data/internal/model"
)

// Parquet loads bars from a tagged-struct parquet file (the ingest output).
type Parquet struct{}

func (Parquet) Name() string { return "parquet" }

func (Parquet) Load(path string) ([]model.Bar, error) {
	return parquet.ReadFile[model.Bar](path)
}
