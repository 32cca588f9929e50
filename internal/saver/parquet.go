package saver

import (
	"os"

	"github.com/parquet-go/parquet-go"

	"grx-data/internal/dataset"
	"grx-data/internal/model"
)

// ParquetSaver lưu dataset segment dưới dạng Parquet. The schema is built
// from the frame's column list at save time, since feature and target
// columns depend on configuration.
type ParquetSaver struct{}

func (ParquetSaver) Extension() string { return "parquet" }

func (ParquetSaver) Save(f *dataset.Frame, path string) error {
	group := parquet.Group{"timestamp": parquet.Leaf(parquet.Int64Type)}
	for _, c := range f.Columns {
		group[c] = parquet.Leaf(parquet.DoubleType)
	}
	schema := parquet.NewSchema("dataset", group)

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	w := parquet.NewGenericWriter[map[string]any](out, schema)
	rows := make([]map[string]any, len(f.Rows))
	for i, row := range f.Rows {
		m := make(map[string]any, len(f.Columns)+1)
		m["timestamp"] = f.Timestamps[i]
		for j, c := range f.Columns {
			m[c] = row[j]
		}
		rows[i] = m
	}
	if _, err := w.Write(rows); err != nil {
		return err
	}
	return w.Close()
}

// WriteBars writes a bar slice as a tagged-struct parquet file (ingest
// output, prepare input).
func WriteBars(path string, bars []model.Bar) error {
	return parquet.WriteFile(path, bars)
}
