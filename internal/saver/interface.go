package saver

import (
	"strings"

	"grx-data/internal/dataset"
)

// FrameSaver là abstraction cho lưu một dataset segment (train/val/test).
// High-level (main) inject implementation; low-level (prepare flow) chỉ phụ
// thuộc interface — DIP.
type FrameSaver interface {
	Save(f *dataset.Frame, path string) error
	Extension() string
}

// NewFrameSaver creates implementation by format (csv, parquet, json).
// Returns nil if format not supported.
func NewFrameSaver(format string) FrameSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}
