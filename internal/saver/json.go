package saver

import (
	"encoding/json"
	"os"

	"grx-data/internal/dataset"
)

// JSONSaver lưu dataset segment dưới dạng JSON (array of objects, indent).
type JSONSaver struct{}

func (JSONSaver) Extension() string { return "json" }

func (JSONSaver) Save(f *dataset.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	rows := make([]map[string]any, len(f.Rows))
	for i, row := range f.Rows {
		m := make(map[string]any, len(f.Columns)+1)
		m["timestamp"] = f.Timestamps[i]
		for j, c := range f.Columns {
			m[c] = row[j]
		}
		rows[i] = m
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}
