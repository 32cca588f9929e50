package saver

import (
	"encoding/csv"
	"os"
	"strconv"

	"grx-data/internal/dataset"
)

// CSVSaver lưu dataset segment dưới dạng CSV (header: timestamp + columns).
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(f *dataset.Frame, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()
	w := csv.NewWriter(out)

	header := append([]string{"timestamp"}, f.Columns...)
	if err := w.Write(header); err != nil {
		return err
	}
	record := make([]string, len(header))
	for i, row := range f.Rows {
		record[0] = strconv.FormatInt(f.Timestamps[i], 10)
		for j, v := range row {
			record[j+1] = floatStr(v)
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
