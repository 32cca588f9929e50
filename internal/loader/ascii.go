package loader

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"grx-data/internal/model"
)

// asciiTimeLayout is the provider's bar timestamp format: "20100315 123400".
const asciiTimeLayout = "20060102 150405"

// ASCII loads bars from a provider DAT_ASCII M1 file: semicolon-separated
// `YYYYMMDD HHMMSS;open;high;low;close;volume`, no header. Timestamps are
// taken as UTC, matching how the rest of the pipeline treats them.
type ASCII struct{}

func (ASCII) Name() string { return "ascii" }

func (ASCII) Load(path string) ([]model.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = ';'
	r.FieldsPerRecord = 6

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ascii %s: %w", path, err)
	}

	bars := make([]model.Bar, 0, len(records))
	for i, rec := range records {
		ts, err := time.ParseInLocation(asciiTimeLayout, rec[0], time.UTC)
		if err != nil {
			return nil, fmt.Errorf("ascii %s line %d: bad timestamp %q: %w", path, i+1, rec[0], err)
		}
		var v [5]float64
		for j := 1; j < 6; j++ {
			v[j-1], err = strconv.ParseFloat(rec[j], 64)
			if err != nil {
				return nil, fmt.Errorf("ascii %s line %d: bad field %d: %w", path, i+1, j, err)
			}
		}
		bars = append(bars, model.Bar{
			Timestamp: ts.UnixMilli(),
			Open:      v[0], High: v[1], Low: v[2], Close: v[3],
			Volume: v[4],
		})
	}
	return bars, nil
}
