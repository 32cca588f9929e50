package ingest

import (
	"encoding/json"
	"log/slog"
	"os"
)

// ProgressUpdate is sent when a year file ingests successfully.
type ProgressUpdate struct {
	Symbol string
	Year   int
}

func loadProgress(path string) map[string]int {
	data, err := os.ReadFile(path)
	if err != nil {
		return make(map[string]int)
	}
	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return make(map[string]int)
	}
	return m
}

// RunProgressWriter receives updates and persists the last ingested year
// per symbol (run as goroutine).
func RunProgressWriter(path string, updates <-chan ProgressUpdate) {
	m := loadProgress(path)
	for u := range updates {
		if u.Year <= m[u.Symbol] {
			continue
		}
		m[u.Symbol] = u.Year
		data, err := json.MarshalIndent(m, "", "  ")
		if err != nil {
			slog.Warn("progress marshal error", "error", err)
			continue
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			slog.Warn("progress write error", "error", err)
		}
	}
}
