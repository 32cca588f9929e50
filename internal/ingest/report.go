package ingest

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type failedEntry struct {
	Year   int    `json:"year"`
	Reason string `json:"reason"`
}

func writeRunReport(barsDir string, successYears []int, failedList []failedEntry) error {
	if err := os.MkdirAll(barsDir, 0755); err != nil {
		return err
	}
	if len(successYears) > 0 {
		p := filepath.Join(barsDir, ".lastrun.success.json")
		data, err := json.MarshalIndent(successYears, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote success", "path", p, "years", len(successYears))
	}
	if len(failedList) > 0 {
		p := filepath.Join(barsDir, ".lastrun.failed.json")
		data, err := json.MarshalIndent(failedList, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(p, data, 0644); err != nil {
			return err
		}
		slog.Info("report wrote failed", "path", p, "count", len(failedList))
	}
	return nil
}

func joinFailedReasons(failedList []failedEntry) string {
	if len(failedList) == 0 {
		return ""
	}
	var b strings.Builder
	for i, f := range failedList {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(&b, "%d: %s", f.Year, f.Reason)
		if i >= 4 && len(failedList) > 6 {
			fmt.Fprintf(&b, " (+%d more)", len(failedList)-5)
			break
		}
	}
	return b.String()
}
