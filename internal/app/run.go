package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"grx-data/internal/dataset"
	"grx-data/internal/feature"
	"grx-data/internal/ingest"
	"grx-data/internal/loader"
	"grx-data/internal/model"
	"grx-data/internal/saver"
	"grx-data/internal/stats"
	"grx-data/internal/target"
)

// RunIngest converts pending provider ASCII year files into parquet bars.
func RunIngest(cfg *Config) error {
	return ingest.Run(cfg.RawDir(), cfg.BarsDir(), cfg.Symbol, cfg.IngestWorkers, cfg.ProgressPath())
}

// RunPrepare is the core flow: load bars, compute features and targets,
// assemble, split, persist. Either all three segments are written or it
// fails before producing partial output.
func RunPrepare(cfg *Config, fs saver.FrameSaver) error {
	series, err := loadSeries(cfg)
	if err != nil {
		return err
	}

	// Feature and target engines are independent (neither reads the
	// other's output), so they run concurrently over the shared read-only
	// series.
	var (
		feats   *feature.Result
		targets []target.Columns
		fErr    error
		tErr    error
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		feats, fErr = feature.Compute(series, cfg.FeatureConfig())
	}()
	go func() {
		defer wg.Done()
		targets, tErr = target.Compute(series, cfg.TargetConfig())
	}()
	wg.Wait()
	if fErr != nil {
		return fErr
	}
	if tErr != nil {
		return tErr
	}
	slog.Info("features computed", "columns", len(feats.Names))
	slog.Info("targets computed", "horizons", len(targets))

	frame, drop, err := dataset.Assemble(series, feats, targets)
	if err != nil {
		return err
	}
	slog.Info("dropped rows with missing values",
		"before", drop.Total, "after", drop.Kept,
		"dropped", drop.Dropped, "pct", fmt.Sprintf("%.1f%%", drop.DroppedPct()))

	train, validation, test := dataset.Split(frame, cfg.SplitBounds())

	if err := os.MkdirAll(cfg.ProcessedDir(), 0755); err != nil {
		return err
	}
	segments := []struct {
		name string
		f    *dataset.Frame
	}{
		{"train", train},
		{"validation", validation},
		{"test", test},
	}
	for _, seg := range segments {
		path := filepath.Join(cfg.ProcessedDir(), fmt.Sprintf("%s_%s.%s", cfg.Symbol, seg.name, fs.Extension()))
		if err := fs.Save(seg.f, path); err != nil {
			return fmt.Errorf("save %s: %w", seg.name, err)
		}
		attrs := []any{"segment", seg.name, "rows", seg.f.Len(), "path", path}
		if seg.f.Len() > 0 {
			attrs = append(attrs,
				"from", time.UnixMilli(seg.f.Timestamps[0]).UTC().Format("2006-01-02 15:04"),
				"to", time.UnixMilli(seg.f.Timestamps[seg.f.Len()-1]).UTC().Format("2006-01-02 15:04"))
		}
		slog.Info("segment saved", attrs...)
	}

	featuresPath := filepath.Join(cfg.ProcessedDir(), "features.txt")
	if err := saver.WriteFeatureNames(featuresPath, feats.Names); err != nil {
		return err
	}
	slog.Info("feature list saved", "path", featuresPath, "features", len(feats.Names))
	return nil
}

// RunStats prints the data-understanding report for the bar series.
func RunStats(cfg *Config, topK int) error {
	series, err := loadSeries(cfg)
	if err != nil {
		return err
	}
	for _, c := range stats.Describe(series) {
		slog.Info("describe", "column", c.Name, "count", c.Count,
			"mean", c.Mean, "std", c.Std, "min", c.Min, "max", c.Max)
	}
	largest, smallest := stats.TopReturns(series, topK)
	for _, e := range largest {
		slog.Info("top positive return", "ts", time.UnixMilli(e.Timestamp).UTC().Format("2006-01-02 15:04"), "return", e.Return)
	}
	for _, e := range smallest {
		slog.Info("top negative return", "ts", time.UnixMilli(e.Timestamp).UTC().Format("2006-01-02 15:04"), "return", e.Return)
	}
	slog.Info("gaps", "count", stats.GapCount(series))
	return nil
}

func loadSeries(cfg *Config) (*model.Series, error) {
	path, err := resolveBarsFile(cfg)
	if err != nil {
		return nil, err
	}
	ld, err := loader.ForPath(path)
	if err != nil {
		return nil, err
	}
	bars, err := ld.Load(path)
	if err != nil {
		return nil, err
	}
	series, err := model.NewSeries(bars)
	if err != nil {
		return nil, err
	}
	slog.Info("bars loaded", "loader", ld.Name(), "path", path, "rows", series.Len(),
		"from", series.At(0).Time().Format("2006-01-02 15:04"),
		"to", series.At(series.Len()-1).Time().Format("2006-01-02 15:04"))
	return series, nil
}

// resolveBarsFile returns BARS_FILE when set, otherwise the combined
// {symbol}_M1_{first}_{last}.parquet written by ingest (widest range wins).
func resolveBarsFile(cfg *Config) (string, error) {
	if cfg.BarsFile != "" {
		return cfg.BarsFile, nil
	}
	matches, err := filepath.Glob(filepath.Join(cfg.BarsDir(), cfg.Symbol+"_M1_*_*.parquet"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no combined bar file under %s, run ingest first or set BARS_FILE", cfg.BarsDir())
	}
	// stems sort by year range; the last one spans the most recent years
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
