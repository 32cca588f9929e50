package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"grx-data/internal/loader"
	"grx-data/internal/model"
	"grx-data/internal/saver"
	"grx-data/internal/slogx"
)

// Run ingests all pending year files for symbol: parse ASCII, validate,
// write one parquet per year, then rebuild the combined bar file. Returns
// an error only when nothing could be ingested; per-file failures land in
// the run report and the summary log.
func Run(rawDir, barsDir, symbol string, workers int, progressPath string) error {
	jobs, err := DiscoverJobs(rawDir, symbol, progressPath)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(barsDir, 0755); err != nil {
		return err
	}
	if len(jobs) == 0 {
		slog.Info("all year files up to date, skip")
		return nil
	}
	slog.Info("jobs to ingest", "jobs", len(jobs), "workers", workers)

	progressUpdates := make(chan ProgressUpdate, 64)
	var progressWg sync.WaitGroup
	progressWg.Add(1)
	go func() {
		defer progressWg.Done()
		RunProgressWriter(progressPath, progressUpdates)
	}()

	logs := make(chan string, 2048)
	logger := slogx.NewChanLogger(logs)
	var logWg sync.WaitGroup
	logWg.Add(1)
	go func() {
		defer logWg.Done()
		for s := range logs {
			fmt.Println(s)
		}
	}()

	pending := make(chan Job, len(jobs))
	for _, j := range jobs {
		pending <- j
	}
	close(pending)

	results := make(chan JobResult, len(jobs))
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for job := range pending {
				results <- runJob(job, barsDir, progressUpdates, logger)
			}
		}()
	}
	wg.Wait()
	close(results)
	close(progressUpdates)
	progressWg.Wait()

	var successYears []int
	var failedList []failedEntry
	var totalBars int
	for r := range results {
		if r.Ok {
			successYears = append(successYears, r.Year)
			totalBars += r.Bars
		} else {
			failedList = append(failedList, failedEntry{Year: r.Year, Reason: r.Reason})
		}
	}
	sort.Ints(successYears)
	sort.Slice(failedList, func(i, j int) bool { return failedList[i].Year < failedList[j].Year })

	logger.Info("ingest summary", "total_bars", totalBars, "success", len(successYears), "failed", len(failedList))
	if len(failedList) > 0 {
		logger.Info("ingest failed", "count", len(failedList), "reasons", joinFailedReasons(failedList))
	}
	close(logs)
	logWg.Wait()

	if err := writeRunReport(barsDir, successYears, failedList); err != nil {
		slog.Warn("could not write run report", "error", err)
	}
	if len(successYears) == 0 {
		return fmt.Errorf("ingest: no year file could be ingested (%s)", joinFailedReasons(failedList))
	}

	return combine(barsDir, symbol)
}

func runJob(job Job, barsDir string, progressUpdates chan<- ProgressUpdate, logger *slog.Logger) JobResult {
	bars, err := loader.ASCII{}.Load(job.Path)
	if err != nil {
		logger.Error("ingest fail", "year", job.Year, "reason", err.Error())
		return JobResult{Year: job.Year, Reason: err.Error()}
	}
	// Validation happens here, once, at the boundary: the prepare flow
	// rereads these parquet files without re-checking line by line.
	if _, err := model.NewSeries(bars); err != nil {
		logger.Error("ingest fail", "year", job.Year, "reason", err.Error())
		return JobResult{Year: job.Year, Reason: err.Error()}
	}
	out := yearPath(barsDir, job.Symbol, job.Year)
	if err := saver.WriteBars(out, bars); err != nil {
		logger.Error("ingest fail", "year", job.Year, "reason", err.Error())
		return JobResult{Year: job.Year, Reason: err.Error()}
	}
	logger.Info("ingest ok", "year", job.Year, "bars", len(bars), "path", out)
	select {
	case progressUpdates <- ProgressUpdate{Symbol: job.Symbol, Year: job.Year}:
	default:
		logger.Warn("progress channel full, skip update", "year", job.Year)
	}
	return JobResult{Ok: true, Year: job.Year, Bars: len(bars)}
}

func yearPath(barsDir, symbol string, year int) string {
	return filepath.Join(barsDir, fmt.Sprintf("%s_M1_%d.parquet", symbol, year))
}

// combine rebuilds {symbol}_M1_{first}_{last}.parquet from every per-year
// file present, in year order.
func combine(barsDir, symbol string) error {
	matches, err := filepath.Glob(filepath.Join(barsDir, symbol+"_M1_*.parquet"))
	if err != nil {
		return err
	}
	var years []int
	for _, path := range matches {
		stem := strings.TrimSuffix(filepath.Base(path), ".parquet")
		// the combined file also matches the glob; only single-year stems count
		yearStr := strings.TrimPrefix(stem, symbol+"_M1_")
		if year, err := strconv.Atoi(yearStr); err == nil {
			years = append(years, year)
		}
	}
	if len(years) == 0 {
		return fmt.Errorf("ingest: no per-year parquet files under %s", barsDir)
	}
	sort.Ints(years)

	var all []model.Bar
	for _, year := range years {
		bars, err := loader.Parquet{}.Load(yearPath(barsDir, symbol, year))
		if err != nil {
			return fmt.Errorf("ingest: combine: %w", err)
		}
		all = append(all, bars...)
	}
	out := filepath.Join(barsDir, fmt.Sprintf("%s_M1_%d_%d.parquet", symbol, years[0], years[len(years)-1]))
	if err := saver.WriteBars(out, all); err != nil {
		return err
	}
	slog.Info("combined bars written", "path", out, "years", len(years), "bars", len(all))
	return nil
}
