// Package ingest converts provider ASCII year files into parquet bar files.
// One job per year file; jobs run on a small worker pool with fan-in
// logging, a progress checkpoint and a run report.
package ingest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Job represents one ingest unit (one provider year file).
type Job struct {
	Symbol string
	Year   int
	Path   string
}

// JobResult is sent by workers for fan-in.
type JobResult struct {
	Ok     bool
	Year   int
	Bars   int
	Reason string
}

// DiscoverJobs lists DAT_ASCII_{symbol}_M1_{year}.csv files under rawDir,
// skipping years already recorded in the progress checkpoint. Years come
// back ascending.
func DiscoverJobs(rawDir, symbol, progressPath string) ([]Job, error) {
	pattern := filepath.Join(rawDir, fmt.Sprintf("DAT_ASCII_%s_M1_*.csv", symbol))
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("ingest: no files matching %s", pattern)
	}

	lastDone := loadProgress(progressPath)[symbol]

	var jobs []Job
	for _, path := range matches {
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		yearStr := stem[strings.LastIndex(stem, "_")+1:]
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			return nil, fmt.Errorf("ingest: cannot parse year from %s", filepath.Base(path))
		}
		if year <= lastDone {
			continue
		}
		jobs = append(jobs, Job{Symbol: symbol, Year: year, Path: path})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Year < jobs[j].Year })
	return jobs, nil
}
