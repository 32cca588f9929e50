package dataset

import (
	"fmt"
	"time"
)

// SplitBounds are the three calendar boundaries of the chronological
// split, each inclusive: train ends at TrainEnd, validation covers
// (TrainEnd, ValidationEnd], test covers (ValidationEnd, TestEnd]. Rows
// after TestEnd are discarded.
type SplitBounds struct {
	TrainEnd      time.Time
	ValidationEnd time.Time
	TestEnd       time.Time
}

// Validate rejects inverted or equal boundaries before any computation.
func (b SplitBounds) Validate() error {
	if !b.TrainEnd.Before(b.ValidationEnd) {
		return fmt.Errorf("split: TRAIN_END (%s) must be before VALIDATION_END (%s)", b.TrainEnd.Format("2006-01-02"), b.ValidationEnd.Format("2006-01-02"))
	}
	if !b.ValidationEnd.Before(b.TestEnd) {
		return fmt.Errorf("split: VALIDATION_END (%s) must be before TEST_END (%s)", b.ValidationEnd.Format("2006-01-02"), b.TestEnd.Format("2006-01-02"))
	}
	return nil
}

// Split partitions the frame into train/validation/test by timestamp.
// Segments are contiguous, time-ordered and disjoint; no shuffling. Rows
// outside all three ranges are dropped.
func Split(f *Frame, b SplitBounds) (train, validation, test *Frame) {
	trainEnd := b.TrainEnd.UnixMilli()
	valEnd := b.ValidationEnd.UnixMilli()
	testEnd := b.TestEnd.UnixMilli()

	train = &Frame{Columns: f.Columns}
	validation = &Frame{Columns: f.Columns}
	test = &Frame{Columns: f.Columns}

	for i, ts := range f.Timestamps {
		var seg *Frame
		switch {
		case ts <= trainEnd:
			seg = train
		case ts <= valEnd:
			seg = validation
		case ts <= testEnd:
			seg = test
		default:
			continue
		}
		seg.Timestamps = append(seg.Timestamps, ts)
		seg.Rows = append(seg.Rows, f.Rows[i])
	}
	return train, validation, test
}
