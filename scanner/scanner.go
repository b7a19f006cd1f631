// Package scanner enumerates a directory of images and runs the
// duplicate-detection pipeline over it: exact-match digests first,
// perceptual fingerprints second, greedy similarity clustering last.
// Each stage consumes the previous stage's complete output; per-file
// failures are logged and counted, never fatal to the batch.
package scanner

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"dupefinder/imageprocessor"
	"dupefinder/logging"
	"dupefinder/types"
)

// ErrNoImages is returned when the source directory holds no readable
// image files; an empty input set terminates the run.
var ErrNoImages = errors.New("no readable images in source directory")

// Run executes one detection pass over opts.Source and returns the
// assembled report plus run statistics. The pipeline is synchronous
// and single-threaded; the only goroutine is the progress display.
func Run(opts Options) (*types.DetectionReport, *Stats, error) {
	out := opts.Progress
	if out == nil {
		out = os.Stdout
	}

	start := time.Now()

	paths, skipped, err := ListImages(opts.Source, opts.Recursive)
	if err != nil {
		return nil, nil, err
	}
	if len(paths) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoImages, opts.Source)
	}

	fmt.Fprintf(out, "Found %d readable images in %s", len(paths), opts.Source)
	if skipped > 0 {
		fmt.Fprintf(out, " (%d skipped as unreadable)", skipped)
	}
	fmt.Fprintln(out)

	records := make([]*types.ImageRecord, len(paths))
	for i, path := range paths {
		records[i] = &types.ImageRecord{Path: path}
	}

	stats := &Stats{
		TotalImages:       len(records),
		SkippedUnreadable: skipped,
	}

	tracker := NewProgressTracker(out)
	defer tracker.Stop()

	index := digestStage(records, tracker, stats)
	fingerprintStage(records, opts.HashSize, tracker, stats)

	fmt.Fprintln(out, "Comparing fingerprints...")
	similar := imageprocessor.ClusterSimilar(records, opts.Threshold)

	report := &types.DetectionReport{
		ReportID:      uuid.NewString(),
		GeneratedAt:   time.Now(),
		TotalImages:   len(records),
		ExactGroups:   index.DuplicateGroups(),
		SimilarGroups: similar,
	}

	stats.ExactGroups = len(report.ExactGroups)
	stats.SimilarGroups = len(report.SimilarGroups)
	stats.Duration = time.Since(start)

	return report, stats, nil
}

// digestStage computes the byte-digest of every record and groups them
// in an insertion-ordered index. A failed digest leaves the record's
// Digest empty; the record stays in the batch.
func digestStage(records []*types.ImageRecord, tracker *ProgressTracker, stats *Stats) *imageprocessor.DigestIndex {
	tracker.StartStage("Digesting", len(records))

	index := imageprocessor.NewDigestIndex()
	for _, record := range records {
		digest, err := imageprocessor.ComputeFileDigest(record.Path)
		logging.LogFileOutcome("digest", record.Path, err)
		if err != nil {
			logging.LogWarning("digest failed for %s: %v", record.Path, err)
			stats.DigestFailures++
			tracker.Advance(true)
			continue
		}

		record.Digest = digest
		index.Add(record)
		tracker.Advance(false)
	}

	return index
}

// fingerprintStage decodes and fingerprints every record. Decode
// failures exclude the record from similarity comparison only; it may
// still sit in an exact group.
func fingerprintStage(records []*types.ImageRecord, hashSize int, tracker *ProgressTracker, stats *Stats) {
	tracker.StartStage("Fingerprinting", len(records))

	for _, record := range records {
		fp, err := imageprocessor.FingerprintFile(record.Path, hashSize)
		logging.LogFileOutcome("fingerprint", record.Path, err)
		if err != nil {
			logging.LogWarning("fingerprint failed for %s: %v", record.Path, err)
			stats.DecodeFailures++
			tracker.Advance(true)
			continue
		}

		record.Fingerprint = fp
		tracker.Advance(false)
	}
}
