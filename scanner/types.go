package scanner

import (
	"io"
	"time"
)

// Options configures one detection run. Every knob is explicit; the
// scanner keeps no package state between runs.
type Options struct {
	// Source is the directory of images to analyze.
	Source string
	// Threshold is the perceptual similarity cutoff in [0,1].
	Threshold float64
	// HashSize is the fingerprint grid edge (HashSize² bits).
	HashSize int
	// Recursive also walks subdirectories of Source.
	Recursive bool
	// Progress receives startup and progress output. Defaults to
	// stdout when nil.
	Progress io.Writer
}

// Stats summarizes one run for the end-of-run summary: how many files
// each stage saw and how many it had to skip.
type Stats struct {
	TotalImages       int
	ExactGroups       int
	SimilarGroups     int
	SkippedUnreadable int
	DigestFailures    int
	DecodeFailures    int
	Duration          time.Duration
}
