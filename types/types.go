package types

import (
	"time"

	"github.com/corona10/goimagehash"
)

// ImageRecord holds one enumerated image and the fingerprints computed
// for it. Digest and Fingerprint keep their zero values when the
// corresponding stage failed for this file; a record is never mutated
// after its stage completed.
type ImageRecord struct {
	Path        string
	Digest      string
	Fingerprint *goimagehash.ExtImageHash
}

// ExactGroup is a set of files sharing one byte-digest. Groups with a
// single member are discarded before they reach a report.
type ExactGroup struct {
	Digest  string
	Members []*ImageRecord
}

// SimilarGroup is a set of perceptually similar images. The first
// member is the anchor every later member was matched against.
type SimilarGroup struct {
	Members []*ImageRecord
}

// DetectionReport is the read-only result snapshot of one scan run.
type DetectionReport struct {
	ReportID      string
	GeneratedAt   time.Time
	TotalImages   int
	ExactGroups   []ExactGroup
	SimilarGroups []SimilarGroup
}

// Paths returns the member file paths in group order.
func (g ExactGroup) Paths() []string {
	return memberPaths(g.Members)
}

// Paths returns the member file paths in group order.
func (g SimilarGroup) Paths() []string {
	return memberPaths(g.Members)
}

func memberPaths(members []*ImageRecord) []string {
	paths := make([]string, len(members))
	for i, m := range members {
		paths[i] = m.Path
	}
	return paths
}
