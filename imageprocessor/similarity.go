package imageprocessor

import (
	"fmt"

	"github.com/corona10/goimagehash"
)

// Similarity maps two fingerprints to [0,1] as 1 - distance/bits.
// Normalizing by the fingerprint's actual bit length keeps thresholds
// meaningful across configurable hash sizes. Identical fingerprints
// score 1.0 and the measure is symmetric.
func Similarity(a, b *goimagehash.ExtImageHash) (float64, error) {
	if a == nil || b == nil {
		return 0, fmt.Errorf("cannot compare a nil fingerprint")
	}

	distance, err := a.Distance(b)
	if err != nil {
		return 0, fmt.Errorf("hamming distance: %w", err)
	}
	if a.Bits() == 0 {
		return 0, fmt.Errorf("zero-length fingerprint")
	}

	return 1.0 - float64(distance)/float64(a.Bits()), nil
}
