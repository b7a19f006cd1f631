package imageprocessor

import (
	"fmt"
	"image"

	"github.com/corona10/goimagehash"
)

// DefaultHashSize is the fingerprint grid edge. 16 yields a 256-bit
// fingerprint.
const DefaultHashSize = 16

// ComputeFingerprint builds a difference-hash fingerprint of
// hashSize x hashSize bits: the image is downsampled to a small grid
// and each bit encodes the sign of the brightness delta between two
// horizontally adjacent samples in a row. The fingerprint survives
// recompression and mild resizing; it does not survive cropping or
// rotation, and is not meant to.
func ComputeFingerprint(img image.Image, hashSize int) (*goimagehash.ExtImageHash, error) {
	if img == nil {
		return nil, fmt.Errorf("cannot fingerprint a nil image")
	}
	if hashSize < 2 {
		return nil, fmt.Errorf("hash size %d is too small", hashSize)
	}

	fp, err := goimagehash.ExtDifferenceHash(img, hashSize, hashSize)
	if err != nil {
		return nil, fmt.Errorf("difference hash: %w", err)
	}

	return fp, nil
}

// FingerprintFile decodes and fingerprints a file in one step.
func FingerprintFile(path string, hashSize int) (*goimagehash.ExtImageHash, error) {
	img, err := DecodeImage(path)
	if err != nil {
		return nil, err
	}
	return ComputeFingerprint(img, hashSize)
}
