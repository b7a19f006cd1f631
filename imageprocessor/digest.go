package imageprocessor

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// digestChunkSize is the read granularity for file digests.
const digestChunkSize = 4096

// ComputeFileDigest streams the file in fixed-size chunks and returns
// its MD5 digest as a lowercase hex string. Any single-bit content
// difference yields a different digest. On failure the digest is empty
// and the error names the failing file; the caller decides whether the
// batch continues.
func ComputeFileDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	buf := make([]byte, digestChunkSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
