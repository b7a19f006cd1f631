package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dupefinder/logging"
)

// IsImageFile reports whether the path carries one of the supported
// image extensions. The allow-list is fixed; notably .tif is not an
// alias for .tiff here.
func IsImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg", ".png", ".bmp", ".tiff", ".webp":
		return true
	default:
		return false
	}
}

// probeReadable checks that the path names a regular file from which
// at least one byte can be read. Zero-length files fail the probe.
func probeReadable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}

	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	buf := make([]byte, 1)
	n, err := f.Read(buf)
	return err == nil && n > 0
}

// ListImages enumerates the readable image files in dir, sorted in
// lexicographic path order. Files with a supported extension that fail
// the readability probe are logged and counted, never fatal. A missing
// or non-directory source is the one terminal error here.
func ListImages(dir string, recursive bool) ([]string, int, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, 0, fmt.Errorf("source directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, 0, fmt.Errorf("source path %s is not a directory", dir)
	}

	var candidates []string
	if recursive {
		err = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				logging.LogWarning("cannot access %s: %v", path, err)
				return nil
			}
			if !info.IsDir() && IsImageFile(path) {
				candidates = append(candidates, path)
			}
			return nil
		})
		if err != nil {
			return nil, 0, fmt.Errorf("walk %s: %w", dir, err)
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, 0, fmt.Errorf("read directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsImageFile(entry.Name()) {
				continue
			}
			candidates = append(candidates, filepath.Join(dir, entry.Name()))
		}
	}

	skipped := 0
	images := make([]string, 0, len(candidates))
	for _, path := range candidates {
		if !probeReadable(path) {
			logging.LogWarning("skipping unreadable file: %s", path)
			skipped++
			continue
		}
		images = append(images, path)
	}

	// Walk order is lexical per directory, not across full paths; sort
	// so group numbering is reproducible for a given input set.
	sort.Strings(images)

	return images, skipped, nil
}
