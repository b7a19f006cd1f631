// Package report reads and writes the detection record and renders it
// as a self-contained interactive HTML page for manual curation.
package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"dupefinder/types"
	"dupefinder/utils"
)

// ReadRecord loads a detection record from disk.
func ReadRecord(path string) (*types.DetectionReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detection record %s: %w", path, err)
	}

	var record types.DetectionReport
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parse detection record %s: %w", path, err)
	}

	return &record, nil
}

// WriteRecord serializes the record as 2-space indented JSON and writes
// it atomically, so a failed write never leaves a partial document. A
// write failure is a terminal error of the run.
func WriteRecord(path string, record *types.DetectionReport) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("serialize detection record: %w", err)
	}

	// Indent the already-marshalled bytes; json.Indent preserves the
	// insertion-ordered group keys that MarshalJSON emitted.
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format detection record: %w", err)
	}
	buf.WriteByte('\n')

	if err := utils.WriteFileAtomic(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write detection record %s: %w", path, err)
	}
	return nil
}
