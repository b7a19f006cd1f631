package report

import (
	"github.com/barasher/go-exiftool"

	"dupefinder/logging"
)

// fileMetadata is the camera information shown per report card when
// metadata extraction is enabled.
type fileMetadata struct {
	Camera string
	Taken  string
}

// metadataReader wraps an exiftool session. A nil reader is valid and
// returns empty metadata, so the report renders the same way when the
// exiftool binary is not installed.
type metadataReader struct {
	et *exiftool.Exiftool
}

// newMetadataReader starts an exiftool session. Failure to start one
// (binary missing, broken install) is logged and degrades to a nil
// reader instead of failing the report.
func newMetadataReader() *metadataReader {
	et, err := exiftool.NewExiftool()
	if err != nil {
		logging.LogWarning("exiftool unavailable, report metadata disabled: %v", err)
		return nil
	}
	return &metadataReader{et: et}
}

func (r *metadataReader) Close() {
	if r != nil && r.et != nil {
		r.et.Close()
	}
}

// Read extracts camera model and capture date for one file. Extraction
// problems yield empty fields, never an error; one unreadable file must
// not degrade the rest of the report.
func (r *metadataReader) Read(path string) fileMetadata {
	if r == nil || r.et == nil {
		return fileMetadata{}
	}

	metas := r.et.ExtractMetadata(path)
	if len(metas) == 0 {
		return fileMetadata{}
	}

	meta := metas[0]
	if meta.Err != nil {
		logging.LogWarning("metadata extraction failed for %s: %v", path, meta.Err)
		return fileMetadata{}
	}

	var result fileMetadata
	if model, err := meta.GetString("Model"); err == nil {
		result.Camera = model
	}
	if taken, err := meta.GetString("DateTimeOriginal"); err == nil {
		result.Taken = taken
	}
	return result
}
