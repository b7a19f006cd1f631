package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// The wire format is the JSON contract consumed by the report renderer
// and any external tooling: exact groups are a "grupo_<n>" keyed object
// whose key order is the group insertion order, similar groups an array
// carrying 1-based indices. Field names must not change.

type exactGroupJSON struct {
	Hash  string   `json:"hash"`
	Files []string `json:"files"`
}

type similarGroupJSON struct {
	Group int      `json:"grupo"`
	Files []string `json:"files"`
}

// MarshalJSON writes the report in the external wire format. The
// md5_duplicates object is emitted manually so its keys keep insertion
// order instead of Go's sorted map order.
func (r *DetectionReport) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"report_id":`)
	if err := encodeTo(&buf, r.ReportID); err != nil {
		return nil, err
	}
	buf.WriteString(`,"timestamp":`)
	if err := encodeTo(&buf, r.GeneratedAt.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	buf.WriteString(`,"total_images":`)
	buf.WriteString(strconv.Itoa(r.TotalImages))

	buf.WriteString(`,"md5_duplicates":{`)
	for i, g := range r.ExactGroups {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeTo(&buf, fmt.Sprintf("grupo_%d", i+1)); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeTo(&buf, exactGroupJSON{Hash: g.Digest, Files: g.Paths()}); err != nil {
			return nil, err
		}
	}

	buf.WriteString(`},"perceptual_duplicates":[`)
	for i, g := range r.SimilarGroups {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeTo(&buf, similarGroupJSON{Group: i + 1, Files: g.Paths()}); err != nil {
			return nil, err
		}
	}
	buf.WriteString(`]}`)

	return buf.Bytes(), nil
}

// UnmarshalJSON reads the wire format back. Exact-group order is
// reconstructed from the numeric key suffixes, so reports survive a
// round trip through order-insensitive JSON tooling.
func (r *DetectionReport) UnmarshalJSON(data []byte) error {
	var raw struct {
		ReportID    string                    `json:"report_id"`
		Timestamp   string                    `json:"timestamp"`
		TotalImages int                       `json:"total_images"`
		Exact       map[string]exactGroupJSON `json:"md5_duplicates"`
		Similar     []similarGroupJSON        `json:"perceptual_duplicates"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	r.ReportID = raw.ReportID
	r.TotalImages = raw.TotalImages

	if raw.Timestamp != "" {
		ts, err := parseTimestamp(raw.Timestamp)
		if err != nil {
			return err
		}
		r.GeneratedAt = ts
	}

	names := make([]string, 0, len(raw.Exact))
	for name := range raw.Exact {
		names = append(names, name)
	}
	sortGroupNames(names)

	r.ExactGroups = make([]ExactGroup, 0, len(names))
	for _, name := range names {
		g := raw.Exact[name]
		r.ExactGroups = append(r.ExactGroups, ExactGroup{
			Digest:  g.Hash,
			Members: recordsFromPaths(g.Files),
		})
	}

	r.SimilarGroups = make([]SimilarGroup, 0, len(raw.Similar))
	for _, g := range raw.Similar {
		r.SimilarGroups = append(r.SimilarGroups, SimilarGroup{
			Members: recordsFromPaths(g.Files),
		})
	}

	return nil
}

func encodeTo(buf *bytes.Buffer, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

// parseTimestamp accepts RFC3339 timestamps and the zone-less ISO-8601
// form older reports carry.
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if ts, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}

func sortGroupNames(names []string) {
	sort.Slice(names, func(i, j int) bool {
		ni, iok := groupIndex(names[i])
		nj, jok := groupIndex(names[j])
		if iok && jok && ni != nj {
			return ni < nj
		}
		if iok != jok {
			return iok
		}
		return names[i] < names[j]
	})
}

func groupIndex(name string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(name, "grupo_"))
	if err != nil {
		return 0, false
	}
	return n, true
}

func recordsFromPaths(paths []string) []*ImageRecord {
	records := make([]*ImageRecord, len(paths))
	for i, p := range paths {
		records[i] = &ImageRecord{Path: p}
	}
	return records
}
