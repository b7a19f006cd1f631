package report

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"dupefinder/logging"
	"dupefinder/types"
	"dupefinder/utils"
)

//go:embed template.gohtml
var reportTemplate string

// Options configures the HTML renderer.
type Options struct {
	// ThumbMaxSize bounds thumbnail width and height in pixels.
	ThumbMaxSize int
	// ThumbQuality is the JPEG quality of inline thumbnails.
	ThumbQuality int
	// WithMetadata adds camera model and capture date per file,
	// extracted with exiftool when available.
	WithMetadata bool
}

// Renderer turns a detection record into a single self-contained HTML
// page: every thumbnail is inlined as a data URI, so the file can be
// opened anywhere without the source images mounted.
type Renderer struct {
	opts Options
	tmpl *template.Template
}

// NewRenderer parses the report template with the given options.
func NewRenderer(opts Options) (*Renderer, error) {
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse report template: %w", err)
	}
	return &Renderer{opts: opts, tmpl: tmpl}, nil
}

type fileView struct {
	Name      string
	Path      string
	Index     int
	SizeMB    string
	Modified  string
	Thumb     template.URL
	Suggested string
	Camera    string
	Taken     string
}

type groupView struct {
	ID    string
	Kind  string
	Title string
	Files []fileView
}

type pageView struct {
	TotalImages   int
	ExactGroups   int
	SimilarGroups int
	Timestamp     string
	ReportID      string
	Exact         []groupView
	Similar       []groupView
}

// RenderFile renders the record and writes the page to path
// atomically. A write failure is terminal; a member that cannot be
// decoded or stat-ed only loses its thumbnail or file details.
func (r *Renderer) RenderFile(record *types.DetectionReport, path string) error {
	html, err := r.Render(record)
	if err != nil {
		return err
	}
	if err := utils.WriteFileAtomic(path, html, 0o644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Render produces the HTML page as bytes.
func (r *Renderer) Render(record *types.DetectionReport) ([]byte, error) {
	var meta *metadataReader
	if r.opts.WithMetadata {
		meta = newMetadataReader()
		defer meta.Close()
	}

	page := pageView{
		TotalImages:   record.TotalImages,
		ExactGroups:   len(record.ExactGroups),
		SimilarGroups: len(record.SimilarGroups),
		Timestamp:     record.GeneratedAt.Format(time.RFC3339),
		ReportID:      record.ReportID,
	}

	for i, g := range record.ExactGroups {
		id := fmt.Sprintf("grupo_%d", i+1)
		title := fmt.Sprintf("MD5: %.8s...", g.Digest)
		page.Exact = append(page.Exact, r.groupView(id, "exact", title, g.Paths(), meta))
	}
	for i, g := range record.SimilarGroups {
		id := fmt.Sprintf("similar_grupo_%d", i+1)
		title := fmt.Sprintf("Perceptual hash (group %d)", i+1)
		page.Similar = append(page.Similar, r.groupView(id, "similar", title, g.Paths(), meta))
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, page); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) groupView(id, kind, title string, paths []string, meta *metadataReader) groupView {
	g := groupView{ID: id, Kind: kind, Title: title}
	for i, path := range paths {
		g.Files = append(g.Files, r.fileView(path, i, meta))
	}
	return g
}

// fileView assembles one member card. The first member of a group is
// suggested "keep", every later one "delete"; review is never
// preselected.
func (r *Renderer) fileView(path string, index int, meta *metadataReader) fileView {
	view := fileView{
		Name:     filepath.Base(path),
		Path:     path,
		Index:    index,
		SizeMB:   "N/A",
		Modified: "N/A",
	}

	if index == 0 {
		view.Suggested = "keep"
	} else {
		view.Suggested = "delete"
	}

	if info, err := os.Stat(path); err == nil {
		view.SizeMB = utils.FormatSizeMB(info.Size())
		view.Modified = info.ModTime().Format("2006-01-02 15:04")
	} else {
		logging.LogWarning("cannot stat %s for report: %v", path, err)
	}

	uri, err := thumbnailDataURI(path, uint(r.opts.ThumbMaxSize), r.opts.ThumbQuality)
	if err != nil {
		logging.LogFileOutcome("thumbnail", path, err)
		logging.LogWarning("thumbnail failed for %s: %v", path, err)
	} else {
		logging.LogFileOutcome("thumbnail", path, nil)
		view.Thumb = template.URL(uri)
	}

	if r.opts.WithMetadata {
		m := meta.Read(path)
		view.Camera = m.Camera
		view.Taken = m.Taken
	}

	return view
}
