package report

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dupefinder/types"
)

func writeJPEG(t *testing.T, dir, name string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			v := uint8(x * 255 / 63)
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func testRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(Options{ThumbMaxSize: 300, ThumbQuality: 85})
	require.NoError(t, err)
	return r
}

func TestRenderCardsAndSuggestions(t *testing.T) {
	dir := t.TempDir()
	a := writeJPEG(t, dir, "a.jpg")
	b := writeJPEG(t, dir, "b.jpg")
	c := writeJPEG(t, dir, "c.jpg")

	record := &types.DetectionReport{
		ReportID:    "run-7",
		GeneratedAt: time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
		TotalImages: 3,
		ExactGroups: []types.ExactGroup{
			{Digest: "deadbeefdeadbeefdeadbeefdeadbeef", Members: members(a, b)},
		},
		SimilarGroups: []types.SimilarGroup{
			{Members: members(b, c)},
		},
	}

	html, err := testRenderer(t).Render(record)
	require.NoError(t, err)
	page := string(html)

	// One card per member, thumbnails inlined.
	assert.Equal(t, 4, strings.Count(page, `class="file-item"`))
	assert.Equal(t, 4, strings.Count(page, "data:image/jpeg;base64,"))

	// First member of each group suggested keep, later ones delete,
	// review never preselected.
	assert.Equal(t, 2, strings.Count(page, `value="keep" checked`))
	assert.Equal(t, 2, strings.Count(page, `value="delete" checked`))
	assert.NotContains(t, page, `value="review" checked`)

	// Header stats and identifiers.
	assert.Contains(t, page, "deadbeef...")
	assert.Contains(t, page, `data-group-id="grupo_1"`)
	assert.Contains(t, page, `data-group-id="similar_grupo_1"`)
	assert.Contains(t, page, "2026-03-01T10:30:00Z")
	assert.Contains(t, page, `const reportId = "run-7";`)

	// Original paths travel with each card for the delete list.
	assert.Contains(t, page, a)
	assert.Contains(t, page, c)
}

func TestRenderUndecodableMemberGetsPlaceholder(t *testing.T) {
	dir := t.TempDir()
	a := writeJPEG(t, dir, "a.jpg")
	broken := filepath.Join(dir, "broken.jpg")
	require.NoError(t, os.WriteFile(broken, []byte("not an image"), 0o644))

	record := &types.DetectionReport{
		GeneratedAt: time.Now(),
		TotalImages: 2,
		ExactGroups: []types.ExactGroup{
			{Digest: "deadbeefdeadbeefdeadbeefdeadbeef", Members: members(a, broken)},
		},
	}

	html, err := testRenderer(t).Render(record)
	require.NoError(t, err, "a bad member must not fail the report")
	page := string(html)

	assert.Equal(t, 1, strings.Count(page, "data:image/jpeg;base64,"))
	assert.Contains(t, page, "Image not available")
}

func TestRenderMissingMemberStillListed(t *testing.T) {
	record := &types.DetectionReport{
		GeneratedAt: time.Now(),
		TotalImages: 2,
		SimilarGroups: []types.SimilarGroup{
			{Members: members("/nowhere/x.jpg", "/nowhere/y.jpg")},
		},
	}

	html, err := testRenderer(t).Render(record)
	require.NoError(t, err)
	page := string(html)

	assert.Contains(t, page, "x.jpg")
	assert.Contains(t, page, "N/A")
	assert.Equal(t, 2, strings.Count(page, "Image not available"))
}

func TestRenderFileWritesAtomically(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "duplicate_report.html")

	record := &types.DetectionReport{GeneratedAt: time.Now()}
	require.NoError(t, testRenderer(t).RenderFile(record, out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<!DOCTYPE html>")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files may remain")
}
