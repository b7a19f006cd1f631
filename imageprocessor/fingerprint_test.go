package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
)

// gradientImage has strong horizontal structure, which keeps its
// difference hash stable under recompression.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func invertedGradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(255 - x*255/(w-1))
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func recompressJPEG(t *testing.T, img image.Image, quality int) image.Image {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}))
	decoded, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	return decoded
}

func TestComputeFingerprintBitLength(t *testing.T) {
	img := gradientImage(256, 256)

	fp, err := ComputeFingerprint(img, 16)
	require.NoError(t, err)
	assert.Equal(t, 256, fp.Bits())

	fp8, err := ComputeFingerprint(img, 8)
	require.NoError(t, err)
	assert.Equal(t, 64, fp8.Bits())
}

func TestComputeFingerprintSurvivesRecompression(t *testing.T) {
	src := gradientImage(256, 256)
	high := recompressJPEG(t, src, 95)
	low := recompressJPEG(t, src, 30)

	fpHigh, err := ComputeFingerprint(high, 16)
	require.NoError(t, err)
	fpLow, err := ComputeFingerprint(low, 16)
	require.NoError(t, err)

	sim, err := Similarity(fpHigh, fpLow)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sim, 0.85, "heavy recompression should not move the fingerprint")
}

func TestComputeFingerprintSeparatesDistinctImages(t *testing.T) {
	fpA, err := ComputeFingerprint(gradientImage(256, 256), 16)
	require.NoError(t, err)
	fpB, err := ComputeFingerprint(invertedGradientImage(256, 256), 16)
	require.NoError(t, err)

	sim, err := Similarity(fpA, fpB)
	require.NoError(t, err)
	assert.Less(t, sim, 0.5, "opposite gradients should not look similar")
}

func TestComputeFingerprintRejectsBadInput(t *testing.T) {
	_, err := ComputeFingerprint(nil, 16)
	assert.Error(t, err)

	_, err = ComputeFingerprint(gradientImage(32, 32), 1)
	assert.Error(t, err)
}

func TestDecodeImageSupportedFormats(t *testing.T) {
	dir := t.TempDir()
	src := gradientImage(64, 64)

	jpgPath := filepath.Join(dir, "img.jpg")
	f, err := os.Create(jpgPath)
	require.NoError(t, err)
	require.NoError(t, jpeg.Encode(f, src, &jpeg.Options{Quality: 90}))
	require.NoError(t, f.Close())

	pngPath := filepath.Join(dir, "img.png")
	f, err = os.Create(pngPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	bmpPath := filepath.Join(dir, "img.bmp")
	f, err = os.Create(bmpPath)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, src))
	require.NoError(t, f.Close())

	for _, path := range []string{jpgPath, pngPath, bmpPath} {
		img, err := DecodeImage(path)
		require.NoError(t, err, "decoding %s", path)
		assert.Equal(t, 64, img.Bounds().Dx())
	}
}

func TestDecodeImageCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.jpg")
	require.NoError(t, os.WriteFile(path, []byte("not an image at all"), 0644))

	_, err := DecodeImage(path)
	assert.Error(t, err)
}

func TestFingerprintFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, gradientImage(128, 128)))
	require.NoError(t, f.Close())

	fp, err := FingerprintFile(path, 16)
	require.NoError(t, err)
	assert.Equal(t, 256, fp.Bits())

	_, err = FingerprintFile(filepath.Join(dir, "missing.png"), 16)
	assert.Error(t, err)
}
