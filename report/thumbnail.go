package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/jpeg"

	"github.com/nfnt/resize"

	"dupefinder/imageprocessor"
)

// thumbnailDataURI decodes the image at path, bounds it to
// maxSize x maxSize preserving aspect ratio, and returns it as an
// inline JPEG data URI. The decoded image lives only for the duration
// of this call.
func thumbnailDataURI(path string, maxSize uint, quality int) (string, error) {
	img, err := imageprocessor.DecodeImage(path)
	if err != nil {
		return "", err
	}

	thumb := resize.Thumbnail(maxSize, maxSize, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode thumbnail for %s: %w", path, err)
	}

	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
