// Package imgproc normalizes uploaded photos before they are persisted:
// EXIF orientation is applied and discarded, transparency is dropped, large
// images are bounded and the result is re-encoded as JPEG.
package imgproc

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

const (
	// MaxDimension bounds the larger side of a stored photo.
	MaxDimension = 1920

	jpegQuality = 85
)

// Normalize decodes JPEG or PNG bytes and returns canonical JPEG bytes:
// pixels upright (EXIF rotation applied, metadata dropped), opaque RGB,
// larger dimension at most MaxDimension with aspect ratio preserved.
// Images already within bounds keep their original resolution.
func Normalize(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	flattened := flatten(img)

	bounds := flattened.Bounds()
	if bounds.Dx() > MaxDimension || bounds.Dy() > MaxDimension {
		flattened = imaging.Fit(flattened, MaxDimension, MaxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flattened, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// flatten drops any alpha channel or palette. RGB values are kept as-is,
// no compositing against a background color.
func flatten(img image.Image) *image.NRGBA {
	dst := imaging.Clone(img)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}
