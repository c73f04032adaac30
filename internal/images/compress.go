package images

import (
	"bytes"

	"github.com/disintegration/imaging"
)

const (
	// Stored images are bounded to this pixel dimension on the longer
	// side and re-encoded as JPEG at fixed quality.
	maxDimension = 1280
	jpegQuality  = 75

	// Payloads already under this size are left alone even when their
	// dimensions exceed the bound; re-encoding them buys nothing.
	compressByteThreshold = 200 * 1024
)

// Compress downsamples an image payload to the bounded dimension and
// re-encodes it at fixed JPEG quality. The second return reports whether
// the payload changed; undecodable or already-small payloads come back
// untouched.
func Compress(data []byte) ([]byte, bool) {
	if len(data) < compressByteThreshold {
		return data, false
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return data, false
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return data, false
	}
	if buf.Len() >= len(data) {
		return data, false
	}
	return buf.Bytes(), true
}
