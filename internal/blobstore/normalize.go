package blobstore

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
)

const (
	maxImageSide = 1600
	jpegQuality  = 82
)

// NormalizeImage orients, downsizes and re-encodes a photo as JPEG.
// Payloads that do not decode as images are returned unchanged with the
// caller's extension.
func NormalizeImage(data []byte, ext string) ([]byte, string) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return data, normalizeExt(ext)
	}

	if exceeds(img.Bounds()) {
		img = imaging.Fit(img, maxImageSide, maxImageSide, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return data, normalizeExt(ext)
	}
	return buf.Bytes(), ".jpg"
}

func exceeds(b image.Rectangle) bool {
	return b.Dx() > maxImageSide || b.Dy() > maxImageSide
}
