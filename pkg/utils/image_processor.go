package utils

import (
	"bytes"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"io"

	"velora-storefront/pkg/logger"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// ProcessImage resizes and converts a product image to WebP before it is
// uploaded to the admin catalog endpoint. Keeps the upload under the remote's
// size limits without asking the operator to pre-process files.
func ProcessImage(r io.Reader, filename string) ([]byte, string, error) {
	// 1. Decode generic image
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	logger.Debug().Str("file", filename).Str("format", format).Msg("Processing image")

	// 2. Resize if too large (Max Width 2000px)
	bounds := img.Bounds()
	if bounds.Dx() > 2000 {
		img = imaging.Resize(img, 2000, 0, imaging.Lanczos)
	}

	// 3. Prepare Buffer
	var buf bytes.Buffer

	// 4. Encode as WebP, quality 85
	err = webp.Encode(&buf, img, &webp.Options{
		Lossless: false,
		Quality:  85,
	})
	if err != nil {
		// If WebP fails, fallback to JPEG
		logger.Warn().Err(err).Msg("WebP encoding failed, falling back to JPEG")
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85})
		if err != nil {
			return nil, "", err
		}
		return buf.Bytes(), "image/jpeg", nil
	}

	return buf.Bytes(), "image/webp", nil
}

// IsImage verifies simple content type
func IsImage(contentType string) bool {
	return contentType == "image/jpeg" || contentType == "image/png" || contentType == "image/webp" || contentType == "image/jpg"
}
