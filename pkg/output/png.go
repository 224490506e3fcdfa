package output

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/nfnt/resize"

	"github.com/df07/go-mirror-raytracer/pkg/core"
)

// EncodePNG encodes a frame as PNG bytes
func EncodePNG(frame *core.Frame) ([]byte, error) {
	return EncodeImage(frame.Image())
}

// EncodeImage encodes any image as PNG bytes
func EncodeImage(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// SaveImage writes an image to path as a PNG file
func SaveImage(path string, img image.Image) error {
	data, err := EncodeImage(img)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Thumbnail scales a frame down to fit within maxWidth x maxHeight, keeping its aspect ratio.
// Frames that already fit are returned unscaled.
func Thumbnail(frame *core.Frame, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, frame.Image(), resize.Bilinear)
}
