package core

import (
	"errors"
	"fmt"
	"image"
)

// ErrInvalidFrame is returned when a pixel buffer does not match its dimensions
var ErrInvalidFrame = errors.New("invalid frame")

// Frame is one rendered RGBA image: 4 bytes per pixel, row-major, top row first
type Frame struct {
	Pixels []byte
	Width  int
	Height int
	Time   float64
}

// NewFrame wraps a pixel buffer, validating its length
func NewFrame(pixels []byte, width, height int, t float64) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidFrame, width, height)
	}
	if len(pixels) != 4*width*height {
		return nil, fmt.Errorf("%w: %d bytes for %dx%d", ErrInvalidFrame, len(pixels), width, height)
	}
	return &Frame{Pixels: pixels, Width: width, Height: height, Time: t}, nil
}

// Image returns an *image.RGBA sharing the frame's pixel buffer
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Pixels,
		Stride: 4 * f.Width,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}
