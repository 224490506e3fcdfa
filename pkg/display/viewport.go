// Package display fits fixed-size frames into a resizable window.
package display

// Viewport places a frame inside a window: scale the frame by Scale,
// then translate it by (OffsetX, OffsetY).
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Fit scales a frame as large as possible inside the window while keeping
// its aspect ratio, centering it so the unused area forms equal bars.
func Fit(frameWidth, frameHeight, windowWidth, windowHeight int) Viewport {
	if frameWidth <= 0 || frameHeight <= 0 || windowWidth <= 0 || windowHeight <= 0 {
		return Viewport{Scale: 1}
	}

	scaleX := float64(windowWidth) / float64(frameWidth)
	scaleY := float64(windowHeight) / float64(frameHeight)
	scale := min(scaleX, scaleY)

	return Viewport{
		Scale:   scale,
		OffsetX: (float64(windowWidth) - float64(frameWidth)*scale) / 2,
		OffsetY: (float64(windowHeight) - float64(frameHeight)*scale) / 2,
	}
}
