package display

import (
	"math"
	"testing"
)

func TestFit(t *testing.T) {
	tests := []struct {
		name             string
		frameW, frameH   int
		windowW, windowH int
		expected         Viewport
	}{
		{"same size", 400, 300, 400, 300, Viewport{1, 0, 0}},
		{"double", 400, 300, 800, 600, Viewport{2, 0, 0}},
		{"wide window pillarboxes", 400, 300, 1000, 600, Viewport{2, 100, 0}},
		{"tall window letterboxes", 400, 300, 400, 500, Viewport{1, 0, 100}},
		{"shrink", 800, 600, 400, 400, Viewport{0.5, 0, 50}},
		{"empty window", 400, 300, 0, 0, Viewport{Scale: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(tt.frameW, tt.frameH, tt.windowW, tt.windowH)
			if math.Abs(got.Scale-tt.expected.Scale) > 1e-12 ||
				math.Abs(got.OffsetX-tt.expected.OffsetX) > 1e-12 ||
				math.Abs(got.OffsetY-tt.expected.OffsetY) > 1e-12 {
				t.Errorf("Expected %+v, got %+v", tt.expected, got)
			}
		})
	}
}
