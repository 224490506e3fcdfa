package renderer

import (
	"bytes"
	"testing"
)

func TestSineRenderer_Dimensions(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		expectedWidth  int
		expectedHeight int
	}{
		{"default", 0, 0, 800, 600},
		{"custom", 64, 16, 64, 16},
		{"too narrow", 1, 10, 800, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pixels, w, h, err := NewSineRenderer(tt.width, tt.height).Render(0)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if w != tt.expectedWidth || h != tt.expectedHeight || len(pixels) != 4*w*h {
				t.Errorf("Expected %dx%d, got %dx%d with %d bytes", tt.expectedWidth, tt.expectedHeight, w, h, len(pixels))
			}
		})
	}
}

func TestSineRenderer_Pattern(t *testing.T) {
	r := NewSineRenderer(10, 4)
	pixels, _, _, _ := r.Render(0)

	// Pixel 0 starts both waves at their peak
	if pixels[0] != 255 || pixels[2] != 255 {
		t.Errorf("Expected red and blue peaks at pixel 0, got %v", pixels[:4])
	}
	for i := 0; i < len(pixels); i += 4 {
		if pixels[i+1] != 0 || pixels[i+3] != 255 {
			t.Fatalf("Pixel %d: expected green 0 and alpha 255, got %v", i/4, pixels[i:i+4])
		}
	}

	// Red repeats every width-1 pixels
	if pixels[4*9] != pixels[0] {
		t.Errorf("Expected red to repeat after 9 pixels, got %d vs %d", pixels[4*9], pixels[0])
	}
	// Blue repeats every width+1 pixels
	if pixels[4*11+2] != pixels[2] {
		t.Errorf("Expected blue to repeat after 11 pixels, got %d vs %d", pixels[4*11+2], pixels[2])
	}
}

func TestSineRenderer_Period(t *testing.T) {
	r := NewSineRenderer(32, 8)
	a, _, _, _ := r.Render(1.25)
	b, _, _, _ := r.Render(1.25 + SinePeriod)
	c, _, _, _ := r.Render(2)

	if !bytes.Equal(a, b) {
		t.Error("Expected the pattern to repeat after one period")
	}
	if bytes.Equal(a, c) {
		t.Error("Expected the pattern to scroll with time")
	}
}
