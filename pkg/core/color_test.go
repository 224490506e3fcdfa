package core

import (
	"errors"
	"testing"
)

func TestColor_Mix(t *testing.T) {
	tests := []struct {
		name     string
		base     Color
		other    Color
		weight   float64
		expected Color
	}{
		{"No reflection", NewColor(10, 20, 30), NewColor(200, 200, 200), 0, NewColor(10, 20, 30)},
		{"Full mirror", NewColor(10, 20, 30), NewColor(200, 100, 0), 1, NewColor(200, 100, 0)},
		{"Half", NewColor(0, 100, 255), NewColor(255, 0, 0), 0.5, NewColor(128, 50, 128)},
		{"Weight above one clamps", NewColor(0, 0, 0), NewColor(255, 255, 255), 3, NewColor(255, 255, 255)},
		{"Negative weight clamps", NewColor(40, 40, 40), NewColor(255, 255, 255), -2, NewColor(40, 40, 40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.base.Mix(tt.other, tt.weight); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestColor_Mix_StaysInRange(t *testing.T) {
	// exhaustive over the channel extremes, stepped over the weight
	channels := []uint8{0, 1, 127, 128, 254, 255}
	for _, a := range channels {
		for _, b := range channels {
			for step := 0; step <= 100; step++ {
				w := float64(step) / 100
				got := NewColor(a, a, a).Mix(NewColor(b, b, b), w)
				lo, hi := min(a, b), max(a, b)
				if got.R < lo || got.R > hi {
					t.Fatalf("Mix(%d, %d, %f) = %d, outside [%d, %d]", a, b, w, got.R, lo, hi)
				}
			}
		}
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#18393E")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if c != NewColor(0x18, 0x39, 0x3E) {
		t.Errorf("Expected #18393e, got %v", c)
	}
	if c.String() != "#18393e" {
		t.Errorf("Expected round-trip string, got %s", c.String())
	}

	for _, bad := range []string{"", "#123", "zzzzzz", "#1234567"} {
		if _, err := ParseHexColor(bad); err == nil {
			t.Errorf("Expected error for %q", bad)
		}
	}
}

func TestNewFrame(t *testing.T) {
	frame, err := NewFrame(make([]byte, 4*3*2), 3, 2, 1.5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	img := frame.Image()
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("Expected 3x2 image, got %v", img.Bounds())
	}
	img.Pix[0] = 42
	if frame.Pixels[0] != 42 {
		t.Error("Expected image to share the frame buffer")
	}

	if _, err := NewFrame(make([]byte, 10), 3, 2, 0); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame for short buffer, got %v", err)
	}
	if _, err := NewFrame(nil, 0, 2, 0); !errors.Is(err, ErrInvalidFrame) {
		t.Errorf("Expected ErrInvalidFrame for zero width, got %v", err)
	}
}
