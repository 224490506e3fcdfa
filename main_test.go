package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-mirror-raytracer/pkg/output"
	"github.com/df07/go-mirror-raytracer/pkg/renderer"
)

func TestCreateRenderer(t *testing.T) {
	tests := []struct {
		name           string
		opts           Options
		expectError    bool
		expectedWidth  int
		expectedHeight int
	}{
		{"default scene", Options{Scene: "default"}, false, 400, 300},
		{"custom size", Options{Scene: "single-sphere", Width: 32, Height: 24}, false, 32, 24},
		{"json scene by path", Options{Scene: "scenes/carousel.json", Width: 16, Height: 16}, false, 16, 16},
		{"sine pattern", Options{Scene: SineSceneName}, false, 800, 600},
		{"unknown scene", Options{Scene: "nonexistent"}, true, 0, 0},
		{"empty scene name", Options{Scene: ""}, true, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := createRenderer(tt.opts, renderer.NopLogger{})
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene '%s', but got none", tt.opts.Scene)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error for scene '%s': %v", tt.opts.Scene, err)
			}

			if rt, ok := r.(*renderer.Raytracer); ok {
				if w, h := rt.Size(); w != tt.expectedWidth || h != tt.expectedHeight {
					t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, w, h)
				}
				return
			}
			_, w, h, err := r.Render(0)
			if err != nil {
				t.Fatalf("Unexpected render error: %v", err)
			}
			if w != tt.expectedWidth || h != tt.expectedHeight {
				t.Errorf("Expected %dx%d, got %dx%d", tt.expectedWidth, tt.expectedHeight, w, h)
			}
		})
	}
}

func TestFrameTimes(t *testing.T) {
	single := frameTimes(Options{Frames: 1, Time: 3, End: 10})
	if len(single) != 1 || single[0] != 3 {
		t.Errorf("Expected a single frame at t=3, got %v", single)
	}

	many := frameTimes(Options{Frames: 4, Time: 0, End: 2 * math.Pi})
	if len(many) != 4 || many[0] != 0 || many[3] != 2*math.Pi {
		t.Errorf("Expected 4 frames over [0, 2π], got %v", many)
	}
}

func TestSceneDirName(t *testing.T) {
	tests := map[string]string{
		"default":              "default",
		"scenes/carousel.json": "carousel",
		"sine":                 "sine",
	}
	for input, expected := range tests {
		if got := sceneDirName(input); got != expected {
			t.Errorf("sceneDirName(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestRun(t *testing.T) {
	out := t.TempDir()
	opts := Options{Scene: "single-sphere", Frames: 3, Time: 0, End: 1, Width: 20, Height: 15, Out: out, Thumb: 8}

	if err := run(context.Background(), opts, renderer.NopLogger{}); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	for i := 0; i < 3; i++ {
		for _, name := range []string{output.FrameName(i), fmt.Sprintf("thumb_%06d.png", i)} {
			if _, err := os.Stat(filepath.Join(out, "single-sphere", name)); err != nil {
				t.Errorf("Expected %s: %v", name, err)
			}
		}
	}
}
