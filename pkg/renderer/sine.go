package renderer

import "math"

const (
	// SinePeriod is the time in seconds for the sine pattern to repeat
	SinePeriod = 5.0

	defaultSineWidth  = 800
	defaultSineHeight = 600
)

// SineRenderer draws a scrolling red/blue cosine pattern.
// It has no scene and is used to calibrate display and recording paths.
type SineRenderer struct {
	width  int
	height int
}

// NewSineRenderer creates a sine pattern renderer; widths below 2 or
// non-positive heights fall back to 800x600
func NewSineRenderer(width, height int) *SineRenderer {
	if width < 2 || height <= 0 {
		width, height = defaultSineWidth, defaultSineHeight
	}
	return &SineRenderer{width: width, height: height}
}

// Render implements core.Renderer
func (s *SineRenderer) Render(t float64) ([]byte, int, int, error) {
	tm := math.Mod(t, SinePeriod) / SinePeriod
	redPeriod := s.width - 1
	bluePeriod := s.width + 1

	pixels := make([]byte, 4*s.width*s.height)
	for i := 0; i < s.width*s.height; i++ {
		pr := float64(i%redPeriod) / float64(redPeriod)
		pb := float64(i%bluePeriod) / float64(bluePeriod)

		pixels[4*i] = wave(tm + pr)
		pixels[4*i+1] = 0
		pixels[4*i+2] = wave(tm - pb)
		pixels[4*i+3] = 255
	}
	return pixels, s.width, s.height, nil
}

// wave maps cos(2πx) onto 0..255
func wave(x float64) uint8 {
	return uint8(math.Round((math.Cos(2*math.Pi*x) + 1) / 2 * 255))
}
