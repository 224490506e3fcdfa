package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Renderer produces a fixed-size RGBA pixel buffer for a time value in seconds.
// Width and height never change between calls.
type Renderer interface {
	Render(t float64) (pixels []byte, width, height int, err error)
}
