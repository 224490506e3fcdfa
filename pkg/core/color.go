package core

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit per channel RGB color
type Color struct {
	R, G, B uint8
}

var (
	// Sky is returned for rays that escape the scene
	Sky = Color{R: 0x87, G: 0xCE, B: 0xEB}
	// Black is the zero color
	Black = Color{}
)

// NewColor creates a new Color
func NewColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// ParseHexColor parses "#rrggbb" (the leading # is optional)
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: expected 6 hex digits", s)
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: uint8(value >> 16), G: uint8(value >> 8), B: uint8(value)}, nil
}

// Mix blends c toward other by weight: c + (other - c) * weight, per channel.
// The weight is clamped to [0,1] and each channel is rounded and clamped to [0,255].
func (c Color) Mix(other Color, weight float64) Color {
	weight = ClampReflectivity(weight)
	return Color{
		R: mixChannel(c.R, other.R, weight),
		G: mixChannel(c.G, other.G, weight),
		B: mixChannel(c.B, other.B, weight),
	}
}

func mixChannel(base, other uint8, weight float64) uint8 {
	v := math.Round(float64(base) + (float64(other)-float64(base))*weight)
	return uint8(max(0, min(255, v)))
}

// String formats the color as #rrggbb
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
