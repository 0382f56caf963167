package core

import (
	"fmt"
	"image/color"
)

// Color is a linear RGB triple. Components are not clamped until conversion.
type Color struct {
	R, G, B float64
}

// NewColor creates a new color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Black returns (0,0,0)
func Black() Color { return Color{} }

// White returns (1,1,1)
func White() Color { return Color{1, 1, 1} }

// Add returns the sum of two colors
func (c Color) Add(other Color) Color {
	return Color{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Subtract returns the difference of two colors
func (c Color) Subtract(other Color) Color {
	return Color{c.R - other.R, c.G - other.G, c.B - other.B}
}

// Multiply returns the color scaled by a scalar
func (c Color) Multiply(scalar float64) Color {
	return Color{c.R * scalar, c.G * scalar, c.B * scalar}
}

// Hadamard returns the component-wise product of two colors
func (c Color) Hadamard(other Color) Color {
	return Color{c.R * other.R, c.G * other.G, c.B * other.B}
}

// Equal compares two colors within Epsilon
func (c Color) Equal(other Color) bool {
	return Equal(c.R, other.R) && Equal(c.G, other.G) && Equal(c.B, other.B)
}

// Clamp returns a color with components clamped to [min, max]
func (c Color) Clamp(minVal, maxVal float64) Color {
	return Color{
		R: max(minVal, min(maxVal, c.R)),
		G: max(minVal, min(maxVal, c.G)),
		B: max(minVal, min(maxVal, c.B)),
	}
}

// ToRGBA converts to an 8-bit color with clamping
func (c Color) ToRGBA() color.RGBA {
	clamped := c.Clamp(0.0, 1.0)
	return color.RGBA{
		R: uint8(255 * clamped.R),
		G: uint8(255 * clamped.G),
		B: uint8(255 * clamped.B),
		A: 255,
	}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}
