package core

import "image"

// Canvas is a fixed-size grid of colors addressed by zero-based (x, y)
type Canvas struct {
	width  int
	height int
	pixels []Color // column-major: index = x*height + y
}

// NewCanvas creates a black canvas
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]Color, width*height),
	}
}

// Width returns the number of columns
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows
func (c *Canvas) Height() int { return c.height }

// Get returns the color at (x, y). Out of range coordinates panic.
func (c *Canvas) Get(x, y int) Color {
	return c.pixels[c.index(x, y)]
}

// Set writes the color at (x, y). Out of range coordinates panic.
func (c *Canvas) Set(x, y int, color Color) {
	c.pixels[c.index(x, y)] = color
}

// Fill sets every pixel to color
func (c *Canvas) Fill(color Color) {
	for i := range c.pixels {
		c.pixels[i] = color
	}
}

// ToImage converts the canvas to an RGBA image, clamping each channel
func (c *Canvas) ToImage() *image.RGBA {
	return c.SubImage(image.Rect(0, 0, c.width, c.height))
}

// SubImage converts a region of the canvas to an RGBA image whose origin is (0,0)
func (c *Canvas) SubImage(bounds image.Rectangle) *image.RGBA {
	bounds = bounds.Intersect(image.Rect(0, 0, c.width, c.height))
	img := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			img.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, c.Get(x, y).ToRGBA())
		}
	}
	return img
}

func (c *Canvas) index(x, y int) int {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		panic("canvas: pixel out of range")
	}
	return x*c.height + y
}
