package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// Camera is a pinhole camera looking down -z in its own space, with a
// canvas one unit in front of the eye
type Camera struct {
	hsize       int
	vsize       int
	fieldOfView float64

	transform  core.Matrix
	inverse    core.Matrix
	inverseErr error

	halfWidth  float64
	halfHeight float64
	pixelSize  float64

	// MaxDepth is the recursion budget passed to World.ColorAt
	MaxDepth int
}

// NewCamera creates a camera for an hsize x vsize canvas with the given
// horizontal field of view in radians
func NewCamera(hsize, vsize int, fieldOfView float64) *Camera {
	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		MaxDepth:    world.DefaultMaxDepth,
	}
	c.SetTransform(core.Identity())

	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c
}

// SetTransform sets the view transform, usually from core.ViewTransform
func (c *Camera) SetTransform(m core.Matrix) {
	c.transform = m
	c.inverse, c.inverseErr = m.Inverse()
}

func (c *Camera) Transform() core.Matrix { return c.transform }
func (c *Camera) HSize() int             { return c.hsize }
func (c *Camera) VSize() int             { return c.vsize }
func (c *Camera) FieldOfView() float64   { return c.fieldOfView }
func (c *Camera) PixelSize() float64     { return c.pixelSize }
func (c *Camera) HalfWidth() float64     { return c.halfWidth }
func (c *Camera) HalfHeight() float64    { return c.halfHeight }

// RayForPixel returns the world-space ray from the eye through the center
// of pixel (px, py)
func (c *Camera) RayForPixel(px, py int) (core.Ray, error) {
	if c.inverseErr != nil {
		return core.Ray{}, fmt.Errorf("camera transform: %w", c.inverseErr)
	}

	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.MultiplyTuple(core.Point(worldX, worldY, -1))
	origin := c.inverse.MultiplyTuple(core.Point(0, 0, 0))
	direction := pixel.Subtract(origin).Normalize()

	return core.NewRay(origin, direction), nil
}

// Render traces every pixel of w on the calling goroutine
func (c *Camera) Render(w *world.World) (*core.Canvas, error) {
	canvas := core.NewCanvas(c.hsize, c.vsize)
	for y := 0; y < c.vsize; y++ {
		for x := 0; x < c.hsize; x++ {
			color, err := c.colorForPixel(w, x, y)
			if err != nil {
				return nil, err
			}
			canvas.Set(x, y, color)
		}
	}
	return canvas, nil
}

func (c *Camera) colorForPixel(w *world.World, x, y int) (core.Color, error) {
	ray, err := c.RayForPixel(x, y)
	if err != nil {
		return core.Color{}, err
	}
	color, err := w.ColorAt(ray, c.MaxDepth)
	if err != nil {
		return core.Color{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
	}
	return color, nil
}
