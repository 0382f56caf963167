package geometry

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Primitive is the object-space part of a shape: a unit sphere, the xz
// plane, or a test stand-in. Primitives know nothing about transforms or
// materials; Shape wraps them with both.
type Primitive interface {
	// LocalIntersect returns the t values where an object-space ray meets
	// the primitive, ascending
	LocalIntersect(ray core.Ray) []float64

	// LocalNormalAt returns the object-space normal at an object-space point
	LocalNormalAt(point core.Tuple) core.Tuple

	primitive()
}
