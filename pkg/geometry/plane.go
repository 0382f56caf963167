package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Plane is the infinite xz plane through the object-space origin
type Plane struct{}

// LocalIntersect returns the single crossing of the y=0 plane. Rays
// parallel to the plane, including coplanar ones, miss.
func (Plane) LocalIntersect(ray core.Ray) []float64 {
	if math.Abs(ray.Direction.Y) < core.Epsilon {
		return nil
	}
	return []float64{-ray.Origin.Y / ray.Direction.Y}
}

// LocalNormalAt is +y everywhere
func (Plane) LocalNormalAt(point core.Tuple) core.Tuple {
	return core.Vector(0, 1, 0)
}

func (Plane) primitive() {}
