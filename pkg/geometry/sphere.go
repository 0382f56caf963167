package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Sphere is the unit sphere centered on the object-space origin
type Sphere struct{}

// LocalIntersect solves |O + tD|² = 1 for t
func (Sphere) LocalIntersect(ray core.Ray) []float64 {
	// Vector from sphere center to ray origin
	sphereToRay := ray.Origin.Subtract(core.Point(0, 0, 0))

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	t1 := (-b - sqrtD) / (2 * a)
	t2 := (-b + sqrtD) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	return []float64{t1, t2}
}

// LocalNormalAt points from the center through point
func (Sphere) LocalNormalAt(point core.Tuple) core.Tuple {
	return point.Subtract(core.Point(0, 0, 0))
}

func (Sphere) primitive() {}
