package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Computations holds everything shading needs to know about a hit
type Computations struct {
	T      float64
	Object Shape

	Point      core.Tuple
	OverPoint  core.Tuple // nudged along the normal, for shadow and reflection rays
	UnderPoint core.Tuple // nudged against the normal, for refraction rays

	EyeV     core.Tuple
	NormalV  core.Tuple
	ReflectV core.Tuple
	Inside   bool

	// N1 and N2 are the refractive indices on the incoming and outgoing
	// sides of the surface
	N1, N2 float64
}

// PrepareComputations derives shading data for hit, which must be one of
// xs. xs may be in any order.
func PrepareComputations(hit Intersection, ray core.Ray, xs []Intersection) (Computations, error) {
	comps := Computations{
		T:      hit.T,
		Object: hit.Object,
		Point:  ray.Position(hit.T),
		EyeV:   ray.Direction.Negate(),
	}

	normal, err := hit.Object.NormalAt(comps.Point)
	if err != nil {
		return Computations{}, fmt.Errorf("prepare computations: %w", err)
	}
	if normal.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		normal = normal.Negate()
	}
	comps.NormalV = normal

	comps.ReflectV = ray.Direction.Reflect(normal)
	comps.OverPoint = comps.Point.Add(normal.Multiply(core.Epsilon))
	comps.UnderPoint = comps.Point.Subtract(normal.Multiply(core.Epsilon))
	comps.N1, comps.N2 = refractiveIndices(hit, Intersections(xs...))

	return comps, nil
}

// refractiveIndices walks sorted intersections tracking which objects the
// ray is inside of, and returns the indices on either side of hit
func refractiveIndices(hit Intersection, sorted []Intersection) (n1, n2 float64) {
	n1, n2 = 1.0, 1.0
	var containers []Shape

	for _, x := range sorted {
		isHit := x.Equal(hit)
		if isHit && len(containers) > 0 {
			n1 = containers[len(containers)-1].Material.RefractiveIndex
		}

		if idx := indexOfShape(containers, x.Object); idx >= 0 {
			containers = append(containers[:idx], containers[idx+1:]...)
		} else {
			containers = append(containers, x.Object)
		}

		if isHit {
			if len(containers) > 0 {
				n2 = containers[len(containers)-1].Material.RefractiveIndex
			}
			return n1, n2
		}
	}
	return n1, n2
}

func indexOfShape(shapes []Shape, s Shape) int {
	for i, candidate := range shapes {
		if candidate.Equal(s) {
			return i
		}
	}
	return -1
}

// Schlick approximates the fraction of light reflected at the surface
func (c Computations) Schlick() float64 {
	cos := c.EyeV.Dot(c.NormalV)

	// total internal reflection only happens going into a lower index
	if c.N1 > c.N2 {
		n := c.N1 / c.N2
		sin2t := n * n * (1 - cos*cos)
		if sin2t > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2t)
	}

	r0 := (c.N1 - c.N2) / (c.N1 + c.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
