package geometry

import (
	"cmp"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Intersection is a ray parameter t at which a ray meets Object
type Intersection struct {
	T      float64
	Object Shape
}

// NewIntersection creates an intersection at t on object
func NewIntersection(t float64, object Shape) Intersection {
	return Intersection{T: t, Object: object}
}

// Equal compares t within core.Epsilon and the shapes by value
func (i Intersection) Equal(other Intersection) bool {
	return core.Equal(i.T, other.T) && i.Object.Equal(other.Object)
}

// Intersections collects xs into a new slice sorted by ascending t
func Intersections(xs ...Intersection) []Intersection {
	out := slices.Clone(xs)
	SortIntersections(out)
	return out
}

// SortIntersections sorts xs in place by ascending t. Equal t values keep
// their relative order.
func SortIntersections(xs []Intersection) {
	slices.SortStableFunc(xs, func(a, b Intersection) int {
		return cmp.Compare(a.T, b.T)
	})
}

// Hit returns the visible intersection: the one with the smallest
// non-negative t. xs is not modified.
func Hit(xs []Intersection) (Intersection, bool) {
	best := -1
	for i, x := range xs {
		if x.T < 0 {
			continue
		}
		if best < 0 || x.T < xs[best].T {
			best = i
		}
	}
	if best < 0 {
		return Intersection{}, false
	}
	return xs[best], true
}
