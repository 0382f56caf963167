package material

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Pattern provides spatially-varying colors for materials. Patterns are
// sampled in their own local space, reached from world space through the
// owning object's transform and then the pattern's transform.
//
// The set of patterns is closed: StripePattern, GradientPattern,
// RingPattern, CheckersPattern and TestPattern.
type Pattern interface {
	// LocalColorAt returns the color at a point already in pattern space
	LocalColorAt(point core.Tuple) core.Color

	// Transform returns the pattern-to-object transform
	Transform() core.Matrix

	// Inverse returns the object-to-pattern transform
	Inverse() (core.Matrix, error)

	// WithTransform returns a copy of the pattern using transform m
	WithTransform(m core.Matrix) Pattern

	pattern()
}

// Object is the surface a pattern is painted on
type Object interface {
	// Inverse returns the world-to-object transform
	Inverse() (core.Matrix, error)
}

// PatternAtObject samples pattern at a world-space point on object
func PatternAtObject(pattern Pattern, object Object, worldPoint core.Tuple) (core.Color, error) {
	objectInverse, err := object.Inverse()
	if err != nil {
		return core.Color{}, fmt.Errorf("object transform: %w", err)
	}
	patternInverse, err := pattern.Inverse()
	if err != nil {
		return core.Color{}, fmt.Errorf("pattern transform: %w", err)
	}

	objectPoint := objectInverse.MultiplyTuple(worldPoint)
	patternPoint := patternInverse.MultiplyTuple(objectPoint)
	return pattern.LocalColorAt(patternPoint), nil
}

// patternTransform holds a pattern transform and its cached inverse
type patternTransform struct {
	transform  core.Matrix
	inverse    core.Matrix
	inverseErr error
}

func newPatternTransform(m core.Matrix) patternTransform {
	inv, err := m.Inverse()
	return patternTransform{transform: m, inverse: inv, inverseErr: err}
}

// Transform returns the pattern-to-object transform
func (pt patternTransform) Transform() core.Matrix {
	return pt.transform
}

// Inverse returns the cached inverse transform
func (pt patternTransform) Inverse() (core.Matrix, error) {
	return pt.inverse, pt.inverseErr
}

// patternsEqual compares kind, transform and colors
func patternsEqual(a, b Pattern) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if !a.Transform().Equal(b.Transform()) {
		return false
	}

	switch pa := a.(type) {
	case StripePattern:
		pb, ok := b.(StripePattern)
		return ok && pa.A.Equal(pb.A) && pa.B.Equal(pb.B)
	case GradientPattern:
		pb, ok := b.(GradientPattern)
		return ok && pa.A.Equal(pb.A) && pa.B.Equal(pb.B)
	case RingPattern:
		pb, ok := b.(RingPattern)
		return ok && pa.A.Equal(pb.A) && pa.B.Equal(pb.B)
	case CheckersPattern:
		pb, ok := b.(CheckersPattern)
		return ok && pa.A.Equal(pb.A) && pa.B.Equal(pb.B)
	case TestPattern:
		_, ok := b.(TestPattern)
		return ok
	default:
		return false
	}
}
