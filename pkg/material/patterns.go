package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// isEven reports whether a floored coordinate sum is an even integer
func isEven(v float64) bool {
	return core.Equal(math.Mod(v, 2), 0)
}

// StripePattern alternates A and B along the x axis
type StripePattern struct {
	patternTransform
	A, B core.Color
}

// NewStripePattern creates a stripe pattern with an identity transform
func NewStripePattern(a, b core.Color) StripePattern {
	return StripePattern{patternTransform: newPatternTransform(core.Identity()), A: a, B: b}
}

// LocalColorAt returns A when floor(x) is even, B otherwise
func (p StripePattern) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X)) {
		return p.A
	}
	return p.B
}

// WithTransform returns a copy using transform m
func (p StripePattern) WithTransform(m core.Matrix) Pattern {
	p.patternTransform = newPatternTransform(m)
	return p
}

func (StripePattern) pattern() {}

// GradientPattern linearly blends from A to B across each unit of x
type GradientPattern struct {
	patternTransform
	A, B core.Color
}

// NewGradientPattern creates a gradient pattern with an identity transform
func NewGradientPattern(a, b core.Color) GradientPattern {
	return GradientPattern{patternTransform: newPatternTransform(core.Identity()), A: a, B: b}
}

// LocalColorAt returns A + (B-A) * fract(x)
func (p GradientPattern) LocalColorAt(point core.Tuple) core.Color {
	distance := p.B.Subtract(p.A)
	fraction := point.X - math.Floor(point.X)
	return p.A.Add(distance.Multiply(fraction))
}

// WithTransform returns a copy using transform m
func (p GradientPattern) WithTransform(m core.Matrix) Pattern {
	p.patternTransform = newPatternTransform(m)
	return p
}

func (GradientPattern) pattern() {}

// RingPattern alternates A and B in concentric rings around the y axis
type RingPattern struct {
	patternTransform
	A, B core.Color
}

// NewRingPattern creates a ring pattern with an identity transform
func NewRingPattern(a, b core.Color) RingPattern {
	return RingPattern{patternTransform: newPatternTransform(core.Identity()), A: a, B: b}
}

// LocalColorAt returns A when floor(sqrt(x²+z²)) is even, B otherwise
func (p RingPattern) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(math.Sqrt(point.X*point.X + point.Z*point.Z))) {
		return p.A
	}
	return p.B
}

// WithTransform returns a copy using transform m
func (p RingPattern) WithTransform(m core.Matrix) Pattern {
	p.patternTransform = newPatternTransform(m)
	return p
}

func (RingPattern) pattern() {}

// CheckersPattern alternates A and B in unit cubes
type CheckersPattern struct {
	patternTransform
	A, B core.Color
}

// NewCheckersPattern creates a 3D checker pattern with an identity transform
func NewCheckersPattern(a, b core.Color) CheckersPattern {
	return CheckersPattern{patternTransform: newPatternTransform(core.Identity()), A: a, B: b}
}

// LocalColorAt returns A when floor(x)+floor(y)+floor(z) is even, B otherwise
func (p CheckersPattern) LocalColorAt(point core.Tuple) core.Color {
	if isEven(math.Floor(point.X) + math.Floor(point.Y) + math.Floor(point.Z)) {
		return p.A
	}
	return p.B
}

// WithTransform returns a copy using transform m
func (p CheckersPattern) WithTransform(m core.Matrix) Pattern {
	p.patternTransform = newPatternTransform(m)
	return p
}

func (CheckersPattern) pattern() {}

// TestPattern echoes the pattern-space point as a color. Useful for
// checking how object and pattern transforms compose.
type TestPattern struct {
	patternTransform
}

// NewTestPattern creates a test pattern with an identity transform
func NewTestPattern() TestPattern {
	return TestPattern{patternTransform: newPatternTransform(core.Identity())}
}

// LocalColorAt returns (x, y, z) as a color
func (p TestPattern) LocalColorAt(point core.Tuple) core.Color {
	return core.NewColor(point.X, point.Y, point.Z)
}

// WithTransform returns a copy using transform m
func (p TestPattern) WithTransform(m core.Matrix) Pattern {
	p.patternTransform = newPatternTransform(m)
	return p
}

func (TestPattern) pattern() {}
