package core

import (
	"fmt"
	"math"
)

// Tuple is a homogeneous coordinate. Points carry W=1, directions W=0.
type Tuple struct {
	X, Y, Z, W float64
}

// NewTuple creates a tuple from raw components
func NewTuple(x, y, z, w float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: w}
}

// Point creates a tuple representing a position in space
func Point(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 1}
}

// Vector creates a tuple representing a direction
func Vector(x, y, z float64) Tuple {
	return Tuple{X: x, Y: y, Z: z, W: 0}
}

// IsPoint reports whether the tuple is a point
func (t Tuple) IsPoint() bool {
	return Equal(t.W, 1)
}

// IsVector reports whether the tuple is a direction
func (t Tuple) IsVector() bool {
	return Equal(t.W, 0)
}

// Add returns the component-wise sum. point+vector stays a point.
func (t Tuple) Add(other Tuple) Tuple {
	return Tuple{t.X + other.X, t.Y + other.Y, t.Z + other.Z, t.W + other.W}
}

// Subtract returns the component-wise difference. point-point is a vector.
func (t Tuple) Subtract(other Tuple) Tuple {
	return Tuple{t.X - other.X, t.Y - other.Y, t.Z - other.Z, t.W - other.W}
}

// Negate returns the negative of the tuple
func (t Tuple) Negate() Tuple {
	return Tuple{-t.X, -t.Y, -t.Z, -t.W}
}

// Multiply returns the tuple scaled by a scalar
func (t Tuple) Multiply(scalar float64) Tuple {
	return Tuple{t.X * scalar, t.Y * scalar, t.Z * scalar, t.W * scalar}
}

// Divide returns the tuple divided by a scalar
func (t Tuple) Divide(scalar float64) Tuple {
	return Tuple{t.X / scalar, t.Y / scalar, t.Z / scalar, t.W / scalar}
}

// Magnitude returns the length of the tuple
func (t Tuple) Magnitude() float64 {
	return math.Sqrt(t.X*t.X + t.Y*t.Y + t.Z*t.Z + t.W*t.W)
}

// Normalize returns a unit tuple in the same direction
func (t Tuple) Normalize() Tuple {
	length := t.Magnitude()
	if length == 0 {
		return t
	}
	return t.Divide(length)
}

// Dot returns the dot product of two tuples
func (t Tuple) Dot(other Tuple) float64 {
	return t.X*other.X + t.Y*other.Y + t.Z*other.Z + t.W*other.W
}

// Cross returns the cross product of two vectors. The result is always a vector.
func (t Tuple) Cross(other Tuple) Tuple {
	return Vector(
		t.Y*other.Z-t.Z*other.Y,
		t.Z*other.X-t.X*other.Z,
		t.X*other.Y-t.Y*other.X,
	)
}

// Reflect mirrors the vector about a normal: v - n*2*dot(v,n)
func (t Tuple) Reflect(normal Tuple) Tuple {
	return t.Subtract(normal.Multiply(2 * t.Dot(normal)))
}

// Equal compares two tuples within Epsilon
func (t Tuple) Equal(other Tuple) bool {
	return Equal(t.X, other.X) && Equal(t.Y, other.Y) && Equal(t.Z, other.Z) && Equal(t.W, other.W)
}

func (t Tuple) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", t.X, t.Y, t.Z, t.W)
}
