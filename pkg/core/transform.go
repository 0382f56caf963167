package core

import "math"

// Translation returns a matrix that moves points by (x, y, z). Vectors are unaffected.
func Translation(x, y, z float64) Matrix {
	m := Identity()
	m[0][3] = x
	m[1][3] = y
	m[2][3] = z
	return m
}

// Scaling returns a matrix that scales by (x, y, z)
func Scaling(x, y, z float64) Matrix {
	m := Identity()
	m[0][0] = x
	m[1][1] = y
	m[2][2] = z
	return m
}

// RotationX returns a rotation around the X axis (radians)
func RotationX(rad float64) Matrix {
	cos, sin := math.Cos(rad), math.Sin(rad)
	m := Identity()
	m[1][1] = cos
	m[1][2] = -sin
	m[2][1] = sin
	m[2][2] = cos
	return m
}

// RotationY returns a rotation around the Y axis (radians)
func RotationY(rad float64) Matrix {
	cos, sin := math.Cos(rad), math.Sin(rad)
	m := Identity()
	m[0][0] = cos
	m[0][2] = sin
	m[2][0] = -sin
	m[2][2] = cos
	return m
}

// RotationZ returns a rotation around the Z axis (radians)
func RotationZ(rad float64) Matrix {
	cos, sin := math.Cos(rad), math.Sin(rad)
	m := Identity()
	m[0][0] = cos
	m[0][1] = -sin
	m[1][0] = sin
	m[1][1] = cos
	return m
}

// Shearing returns a matrix where each component moves in proportion to the others.
// xy means "x moved in proportion to y".
func Shearing(xy, xz, yx, yz, zx, zy float64) Matrix {
	m := Identity()
	m[0][1] = xy
	m[0][2] = xz
	m[1][0] = yx
	m[1][2] = yz
	m[2][0] = zx
	m[2][1] = zy
	return m
}

// ViewTransform orients the world relative to an eye at from, looking at to
func ViewTransform(from, to, up Tuple) Matrix {
	forward := to.Subtract(from).Normalize()
	left := forward.Cross(up.Normalize())
	trueUp := left.Cross(forward)

	orientation := Matrix{
		{left.X, left.Y, left.Z, 0},
		{trueUp.X, trueUp.Y, trueUp.Z, 0},
		{-forward.X, -forward.Y, -forward.Z, 0},
		{0, 0, 0, 1},
	}

	return orientation.Multiply(Translation(-from.X, -from.Y, -from.Z))
}

// TransformBuilder composes transforms fluently. Operations are applied to
// geometry in the order they are added, so
//
//	NewTransform().Scale(2, 2, 2).Translate(0, 1, 0).Build()
//
// scales first and then translates.
type TransformBuilder struct {
	steps []Matrix
}

// NewTransform starts an empty builder (Build returns identity)
func NewTransform() *TransformBuilder {
	return &TransformBuilder{}
}

// Then appends an arbitrary matrix
func (b *TransformBuilder) Then(m Matrix) *TransformBuilder {
	b.steps = append(b.steps, m)
	return b
}

// Translate appends a translation
func (b *TransformBuilder) Translate(x, y, z float64) *TransformBuilder {
	return b.Then(Translation(x, y, z))
}

// Scale appends a scaling
func (b *TransformBuilder) Scale(x, y, z float64) *TransformBuilder {
	return b.Then(Scaling(x, y, z))
}

// RotateX appends a rotation around X
func (b *TransformBuilder) RotateX(rad float64) *TransformBuilder {
	return b.Then(RotationX(rad))
}

// RotateY appends a rotation around Y
func (b *TransformBuilder) RotateY(rad float64) *TransformBuilder {
	return b.Then(RotationY(rad))
}

// RotateZ appends a rotation around Z
func (b *TransformBuilder) RotateZ(rad float64) *TransformBuilder {
	return b.Then(RotationZ(rad))
}

// Shear appends a shearing
func (b *TransformBuilder) Shear(xy, xz, yx, yz, zx, zy float64) *TransformBuilder {
	return b.Then(Shearing(xy, xz, yx, yz, zx, zy))
}

// Build resolves the chain into one matrix (last step leftmost)
func (b *TransformBuilder) Build() Matrix {
	result := Identity()
	for i := len(b.steps) - 1; i >= 0; i-- {
		result = result.Multiply(b.steps[i])
	}
	return result
}
