package geometry

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Shape places a primitive in the world with a transform and a material.
// Shapes are values: copying one copies its transform and material.
type Shape struct {
	primitive  Primitive
	transform  core.Matrix
	inverse    core.Matrix
	inverseErr error

	Material material.Material
}

func newShape(p Primitive) Shape {
	s := Shape{primitive: p, Material: material.DefaultMaterial()}
	s.SetTransform(core.Identity())
	return s
}

// NewSphere creates a unit sphere at the origin with the default material
func NewSphere() Shape {
	return newShape(Sphere{})
}

// NewGlassSphere creates a unit sphere with a fully transparent glass material
func NewGlassSphere() Shape {
	return newShape(Sphere{}).WithMaterial(material.GlassMaterial())
}

// NewPlane creates the xz plane with the default material
func NewPlane() Shape {
	return newShape(Plane{})
}

// NewTestShape creates a shape that records local rays into recorder
func NewTestShape(recorder *RayRecorder) Shape {
	return newShape(TestShape{Recorder: recorder})
}

// Primitive returns the object-space primitive
func (s Shape) Primitive() Primitive {
	return s.primitive
}

// SetTransform replaces the object-to-world transform and caches its inverse.
// A singular transform is accepted here; Intersect and NormalAt report it.
func (s *Shape) SetTransform(m core.Matrix) {
	s.transform = m
	s.inverse, s.inverseErr = m.Inverse()
}

// Transform returns the object-to-world transform
func (s Shape) Transform() core.Matrix {
	return s.transform
}

// Inverse returns the world-to-object transform
func (s Shape) Inverse() (core.Matrix, error) {
	return s.inverse, s.inverseErr
}

// WithTransform returns a copy of s using transform m
func (s Shape) WithTransform(m core.Matrix) Shape {
	s.SetTransform(m)
	return s
}

// WithMaterial returns a copy of s using material m
func (s Shape) WithMaterial(m material.Material) Shape {
	s.Material = m
	return s
}

// Intersect returns every intersection of a world-space ray with s
func (s Shape) Intersect(ray core.Ray) ([]Intersection, error) {
	if s.inverseErr != nil {
		return nil, fmt.Errorf("intersect shape: %w", s.inverseErr)
	}

	localRay := ray.Transform(s.inverse)
	ts := s.primitive.LocalIntersect(localRay)
	if len(ts) == 0 {
		return nil, nil
	}

	xs := make([]Intersection, len(ts))
	for i, t := range ts {
		xs[i] = NewIntersection(t, s)
	}
	return xs, nil
}

// NormalAt returns the unit world-space normal at a world-space point on s
func (s Shape) NormalAt(worldPoint core.Tuple) (core.Tuple, error) {
	if s.inverseErr != nil {
		return core.Tuple{}, fmt.Errorf("shape normal: %w", s.inverseErr)
	}

	localPoint := s.inverse.MultiplyTuple(worldPoint)
	localNormal := s.primitive.LocalNormalAt(localPoint)

	// Normals transform by the inverse transpose; translation leaks into w
	worldNormal := s.inverse.Transpose().MultiplyTuple(localNormal)
	worldNormal.W = 0
	return worldNormal.Normalize(), nil
}

// Equal reports whether s and other have the same primitive kind,
// transform and material
func (s Shape) Equal(other Shape) bool {
	if !samePrimitive(s.primitive, other.primitive) {
		return false
	}
	return s.transform.Equal(other.transform) && s.Material.Equal(other.Material)
}

func samePrimitive(a, b Primitive) bool {
	switch a.(type) {
	case Sphere:
		_, ok := b.(Sphere)
		return ok
	case Plane:
		_, ok := b.(Plane)
		return ok
	case TestShape:
		_, ok := b.(TestShape)
		return ok
	default:
		return false
	}
}
