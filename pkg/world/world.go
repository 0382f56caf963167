// Package world holds the objects and light of a scene and implements
// recursive Whitted shading: direct Phong lighting with hard shadows, plus
// mirror reflection and Snell refraction blended by Schlick's approximation.
package world

import (
	"fmt"
	"math"
	"slices"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// DefaultMaxDepth is the recursion budget for secondary rays when rendering
const DefaultMaxDepth = 5

// World is a collection of shapes lit by at most one light. A World is safe
// for concurrent shading once it is no longer being modified.
type World struct {
	objects []geometry.Shape
	light   lights.Light
}

// New creates an empty world with no light
func New() *World {
	return &World{}
}

// NewDefaultWorld creates the two-sphere world used throughout the tests:
// a light at (-10, 10, -10), a unit green-ish sphere and a half-size
// default sphere inside it
func NewDefaultWorld() *World {
	outer := geometry.NewSphere()
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere().WithTransform(core.Scaling(0.5, 0.5, 0.5))

	w := New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White()))
	w.SetObjects(outer, inner)
	return w
}

// Objects returns a copy of the world's shapes
func (w *World) Objects() []geometry.Shape {
	return slices.Clone(w.objects)
}

// SetObjects replaces the world's shapes
func (w *World) SetObjects(objects ...geometry.Shape) {
	w.objects = slices.Clone(objects)
}

// AddObject appends shapes to the world
func (w *World) AddObject(objects ...geometry.Shape) {
	w.objects = append(w.objects, objects...)
}

// Light returns the world's light, if any
func (w *World) Light() (lights.Light, bool) {
	return w.light, w.light != nil
}

// SetLight replaces the world's light. A nil light removes it.
func (w *World) SetLight(light lights.Light) {
	w.light = light
}

// IntersectWorld intersects ray with every object and returns all
// intersections sorted by ascending t
func (w *World) IntersectWorld(ray core.Ray) ([]geometry.Intersection, error) {
	var xs []geometry.Intersection
	for i, object := range w.objects {
		objectXs, err := object.Intersect(ray)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		xs = append(xs, objectXs...)
	}
	geometry.SortIntersections(xs)
	return xs, nil
}

// IsShadowed reports whether any object lies between point and the light.
// Without a light every point is in shadow.
func (w *World) IsShadowed(point core.Tuple) (bool, error) {
	light, ok := w.Light()
	if !ok {
		return true, nil
	}

	v := light.Position().Subtract(point)
	distance := v.Magnitude()
	if distance < core.Epsilon {
		return false, nil
	}

	xs, err := w.IntersectWorld(core.NewRay(point, v.Normalize()))
	if err != nil {
		return false, err
	}

	hit, ok := geometry.Hit(xs)
	return ok && hit.T < distance, nil
}

// ShadeHit computes the color at a prepared hit: direct lighting plus
// reflected and refracted contributions. remaining bounds the number of
// further secondary rays.
func (w *World) ShadeHit(comps geometry.Computations, remaining int) (core.Color, error) {
	surface, err := w.surfaceColor(comps)
	if err != nil {
		return core.Color{}, err
	}

	reflected, err := w.ReflectedColor(comps, remaining)
	if err != nil {
		return core.Color{}, err
	}
	refracted, err := w.RefractedColor(comps, remaining)
	if err != nil {
		return core.Color{}, err
	}

	m := comps.Object.Material
	if m.Reflective > 0 && m.Transparency > 0 {
		reflectance := comps.Schlick()
		return surface.
			Add(reflected.Multiply(reflectance)).
			Add(refracted.Multiply(1 - reflectance)), nil
	}
	return surface.Add(reflected).Add(refracted), nil
}

// surfaceColor is the direct Phong term, black when there is no light
func (w *World) surfaceColor(comps geometry.Computations) (core.Color, error) {
	light, ok := w.Light()
	if !ok {
		return core.Black(), nil
	}

	shadowed, err := w.IsShadowed(comps.OverPoint)
	if err != nil {
		return core.Color{}, err
	}

	// Lit at the over point so patterns sampled at y=0 don't speckle
	return comps.Object.Material.Lighting(comps.Object, light, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed)
}

// ReflectedColor traces a mirror ray from the hit. It is black when the
// surface is not reflective or the budget is spent.
func (w *World) ReflectedColor(comps geometry.Computations, remaining int) (core.Color, error) {
	reflective := comps.Object.Material.Reflective
	if remaining < 1 || core.Equal(reflective, 0) {
		return core.Black(), nil
	}

	reflectRay := core.NewRay(comps.OverPoint, comps.ReflectV)
	c, err := w.ColorAt(reflectRay, remaining-1)
	if err != nil {
		return core.Color{}, err
	}
	return c.Multiply(reflective), nil
}

// RefractedColor traces a transmitted ray through the hit using Snell's
// law. It is black for opaque surfaces, a spent budget, or total internal
// reflection.
func (w *World) RefractedColor(comps geometry.Computations, remaining int) (core.Color, error) {
	transparency := comps.Object.Material.Transparency
	if remaining < 1 || core.Equal(transparency, 0) {
		return core.Black(), nil
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black(), nil
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Multiply(nRatio*cosI - cosT).Subtract(comps.EyeV.Multiply(nRatio))

	refractRay := core.NewRay(comps.UnderPoint, direction)
	c, err := w.ColorAt(refractRay, remaining-1)
	if err != nil {
		return core.Color{}, err
	}
	return c.Multiply(transparency), nil
}

// ColorAt returns the color seen along ray, black on a miss
func (w *World) ColorAt(ray core.Ray, remaining int) (core.Color, error) {
	xs, err := w.IntersectWorld(ray)
	if err != nil {
		return core.Color{}, err
	}

	hit, ok := geometry.Hit(xs)
	if !ok {
		return core.Black(), nil
	}

	comps, err := geometry.PrepareComputations(hit, ray, xs)
	if err != nil {
		return core.Color{}, err
	}
	return w.ShadeHit(comps, remaining)
}

// compile-time check that shapes can carry patterns
var _ material.Object = geometry.Shape{}
