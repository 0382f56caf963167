package material

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Common refractive indices
const (
	IndexVacuum  = 1.0
	IndexAir     = 1.00029
	IndexWater   = 1.333
	IndexGlass   = 1.5
	IndexDiamond = 2.417
)

// Material describes how a surface responds to light under the Phong model,
// plus its mirror and transmission properties. When Pattern is set it
// replaces Color as the surface color.
type Material struct {
	Color           core.Color
	Pattern         Pattern
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64
	Transparency    float64
	RefractiveIndex float64
}

// DefaultMaterial returns a white, opaque, non-reflective material
func DefaultMaterial() Material {
	return Material{
		Color:           core.White(),
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200,
		Reflective:      0,
		Transparency:    0,
		RefractiveIndex: IndexVacuum,
	}
}

// GlassMaterial returns the default material made fully transparent with
// the refractive index of glass
func GlassMaterial() Material {
	m := DefaultMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = IndexGlass
	return m
}

// Equal compares every field within core.Epsilon
func (m Material) Equal(other Material) bool {
	return m.Color.Equal(other.Color) &&
		patternsEqual(m.Pattern, other.Pattern) &&
		core.Equal(m.Ambient, other.Ambient) &&
		core.Equal(m.Diffuse, other.Diffuse) &&
		core.Equal(m.Specular, other.Specular) &&
		core.Equal(m.Shininess, other.Shininess) &&
		core.Equal(m.Reflective, other.Reflective) &&
		core.Equal(m.Transparency, other.Transparency) &&
		core.Equal(m.RefractiveIndex, other.RefractiveIndex)
}

// Lighting shades point on object with the Phong reflection model. The
// ambient term is always present; diffuse and specular are dropped when
// inShadow is set or the light is behind the surface.
func (m Material) Lighting(object Object, light lights.Light, point, eye, normal core.Tuple, inShadow bool) (core.Color, error) {
	surface := m.Color
	if m.Pattern != nil {
		var err error
		surface, err = PatternAtObject(m.Pattern, object, point)
		if err != nil {
			return core.Color{}, err
		}
	}

	effective := surface.Hadamard(light.Intensity())
	ambient := effective.Multiply(m.Ambient)
	if inShadow {
		return ambient, nil
	}

	lightv := light.Position().Subtract(point).Normalize()
	lightDotNormal := lightv.Dot(normal)
	if lightDotNormal < 0 {
		return ambient, nil
	}

	diffuse := effective.Multiply(m.Diffuse * lightDotNormal)

	// specular only when the reflection points back toward the eye
	specular := core.Black()
	reflectv := lightv.Negate().Reflect(normal)
	if reflectDotEye := reflectv.Dot(eye); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity().Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular), nil
}
