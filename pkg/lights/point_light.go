package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// PointLight is a light source with no size, existing at a single point
type PointLight struct {
	position  core.Tuple
	intensity core.Color
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position core.Tuple, intensity core.Color) PointLight {
	return PointLight{position: position, intensity: intensity}
}

// Type returns LightTypePoint
func (pl PointLight) Type() LightType { return LightTypePoint }

// Position returns the light's world-space position
func (pl PointLight) Position() core.Tuple { return pl.position }

// Intensity returns the light's color
func (pl PointLight) Intensity() core.Color { return pl.intensity }

func (pl PointLight) light() {}

// Equal compares position and intensity within core.Epsilon
func (pl PointLight) Equal(other PointLight) bool {
	return pl.position.Equal(other.position) && pl.intensity.Equal(other.intensity)
}
