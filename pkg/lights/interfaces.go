package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint LightType = "point"
)

// Light is a source of direct illumination. The set of implementations is
// closed to this package: PointLight is currently the only one.
type Light interface {
	Type() LightType

	// Position is the world-space point shadow rays are cast toward
	Position() core.Tuple

	// Intensity is the color and brightness of the emitted light
	Intensity() core.Color

	light()
}
