package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

func newCamera(width, height int, fov float64, from, to core.Tuple) *renderer.Camera {
	camera := renderer.NewCamera(width, height, fov)
	camera.SetTransform(core.ViewTransform(from, to, core.Vector(0, 1, 0)))
	return camera
}

// newDefaultScene creates three matte spheres on a floor with a back wall
func newDefaultScene(width, height int) *Scene {
	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White()))

	floor := geometry.NewPlane()
	floor.Material.Color = core.NewColor(1, 0.9, 0.9)
	floor.Material.Specular = 0

	wall := geometry.NewPlane().WithTransform(
		core.NewTransform().RotateX(math.Pi/2).Translate(0, 0, 10).Build())
	wall.Material = floor.Material

	middle := geometry.NewSphere().WithTransform(core.Translation(-0.5, 1, 0.5))
	middle.Material.Color = core.NewColor(0.1, 1, 0.5)
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3

	right := geometry.NewSphere().WithTransform(
		core.NewTransform().Scale(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5).Build())
	right.Material.Color = core.NewColor(0.5, 1, 0.1)
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3

	left := geometry.NewSphere().WithTransform(
		core.NewTransform().Scale(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75).Build())
	left.Material.Color = core.NewColor(1, 0.8, 0.1)
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.3

	w.SetObjects(floor, wall, middle, right, left)

	return &Scene{
		World:  w,
		Camera: newCamera(width, height, math.Pi/3, core.Point(0, 1.5, -5), core.Point(0, 1, 0)),
	}
}

// newPatternsScene shows every pattern variant, each with its own transform
func newPatternsScene(width, height int) *Scene {
	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White()))

	floor := geometry.NewPlane()
	floor.Material.Pattern = material.NewCheckersPattern(core.White(), core.NewColor(0.3, 0.3, 0.3))
	floor.Material.Specular = 0

	wall := geometry.NewPlane().WithTransform(
		core.NewTransform().RotateX(math.Pi/2).Translate(0, 0, 10).Build())
	wall.Material.Pattern = material.NewStripePattern(core.NewColor(0.9, 0.9, 1), core.NewColor(0.6, 0.6, 0.8)).
		WithTransform(core.NewTransform().Scale(0.5, 0.5, 0.5).RotateY(math.Pi / 4).Build())
	wall.Material.Specular = 0

	middle := geometry.NewSphere().WithTransform(core.Translation(-0.5, 1, 0.5))
	middle.Material.Pattern = material.NewRingPattern(core.NewColor(0.1, 1, 0.5), core.NewColor(0.05, 0.4, 0.2)).
		WithTransform(core.NewTransform().Scale(0.2, 0.2, 0.2).RotateX(math.Pi / 2).Build())
	middle.Material.Diffuse = 0.7
	middle.Material.Specular = 0.3

	right := geometry.NewSphere().WithTransform(
		core.NewTransform().Scale(0.5, 0.5, 0.5).Translate(1.5, 0.5, -0.5).Build())
	right.Material.Pattern = material.NewGradientPattern(core.NewColor(1, 0.2, 0.2), core.NewColor(0.2, 0.2, 1)).
		WithTransform(core.NewTransform().Scale(2, 1, 1).Translate(-1, 0, 0).Build())
	right.Material.Diffuse = 0.7
	right.Material.Specular = 0.3

	left := geometry.NewSphere().WithTransform(
		core.NewTransform().Scale(0.33, 0.33, 0.33).Translate(-1.5, 0.33, -0.75).Build())
	left.Material.Pattern = material.NewStripePattern(core.NewColor(1, 0.8, 0.1), core.White()).
		WithTransform(core.NewTransform().Scale(0.25, 0.25, 0.25).RotateZ(math.Pi / 3).Build())
	left.Material.Diffuse = 0.7
	left.Material.Specular = 0.3

	w.SetObjects(floor, wall, middle, right, left)

	return &Scene{
		World:  w,
		Camera: newCamera(width, height, math.Pi/3, core.Point(0, 1.5, -5), core.Point(0, 1, 0)),
	}
}

// newReflectionScene puts glossy spheres on a mirrored checker floor
func newReflectionScene(width, height int) *Scene {
	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White()))

	floor := geometry.NewPlane()
	floor.Material.Pattern = material.NewCheckersPattern(core.NewColor(0.35, 0.35, 0.35), core.NewColor(0.65, 0.65, 0.65))
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.4

	sky := geometry.NewPlane().WithTransform(
		core.NewTransform().RotateX(math.Pi/2).Translate(0, 0, 12).Build())
	sky.Material.Pattern = material.NewGradientPattern(core.NewColor(0.6, 0.8, 1), core.NewColor(0.2, 0.3, 0.6)).
		WithTransform(core.NewTransform().Scale(20, 1, 1).Translate(-10, 0, 0).Build())
	sky.Material.Ambient = 0.6
	sky.Material.Diffuse = 0.4
	sky.Material.Specular = 0

	red := geometry.NewSphere().WithTransform(core.Translation(-1.2, 1, 0.5))
	red.Material.Color = core.NewColor(0.8, 0.1, 0.1)
	red.Material.Reflective = 0.2
	red.Material.Shininess = 300

	chrome := geometry.NewSphere().WithTransform(core.Translation(1.2, 1, 0.5))
	chrome.Material.Color = core.NewColor(0.1, 0.1, 0.1)
	chrome.Material.Diffuse = 0.2
	chrome.Material.Reflective = 0.9
	chrome.Material.Shininess = 300

	small := geometry.NewSphere().WithTransform(
		core.NewTransform().Scale(0.4, 0.4, 0.4).Translate(0, 0.4, -1).Build())
	small.Material.Color = core.NewColor(0.2, 0.6, 1)
	small.Material.Reflective = 0.3

	w.SetObjects(floor, sky, red, chrome, small)

	return &Scene{
		World:  w,
		Camera: newCamera(width, height, math.Pi/3, core.Point(0, 2, -6), core.Point(0, 0.8, 0)),
	}
}

// newGlassScene is a hollow glass sphere in front of a checkered wall: a
// glass shell around a slightly smaller sphere of air
func newGlassScene(width, height int) *Scene {
	w := world.New()
	w.SetLight(lights.NewPointLight(core.Point(2, 10, -5), core.NewColor(0.9, 0.9, 0.9)))

	wall := geometry.NewPlane().WithTransform(
		core.NewTransform().RotateX(1.5708).Translate(0, 0, 10).Build())
	wall.Material.Pattern = material.NewCheckersPattern(core.NewColor(0.15, 0.15, 0.15), core.NewColor(0.85, 0.85, 0.85))
	wall.Material.Ambient = 0.8
	wall.Material.Diffuse = 0.2
	wall.Material.Specular = 0

	glassMaterial := material.Material{
		Color:           core.White(),
		Ambient:         0,
		Diffuse:         0,
		Specular:        0.9,
		Shininess:       300,
		Reflective:      0.9,
		Transparency:    0.9,
		RefractiveIndex: material.IndexGlass,
	}
	glass := geometry.NewSphere().WithMaterial(glassMaterial)

	airMaterial := glassMaterial
	airMaterial.RefractiveIndex = 1.0000034
	air := geometry.NewSphere().
		WithTransform(core.Scaling(0.5, 0.5, 0.5)).
		WithMaterial(airMaterial)

	w.SetObjects(wall, glass, air)

	return &Scene{
		World:  w,
		Camera: newCamera(width, height, 0.45, core.Point(0, 0, -5), core.Point(0, 0, 0)),
	}
}

// newDefaultWorldScene views world.NewDefaultWorld from (0, 0, -5)
func newDefaultWorldScene(width, height int) *Scene {
	return &Scene{
		World:  world.NewDefaultWorld(),
		Camera: newCamera(width, height, math.Pi/2, core.Point(0, 0, -5), core.Point(0, 0, 0)),
	}
}
