// Package scene builds the named preset scenes the CLI and web server render.
package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/world"
)

// ErrUnknownScene is returned by New for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Scene is a world together with the camera that views it
type Scene struct {
	Name        string
	Description string
	World       *world.World
	Camera      *renderer.Camera
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	Name        string `json:"name"`        // Identifier passed to New
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
}

type builder func(width, height int) *Scene

type registration struct {
	description string
	build       builder
}

var registry = map[string]registration{
	"default": {
		description: "Three spheres on a floor in front of a wall",
		build:       newDefaultScene,
	},
	"patterns": {
		description: "Stripe, gradient, ring and checker patterns",
		build:       newPatternsScene,
	},
	"reflection": {
		description: "Glossy spheres on a mirrored checker floor",
		build:       newReflectionScene,
	},
	"glass": {
		description: "Glass sphere with an air bubble against a checkered wall",
		build:       newGlassScene,
	},
	"default-world": {
		description: "The two-sphere default world viewed head on",
		build:       newDefaultWorldScene,
	},
}

// DefaultSceneName is rendered when no scene is chosen
const DefaultSceneName = "default"

// New builds the named scene for a width x height image
func New(name string, width, height int) (*Scene, error) {
	reg, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene %q: invalid image size %dx%d", name, width, height)
	}

	s := reg.build(width, height)
	s.Name = name
	s.Description = reg.description
	return s, nil
}

// List returns every registered scene sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for name, reg := range registry {
		infos = append(infos, SceneInfo{
			Name:        name,
			DisplayName: titleCase(name),
			Description: reg.description,
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name < infos[j].Name
	})
	return infos
}

// Exists reports whether name is a registered scene
func Exists(name string) bool {
	_, ok := registry[name]
	return ok
}

// titleCase converts a scene name to title case
// e.g., "default-world" -> "Default World"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
