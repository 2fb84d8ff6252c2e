package scene

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name used on the command line
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"`
}

type builder func(seed uint64) *Scene

var builtInScenes = map[string]struct {
	description string
	build       builder
}{
	"default": {
		description: "Diffuse, hollow glass and fuzzy metal spheres with depth of field",
		build:       func(uint64) *Scene { return NewDefaultScene() },
	},
	"simple": {
		description: "One diffuse sphere on the ground, pinhole camera",
		build:       func(uint64) *Scene { return NewSimpleScene() },
	},
	"random-spheres": {
		description: "Hundreds of small random spheres around three large ones (layout follows the seed)",
		build:       NewRandomSpheresScene,
	},
	"sphere-grid": {
		description: "10x10 grid of rainbow-colored metallic spheres",
		build:       func(uint64) *Scene { return NewSphereGridScene() },
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtInScenes))
	for name := range builtInScenes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ListScenes returns info for every built-in scene, sorted by name
func ListScenes() []SceneInfo {
	names := Names()
	scenes := make([]SceneInfo, 0, len(names))
	for _, name := range names {
		scenes = append(scenes, SceneInfo{
			ID:          name,
			DisplayName: titleCase(name),
			Description: builtInScenes[name].description,
		})
	}
	return scenes
}

// New builds the named scene. seed only affects procedurally generated scenes.
func New(name string, seed uint64) (*Scene, error) {
	entry, ok := builtInScenes[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
	}
	return entry.build(seed), nil
}

// titleCase converts kebab-case or snake_case to Title Case
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
