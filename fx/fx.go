// Package fx maps surface identifiers to effect constructors.
package fx

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"backdrop/config"
	"backdrop/fx/cubes"
	"backdrop/fx/geometry"
	"backdrop/fx/helix"
	"backdrop/fx/matrix"
	"backdrop/fx/particles"
	"backdrop/fx/spheres"
	"backdrop/fx/waves"
	"backdrop/scene"
)

// Constructor builds one effect scene for a w×h surface.
type Constructor func(cfg config.Config, w, h int, rng *rand.Rand) scene.Animator

var registry = map[string]Constructor{
	cubes.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return cubes.New(c.Cubes, w, h, rng)
	},
	helix.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return helix.New(c.Helix, w, h, rng)
	},
	geometry.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return geometry.New(c.Geometry, w, h, rng)
	},
	spheres.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return spheres.New(c.Spheres, w, h, rng)
	},
	waves.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return waves.New(c.Waves, w, h, rng)
	},
	particles.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return particles.New(c.Particles, w, h, rng)
	},
	matrix.Name: func(c config.Config, w, h int, rng *rand.Rand) scene.Animator {
		return matrix.New(c.Matrix, w, h, rng)
	},
}

// ErrUnknown is returned for names with no registered effect.
type ErrUnknown struct {
	Name string
}

func (e *ErrUnknown) Error() string { return fmt.Sprintf("fx: unknown effect %q", e.Name) }

// New constructs the named effect.
func New(name string, cfg config.Config, w, h int, rng *rand.Rand) (scene.Animator, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, &ErrUnknown{Name: name}
	}
	return ctor(cfg, w, h, rng), nil
}

// Known reports whether name is a registered effect.
func Known(name string) bool {
	_, ok := registry[name]
	return ok
}

// Names returns the registered effect names in sorted order.
func Names() []string {
	out := make([]string, 0, len(registry))
	for n := range registry {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Next returns the effect after name in Names order, wrapping around.
func Next(name string) string {
	names := Names()
	i := slices.Index(names, name)
	return names[(i+1)%len(names)]
}
