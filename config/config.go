// Package config holds the tunable constants of every effect and loads overrides
// from TOML or YAML files.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"backdrop/fx/cubes"
	"backdrop/fx/geometry"
	"backdrop/fx/helix"
	"backdrop/fx/matrix"
	"backdrop/fx/particles"
	"backdrop/fx/spheres"
	"backdrop/fx/waves"
	"backdrop/gfx"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Pointer scopes.
const (
	ScopeSurface  = "surface"
	ScopeViewport = "viewport"
)

// App holds the settings that are not tied to one effect. Command-line flags
// override them.
type App struct {
	Effects []string `toml:"effects" yaml:"effects"`
	Seed    uint64   `toml:"seed" yaml:"seed"`
	HUD     bool     `toml:"hud" yaml:"hud"`
	// Scope selects how pointer events reach surfaces: "surface" delivers local
	// coordinates to the surface under the pointer only, "viewport" delivers
	// viewport coordinates to every surface.
	Scope string `toml:"scope" yaml:"scope"`
}

// Config is the full configuration tree. Each effect reads only its own table.
type Config struct {
	App       App              `toml:"app" yaml:"app"`
	Cubes     cubes.Config     `toml:"cubes" yaml:"cubes"`
	Helix     helix.Config     `toml:"helix" yaml:"helix"`
	Geometry  geometry.Config  `toml:"geometry" yaml:"geometry"`
	Spheres   spheres.Config   `toml:"spheres" yaml:"spheres"`
	Waves     waves.Config     `toml:"waves" yaml:"waves"`
	Particles particles.Config `toml:"particles" yaml:"particles"`
	Matrix    matrix.Config    `toml:"matrix" yaml:"matrix"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		App: App{
			Effects: []string{cubes.Name},
			Seed:    1,
			Scope:   ScopeSurface,
		},
		Cubes:     cubes.DefaultConfig(),
		Helix:     helix.DefaultConfig(),
		Geometry:  geometry.DefaultConfig(),
		Spheres:   spheres.DefaultConfig(),
		Waves:     waves.DefaultConfig(),
		Particles: particles.DefaultConfig(),
		Matrix:    matrix.DefaultConfig(),
	}
}

// Format is a config file encoding.
type Format uint8

const (
	FormatTOML Format = iota + 1
	FormatYAML
)

// FormatOf picks the encoding from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
}

// Load reads path and merges it over Default. The result is validated.
func Load(path string) (Config, error) {
	f, err := FormatOf(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read: %w", err)
	}
	cfg, err := Decode(data, f)
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", filepath.Base(path), err)
	}
	return cfg, nil
}

// Decode parses data over Default and validates the result. Unknown keys are errors.
func Decode(data []byte, f Format) (Config, error) {
	cfg := Default()
	switch f {
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("decode toml: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document decodes to io.EOF; treat it as "no overrides".
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, fmt.Errorf("decode yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unknown format %d", f)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every constraint violation at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	count := func(name string, n int) {
		check(n >= 0, "%s: count must not be negative (got %d)", name, n)
	}
	depth := func(name string, d gfx.Scalar, z gfx.ZRange) {
		check(d > 0, "%s: perspective must be positive (got %v)", name, d)
		check(z.Min < z.Max, "%s: z range is empty (%v..%v)", name, z.Min, z.Max)
		check(d+z.Min > 0, "%s: z.min %v puts points behind the eye (perspective %v)", name, z.Min, d)
	}
	span := func(name string, lo, hi gfx.Scalar) {
		check(lo >= 0 && lo <= hi, "%s: bad range %v..%v", name, lo, hi)
	}

	switch c.App.Scope {
	case ScopeSurface, ScopeViewport:
	default:
		check(false, "app: unknown pointer scope %q", c.App.Scope)
	}

	count("cubes", c.Cubes.Count)
	depth("cubes", c.Cubes.Perspective, c.Cubes.Z)
	span("cubes: size", c.Cubes.SizeMin, c.Cubes.SizeMax)

	count("helix", c.Helix.Helixes)
	count("helix: segments", c.Helix.Segments)
	depth("helix", c.Helix.Perspective, c.Helix.Z)
	check(c.Helix.LinkEvery >= 0, "helix: link_every must not be negative")

	count("geometry", c.Geometry.Count)
	depth("geometry", c.Geometry.Perspective, c.Geometry.Z)
	span("geometry: size", c.Geometry.SizeMin, c.Geometry.SizeMax)
	for _, k := range c.Geometry.Kinds {
		_, err := geometry.ParseKind(k)
		check(err == nil, "geometry: unknown shape %q", k)
	}

	count("spheres", c.Spheres.Count)
	depth("spheres", c.Spheres.Perspective, c.Spheres.Z)
	check(c.Spheres.Threshold >= 0, "spheres: threshold must not be negative")
	span("spheres: radius", c.Spheres.RadiusMin, c.Spheres.RadiusMax)

	count("waves: cols", c.Waves.Cols)
	count("waves: rows", c.Waves.Rows)
	depth("waves", c.Waves.Perspective, c.Waves.Z)
	check(c.Waves.Spacing > 0, "waves: spacing must be positive")

	count("particles", c.Particles.Count)
	span("particles: size", c.Particles.SizeMin, c.Particles.SizeMax)
	check(c.Particles.LinkDistance >= 0, "particles: link_distance must not be negative")

	check(c.Matrix.FontSize > 0, "matrix: font_size must be positive")
	check(c.Matrix.ResetChance >= 0 && c.Matrix.ResetChance <= 1, "matrix: reset_chance must be in [0,1]")

	return errors.Join(errs...)
}
