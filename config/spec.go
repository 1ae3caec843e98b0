package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strings"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

const DefaultFile = "confetti.yaml"

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Window  WindowSpec  `yaml:"window"`
	Ground  GroundSpec  `yaml:"ground"`
	Spawn   SpawnSpec   `yaml:"spawn"`
	Physics PhysicsSpec `yaml:"physics"`
}

type WindowSpec struct {
	Title      string `yaml:"title"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TPS        int    `yaml:"tps"`
	ClearColor string `yaml:"clear_color"`
}

type GroundSpec struct {
	FloorHeight int    `yaml:"floor_height"`
	FloorColor  string `yaml:"floor_color"`
}

type SpawnSpec struct {
	BatchSize     int     `yaml:"batch_size"`
	BaseSpeed     float64 `yaml:"base_speed"`
	Offset        float64 `yaml:"offset"`
	ParticleSize  float64 `yaml:"particle_size"`
	PaletteScript string  `yaml:"palette_script"`
}

type PhysicsSpec struct {
	Gravity            float64 `yaml:"gravity"`
	Iterations         int     `yaml:"iterations"`
	ParticleMass       float64 `yaml:"particle_mass"`
	ParticleCollisions bool    `yaml:"particle_collisions"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("config: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("config: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Default loads confetti.yaml (disk copy first, then the embedded one).
func Default() (Config, error) {
	cfg, err := LoadSpec[Config](DefaultFile)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// LoadFile layers an arbitrary yaml file over the defaults.
func LoadFile(path string) (Config, error) {
	cfg, err := LoadSpec[Config](DefaultFile)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d", c.Window.TPS))
	}
	if c.Ground.FloorHeight < 0 {
		errs = append(errs, fmt.Errorf("floor_height %d", c.Ground.FloorHeight))
	}
	if c.Spawn.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch_size %d", c.Spawn.BatchSize))
	}
	if c.Spawn.ParticleSize <= 0 {
		errs = append(errs, fmt.Errorf("particle_size %v", c.Spawn.ParticleSize))
	}
	if c.Physics.ParticleMass <= 0 {
		errs = append(errs, fmt.Errorf("particle_mass %v", c.Physics.ParticleMass))
	}
	for _, name := range []string{c.Window.ClearColor, c.Ground.FloorColor} {
		if _, err := ParseColor(name); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// ParseColor resolves an SVG color name ("white", "hotpink") or a #rrggbb
// hex triplet.
func ParseColor(s string) (color.RGBA, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[name]; ok {
		return c, nil
	}
	if hex, ok := strings.CutPrefix(name, "#"); ok && len(hex) == 6 {
		var r, g, b uint8
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err == nil {
			return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
		}
	}
	return color.RGBA{}, fmt.Errorf("unknown color %q", s)
}

func (c Config) FloorColor() color.RGBA {
	rgba, _ := ParseColor(c.Ground.FloorColor)
	return rgba
}

func (c Config) ClearColor() color.RGBA {
	rgba, _ := ParseColor(c.Window.ClearColor)
	return rgba
}
