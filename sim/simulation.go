package sim

import (
	"fmt"
	"log"
	"math/rand/v2"
	"strings"

	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
	"github.com/milk9111/confetti/ecs/system"
	"github.com/milk9111/confetti/ground"
)

// Simulation owns the world, the ground and the fixed-tick system order:
// input, spawn, physics, ground collision, cleanup.
type Simulation struct {
	World   *ecs.World
	Ground  *ground.Grid
	Physics *system.PhysicsSystem
	Pointer *component.Pointer
	Debug   *component.DebugInfo

	cfg       config.Config
	spawn     *system.SpawnSystem
	collision *system.GroundCollisionSystem
	scheduler *ecs.Scheduler
	ticks     uint64
}

// New builds a simulation sized to the configured viewport.
func New(cfg config.Config, source system.PointerSource, rng *rand.Rand) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("sim: nil random source")
	}

	grid, err := ground.New(cfg.Window.Width, cfg.Window.Height, cfg.Ground.FloorHeight, ground.FromColor(cfg.FloorColor()))
	if err != nil {
		return nil, fmt.Errorf("sim: ground: %w", err)
	}
	palette, err := PaletteFor(cfg.Spawn)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		World:   ecs.NewWorld(),
		Ground:  grid,
		Physics: system.NewPhysicsSystem(cfg.Physics, cfg.Window.TPS),
		Pointer: &component.Pointer{},
		Debug:   &component.DebugInfo{},
		cfg:     cfg,
	}
	s.spawn = system.NewSpawnSystem(cfg.Spawn, cfg.Physics.ParticleMass, s.Pointer, s.Debug, rng, palette, s.Physics)
	s.collision = system.NewGroundCollisionSystem(grid, s.Physics, s.Debug)
	s.scheduler = ecs.NewScheduler(
		system.NewInputSystem(source, s.Pointer, s.Debug),
		s.spawn,
		s.Physics,
		s.collision,
		system.NewCleanupSystem(cfg.Window.Width, cfg.Window.Height, s.Physics, s.Debug),
	)
	return s, nil
}

// Tick advances one fixed step.
func (s *Simulation) Tick() {
	s.scheduler.Update(s.World)
	s.ticks++
}

func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

func (s *Simulation) Config() config.Config {
	return s.cfg
}

// SetVerbose turns on per-particle logging.
func (s *Simulation) SetVerbose(v bool) {
	s.collision.SetVerbose(v)
}

// ResetGround clears all paint back to the initial floor. Live particles are
// left alone.
func (s *Simulation) ResetGround() {
	s.Ground.Reset()
	log.Printf("Simulation: ground reset")
}

// Apply takes the spawn and physics tunables from a reloaded config. The
// viewport and ground geometry are fixed for the lifetime of the simulation.
func (s *Simulation) Apply(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	palette, err := PaletteFor(cfg.Spawn)
	if err != nil {
		return err
	}
	if cfg.Window.Width != s.cfg.Window.Width || cfg.Window.Height != s.cfg.Window.Height || cfg.Ground != s.cfg.Ground {
		log.Printf("Simulation: viewport and ground changes need a restart, ignoring them")
	}
	s.spawn.Configure(cfg.Spawn, palette)
	s.Physics.SetParticleCollisions(cfg.Physics.ParticleCollisions)

	s.cfg.Spawn = cfg.Spawn
	s.cfg.Physics.ParticleCollisions = cfg.Physics.ParticleCollisions
	return nil
}

// PaletteFor returns the scripted palette named in the spawn config, or the uniform
// random one when none is set.
func PaletteFor(spec config.SpawnSpec) (system.Palette, error) {
	name := strings.TrimSpace(spec.PaletteScript)
	if name == "" {
		return system.RandomPalette{}, nil
	}
	src, err := config.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("sim: palette %s: %w", name, err)
	}
	return system.NewScriptPalette(name, src)
}
