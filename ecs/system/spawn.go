package system

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
)

// SpawnSystem emits a batch of confetti every tick the pointer is held.
type SpawnSystem struct {
	spec    config.SpawnSpec
	mass    float64
	pointer *component.Pointer
	debug   *component.DebugInfo
	rng     *rand.Rand
	palette Palette
	physics *PhysicsSystem

	seq uint64
}

func NewSpawnSystem(spec config.SpawnSpec, mass float64, pointer *component.Pointer, debug *component.DebugInfo, rng *rand.Rand, palette Palette, physics *PhysicsSystem) *SpawnSystem {
	if palette == nil {
		palette = RandomPalette{}
	}
	if mass <= 0 {
		mass = 1
	}
	return &SpawnSystem{
		spec:    spec,
		mass:    mass,
		pointer: pointer,
		debug:   debug,
		rng:     rng,
		palette: palette,
		physics: physics,
	}
}

// Configure swaps spawn tunables, e.g. after a config reload.
func (s *SpawnSystem) Configure(spec config.SpawnSpec, palette Palette) {
	if s == nil {
		return
	}
	if palette == nil {
		palette = RandomPalette{}
	}
	s.spec = spec
	s.palette = palette
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if s == nil || s.pointer == nil || !s.pointer.Pressed {
		return
	}
	s.SpawnBatch(w, s.pointer.X, s.pointer.Y)
}

// SpawnBatch bursts BatchSize particles of one shared color out of (x, y)
// and returns how many were created.
func (s *SpawnSystem) SpawnBatch(w *ecs.World, x, y float64) int {
	if s == nil || w == nil || s.rng == nil || s.spec.BatchSize <= 0 {
		return 0
	}

	tint := s.palette.Pick(s.rng)
	size := s.spec.ParticleSize
	if size <= 0 {
		size = 2
	}

	created := 0
	for i := 0; i < s.spec.BatchSize; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		dirX, dirY := math.Cos(angle), math.Sin(angle)
		speed := s.spec.BaseSpeed * (s.rng.Float64() + 0.5)

		e := ecs.CreateEntity(w)
		s.seq++
		if err := s.build(w, e, tint, size,
			x+dirX*s.spec.Offset, y+dirY*s.spec.Offset,
			dirX*speed, dirY*speed); err != nil {
			log.Printf("SpawnSystem: entity %d: %v", e, err)
			despawn(w, s.physics, e)
			continue
		}
		created++
	}

	s.debug.Spawn(created)
	return created
}

func (s *SpawnSystem) build(w *ecs.World, e ecs.Entity, tint component.Tint, size, x, y, vx, vy float64) error {
	if err := ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{Seq: s.seq}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.TintComponent.Kind(), &tint); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{Width: size, Height: size}); err != nil {
		return err
	}
	return s.physics.AddParticle(w, e, x, y, vx, vy, size, s.mass)
}
