package sim

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
	"github.com/milk9111/confetti/ecs/system"
	"github.com/milk9111/confetti/ground"
)

type scriptedPointer struct {
	x, y    float64
	pressed bool
}

func (p *scriptedPointer) Pointer() (float64, float64, bool) {
	return p.x, p.y, p.pressed
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.Default()
	if err != nil {
		t.Fatalf("config.Default: %v", err)
	}
	cfg.Window.Width = 200
	cfg.Window.Height = 100
	cfg.Physics.ParticleCollisions = false
	return cfg
}

func newSim(t *testing.T, cfg config.Config, pointer *scriptedPointer) *Simulation {
	t.Helper()
	s, err := New(cfg, pointer, rand.New(rand.NewPCG(11, 12)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func checkConservation(t *testing.T, d *component.DebugInfo) {
	t.Helper()
	if d.Live < 0 || d.Underflows != 0 {
		t.Fatalf("counter invariant broken: %+v", *d)
	}
	if d.Live != d.Spawned-d.Absorbed-d.Reaped {
		t.Fatalf("Live=%d, want %d", d.Live, d.Spawned-d.Absorbed-d.Reaped)
	}
}

func TestGentleBurstPaintsGround(t *testing.T) {
	cfg := testConfig(t)
	cfg.Spawn.BaseSpeed = 100
	pointer := &scriptedPointer{pressed: true}
	s := newSim(t, cfg, pointer)
	floor := s.Ground.SolidCount()

	s.Tick()
	pointer.pressed = false
	if s.Debug.Spawned != 100 {
		t.Fatalf("Spawned=%d after one held tick", s.Debug.Spawned)
	}

	for i := 0; i < 240; i++ {
		s.Tick()
		checkConservation(t, s.Debug)
		if ecs.Count(s.World) != s.Debug.Live {
			t.Fatalf("tick %d: %d entities but Live=%d", i, ecs.Count(s.World), s.Debug.Live)
		}
	}

	if s.Debug.Live != 0 || s.Debug.Absorbed != 100 || s.Debug.Reaped != 0 {
		t.Fatalf("debug=%+v", *s.Debug)
	}
	painted := s.Ground.SolidCount() - floor
	if painted <= 0 || painted > 100 {
		t.Fatalf("painted %d cells", painted)
	}
	if s.Physics.BodyCount() != 0 {
		t.Fatalf("leaked %d bodies", s.Physics.BodyCount())
	}
	if s.Ticks() != 241 {
		t.Fatalf("Ticks=%d", s.Ticks())
	}
}

func TestEveryParticleIsEventuallyRemoved(t *testing.T) {
	cfg := testConfig(t)
	pointer := &scriptedPointer{x: 80, y: 20, pressed: true}
	s := newSim(t, cfg, pointer)

	for i := 0; i < 600; i++ {
		if i == 3 {
			pointer.pressed = false
		}
		s.Tick()
		checkConservation(t, s.Debug)
	}

	if s.Debug.Spawned != 300 {
		t.Fatalf("Spawned=%d", s.Debug.Spawned)
	}
	if s.Debug.Live != 0 || ecs.Count(s.World) != 0 {
		t.Fatalf("particles left: %+v", *s.Debug)
	}
	if s.Debug.Reaped == 0 {
		t.Fatalf("fast burst near the edge should lose some particles off screen")
	}
}

func TestApplyReconfiguresSpawner(t *testing.T) {
	cfg := testConfig(t)
	pointer := &scriptedPointer{pressed: true}
	s := newSim(t, cfg, pointer)

	next := cfg
	next.Spawn.BatchSize = 5
	next.Spawn.PaletteScript = "pastel.tengo"
	if err := s.Apply(next); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	s.Tick()
	if s.Debug.Spawned != 5 {
		t.Fatalf("Spawned=%d, want 5", s.Debug.Spawned)
	}
	ecs.ForEach(s.World, component.TintComponent.Kind(), func(_ ecs.Entity, tint *component.Tint) {
		if tint.R < 0.55 || tint.G < 0.55 || tint.B < 0.55 {
			t.Fatalf("pastel palette produced %+v", *tint)
		}
	})

	bad := cfg
	bad.Spawn.PaletteScript = "missing.tengo"
	if err := s.Apply(bad); err == nil {
		t.Fatalf("missing palette script should fail")
	}
	if s.Config().Spawn.BatchSize != 5 {
		t.Fatalf("failed Apply must keep previous config")
	}
}

func TestResetGround(t *testing.T) {
	s := newSim(t, testConfig(t), &scriptedPointer{})
	floor := s.Ground.SolidCount()
	if err := s.Ground.Paint(s.Ground.Len()-1, ground.Color{R: 200}); err != nil {
		t.Fatal(err)
	}
	s.ResetGround()
	if s.Ground.SolidCount() != floor {
		t.Fatalf("SolidCount=%d, want %d", s.Ground.SolidCount(), floor)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Window.Width = 0
	if _, err := New(cfg, &scriptedPointer{}, rand.New(rand.NewPCG(1, 1))); !errors.Is(err, config.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
	if _, err := New(testConfig(t), &scriptedPointer{}, nil); err == nil {
		t.Fatalf("nil rng should be rejected")
	}
}

// tickCountingFallThrough runs one tick and, just before the reaper, counts
// live particles below the grid while still horizontally on screen. Those
// crossed the whole floor without being absorbed.
func tickCountingFallThrough(s *Simulation) int {
	cfg := s.Config()
	halfW := float64(cfg.Window.Width) / 2
	bottom := -float64(cfg.Window.Height) / 2

	fell := 0
	for _, sys := range s.scheduler.Systems() {
		if _, ok := sys.(*system.CleanupSystem); ok {
			ecs.ForEach(s.World, component.TransformComponent.Kind(), func(_ ecs.Entity, t *component.Transform) {
				if t.Y < bottom && t.X >= -halfW && t.X <= halfW {
					fell++
				}
			})
		}
		sys.Update(s.World)
	}
	s.ticks++
	return fell
}

func TestDefaultSettingsDoNotFallThroughFloor(t *testing.T) {
	cfg, err := config.Default()
	if err != nil {
		t.Fatal(err)
	}

	for _, clickY := range []float64{0, 200, 300} {
		pointer := &scriptedPointer{y: clickY, pressed: true}
		s := newSim(t, cfg, pointer)

		fell := 0
		for i := 0; i < 610; i++ {
			if i == 10 {
				pointer.pressed = false
			}
			fell += tickCountingFallThrough(s)
		}

		if fell != 0 {
			t.Fatalf("click y=%v: %d particles fell through the floor (%+v)", clickY, fell, *s.Debug)
		}
		if s.Debug.Spawned != 1000 || s.Debug.Absorbed == 0 {
			t.Fatalf("click y=%v: debug=%+v", clickY, *s.Debug)
		}
		checkConservation(t, s.Debug)
	}
}
