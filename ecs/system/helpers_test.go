package system

import (
	"testing"

	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
	"github.com/milk9111/confetti/ground"
)

type fakePointer struct {
	x, y    float64
	pressed bool
}

func (f *fakePointer) Pointer() (float64, float64, bool) {
	return f.x, f.y, f.pressed
}

func newGrid(t *testing.T, w, h int) *ground.Grid {
	t.Helper()
	g, err := ground.New(w, h, ground.DefaultFloorHeight, ground.White)
	if err != nil {
		t.Fatalf("ground.New: %v", err)
	}
	return g
}

// placeParticle adds a particle without a physics body at world (x, y).
func placeParticle(t *testing.T, w *ecs.World, seq uint64, x, y, vx, vy float64, tint component.Tint) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	steps := []error{
		ecs.Add(w, e, component.ParticleComponent.Kind(), &component.Particle{Seq: seq}),
		ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}),
		ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}),
		ecs.Add(w, e, component.TintComponent.Kind(), &tint),
	}
	for _, err := range steps {
		if err != nil {
			t.Fatalf("placeParticle: %v", err)
		}
	}
	return e
}

// cellColor returns the color at grid-local cell (x, y).
func cellColor(g *ground.Grid, x, y int) (ground.Color, bool) {
	return g.ColorAt(y*g.Width + x)
}
