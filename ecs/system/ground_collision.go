package system

import (
	"cmp"
	"log"
	"slices"

	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
	"github.com/milk9111/confetti/ground"
)

// GroundCollisionSystem absorbs particles that have sunk into solid ground:
// each one paints the free cell it backs out to and is removed. When several
// particles back out to the same cell in one tick the last spawned wins.
type GroundCollisionSystem struct {
	grid    *ground.Grid
	physics *PhysicsSystem
	debug   *component.DebugInfo
	verbose bool

	candidates []groundCandidate
}

type groundCandidate struct {
	entity ecs.Entity
	seq    uint64
	x, y   float64
	vx, vy float64
	tint   component.Tint

	lastX, lastY float64
	swept        bool

	target int
	result ground.MarchResult
}

func NewGroundCollisionSystem(grid *ground.Grid, physics *PhysicsSystem, debug *component.DebugInfo) *GroundCollisionSystem {
	return &GroundCollisionSystem{grid: grid, physics: physics, debug: debug}
}

// SetVerbose logs every absorption.
func (g *GroundCollisionSystem) SetVerbose(v bool) {
	g.verbose = v
}

func (g *GroundCollisionSystem) Update(w *ecs.World) {
	if g == nil || g.grid == nil || w == nil {
		return
	}

	g.candidates = g.candidates[:0]
	ecs.ForEach4(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.TintComponent.Kind(),
		func(e ecs.Entity, p *component.Particle, t *component.Transform, v *component.Velocity, tint *component.Tint) {
			c := groundCandidate{
				entity: e,
				seq:    p.Seq,
				x:      t.X,
				y:      t.Y,
				vx:     v.X,
				vy:     v.Y,
				tint:   *tint,
			}
			if last, ok := ecs.Get(w, e, component.LastPositionComponent.Kind()); ok {
				c.lastX, c.lastY, c.swept = last.X, last.Y, true
			}
			g.candidates = append(g.candidates, c)
		})

	// spawn order, so the newest particle wins a contested cell
	slices.SortFunc(g.candidates, func(a, b groundCandidate) int {
		return cmp.Compare(a.seq, b.seq)
	})

	// Resolve every particle against the grid as it stood at the start of
	// the tick, then commit in spawn order. A particle that moved this tick
	// is tested at the first solid point along its path, not only where it
	// ended up.
	halfW := float64(g.grid.Width) / 2
	halfH := float64(g.grid.Height) / 2
	for i := range g.candidates {
		c := &g.candidates[i]
		gx, gy := c.x+halfW, c.y+halfH
		if c.swept {
			gx, gy, _ = g.grid.FirstSolid(c.lastX+halfW, c.lastY+halfH, gx, gy)
		}
		c.target, c.result = g.grid.SurfaceAbove(gx, gy, c.vx, c.vy)
	}

	for _, c := range g.candidates {
		if !c.result.Contact() {
			continue
		}

		if c.result == ground.MarchSurface {
			if err := g.grid.Paint(c.target, ground.Quantize(c.tint.R, c.tint.G, c.tint.B)); err != nil {
				log.Printf("GroundCollisionSystem: paint %d: %v", c.target, err)
			}
		}
		if g.verbose {
			log.Printf("GroundCollisionSystem: entity %d absorbed (%s) at (%.1f, %.1f)", c.entity, c.result, c.x, c.y)
		}

		if despawn(w, g.physics, c.entity) {
			g.debug.Remove(component.RemovalAbsorbed)
		}
	}
}
