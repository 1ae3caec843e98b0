package system

import (
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
)

// CleanupSystem removes particles that left the viewport without ever
// touching ground.
type CleanupSystem struct {
	halfW   float64
	halfH   float64
	physics *PhysicsSystem
	debug   *component.DebugInfo
}

func NewCleanupSystem(width, height int, physics *PhysicsSystem, debug *component.DebugInfo) *CleanupSystem {
	return &CleanupSystem{
		halfW:   float64(width) / 2,
		halfH:   float64(height) / 2,
		physics: physics,
		debug:   debug,
	}
}

// Outside reports whether a world-space point lies beyond any viewport edge.
func (c *CleanupSystem) Outside(x, y float64) bool {
	return x < -c.halfW || x > c.halfW || y < -c.halfH || y > c.halfH
}

func (c *CleanupSystem) Update(w *ecs.World) {
	if c == nil || w == nil {
		return
	}

	ecs.ForEach2(w,
		component.ParticleComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, _ *component.Particle, t *component.Transform) {
			if !c.Outside(t.X, t.Y) {
				return
			}
			if despawn(w, c.physics, e) {
				c.debug.Remove(component.RemovalReaped)
			}
		})
}
