package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/confetti/config"
	"github.com/milk9111/confetti/ecs"
	"github.com/milk9111/confetti/ecs/component"
)

const particleGroup uint = 1

// PhysicsSystem owns the Chipmunk space. Each tick it integrates one fixed
// step and copies body positions and velocities back into the world.
type PhysicsSystem struct {
	space      *cp.Space
	dt         float64
	collisions bool
}

func NewPhysicsSystem(spec config.PhysicsSpec, tps int) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = uint(max(1, spec.Iterations))
	space.SetGravity(cp.Vector{X: 0, Y: spec.Gravity})
	if tps <= 0 {
		tps = 60
	}
	return &PhysicsSystem{
		space:      space,
		dt:         1.0 / float64(tps),
		collisions: spec.ParticleCollisions,
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

// SetParticleCollisions applies to particles created afterwards.
func (ps *PhysicsSystem) SetParticleCollisions(enabled bool) {
	if ps == nil {
		return
	}
	ps.collisions = enabled
}

// BodyCount returns the number of dynamic bodies in the space.
func (ps *PhysicsSystem) BodyCount() int {
	if ps == nil || ps.space == nil {
		return 0
	}
	n := 0
	ps.space.EachBody(func(*cp.Body) { n++ })
	return n
}

// AddParticle gives e a square dynamic body at (x, y) moving at (vx, vy),
// along with the transform and velocity components it drives.
func (ps *PhysicsSystem) AddParticle(w *ecs.World, e ecs.Entity, x, y, vx, vy, size, mass float64) error {
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.VelocityComponent.Kind(), &component.Velocity{X: vx, Y: vy}); err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.LastPositionComponent.Kind(), &component.LastPosition{X: x, Y: y}); err != nil {
		return err
	}
	if ps == nil || ps.space == nil {
		return nil
	}

	// particles never spin; rotation is not rendered
	body := cp.NewBody(mass, math.Inf(1))
	body.SetPosition(cp.Vector{X: x, Y: y})
	body.SetVelocity(vx, vy)
	shape := cp.NewBox(body, size, size, 0)
	shape.SetFriction(0.8)
	if !ps.collisions {
		shape.SetFilter(cp.NewShapeFilter(particleGroup, cp.ALL_CATEGORIES, cp.ALL_CATEGORIES))
	}

	ps.space.AddBody(body)
	ps.space.AddShape(shape)

	return ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:  body,
		Shape: shape,
	})
}

// RemoveBody takes a particle's body and shape out of the space.
func (ps *PhysicsSystem) RemoveBody(pb *component.PhysicsBody) {
	if ps == nil || ps.space == nil || pb == nil {
		return
	}
	if pb.Shape != nil && ps.space.ContainsShape(pb.Shape) {
		ps.space.RemoveShape(pb.Shape)
	}
	if pb.Body != nil && ps.space.ContainsBody(pb.Body) {
		ps.space.RemoveBody(pb.Body)
	}
	pb.Body = nil
	pb.Shape = nil
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.space == nil || w == nil {
		return
	}

	ps.space.Step(ps.dt)
	ps.syncTransforms(w)
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach4(w,
		component.PhysicsBodyComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		component.LastPositionComponent.Kind(),
		func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform, v *component.Velocity, last *component.LastPosition) {
			if pb.Body == nil {
				return
			}
			last.X, last.Y = t.X, t.Y
			pos := pb.Body.Position()
			vel := pb.Body.Velocity()
			t.X, t.Y = pos.X, pos.Y
			v.X, v.Y = vel.X, vel.Y
		})
}

// despawn removes a particle's body from the space and destroys the entity.
func despawn(w *ecs.World, ps *PhysicsSystem, e ecs.Entity) bool {
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok {
		ps.RemoveBody(pb)
	}
	return ecs.DestroyEntity(w, e)
}
