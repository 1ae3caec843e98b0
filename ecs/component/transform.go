package component

// Transform is a world-space position: origin at the viewport center, y up.
type Transform struct {
	X float64
	Y float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is the linear velocity last reported by the physics step.
type Velocity struct {
	X float64
	Y float64
}

var VelocityComponent = NewComponent[Velocity]()

// LastPosition is where the transform stood before the latest physics step.
// The ground resolver sweeps from here so fast particles cannot skip the floor.
type LastPosition struct {
	X float64
	Y float64
}

var LastPositionComponent = NewComponent[LastPosition]()
