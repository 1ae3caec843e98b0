package component

import "github.com/jakecoffman/cp"

// PhysicsBody stores Chipmunk2D runtime data.
type PhysicsBody struct {
	Body  *cp.Body
	Shape *cp.Shape
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
