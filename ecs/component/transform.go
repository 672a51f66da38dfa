package component

import "github.com/jakecoffman/cp"

type Transform struct {
	Pos   cp.Vector
	Angle float64
}

var TransformComponent = NewComponent[Transform]()

// Velocity is in px/s.
type Velocity struct {
	Vel cp.Vector
}

var VelocityComponent = NewComponent[Velocity]()

// Body is the collision circle of an entity.
type Body struct {
	Radius float64
}

var BodyComponent = NewComponent[Body]()
