package component

import "github.com/jakecoffman/cp"

// Input is the per-tick control state copied onto the player by the
// simulation before systems run.
type Input struct {
	// Move is the movement direction, each axis in [-1,1].
	Move cp.Vector
	// AimPoint is the pointer position in world space.
	AimPoint cp.Vector
	// AimStick overrides AimPoint when active.
	AimStick       cp.Vector
	AimStickActive bool
	Fire           bool
}

var InputComponent = NewComponent[Input]()
