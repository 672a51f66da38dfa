package component

import "github.com/jakecoffman/cp"

// Camera follows the player with exponential smoothing unless Fixed, in
// which case it holds Anchor.
type Camera struct {
	Pos       cp.Vector
	Fixed     bool
	Anchor    cp.Vector
	Smoothing float64
	OffsetY   float64
}

var CameraComponent = NewComponent[Camera]()
