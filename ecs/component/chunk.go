package component

import "github.com/jakecoffman/cp"

// Chunk is a background tile of the unbounded world.
type Chunk struct {
	X, Y  int
	Stars []cp.Vector
}

var ChunkComponent = NewComponent[Chunk]()
