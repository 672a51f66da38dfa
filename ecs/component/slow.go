package component

// Slow scales movement speed by Factor until Remaining reaches zero.
type Slow struct {
	Factor    float64
	Remaining float64
}

var SlowComponent = NewComponent[Slow]()
