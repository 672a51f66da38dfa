package component

// Cooldown is a generic countdown in seconds. While present on a pickup the
// pickup cannot be collected or magnetized. CooldownSystem removes it at zero.
type Cooldown struct {
	Remaining float64
}

var CooldownComponent = NewComponent[Cooldown]()
