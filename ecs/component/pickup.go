package component

type PickupKind uint8

const (
	PickupExperience PickupKind = iota
	PickupHealth
)

// Pickup is collected on contact with the player. Value is experience for
// gems and a fraction of max health for health packs.
type Pickup struct {
	Kind        PickupKind
	Value       float64
	MagnetRange float64
	Speed       float64
	// Snap pulls the pickup to this distance from the player once its
	// pickup immunity ends. Zero disables it.
	Snap float64
}

var PickupComponent = NewComponent[Pickup]()

// Treasure is a chest guarded by a set of guardians. It unlocks once every
// guard is gone.
type Treasure struct {
	Guards []uint64
	Locked bool
	Opened bool
	// Touching is true while the player overlaps the locked chest, so the
	// locked notice fires once per contact.
	Touching bool
}

var TreasureComponent = NewComponent[Treasure]()
