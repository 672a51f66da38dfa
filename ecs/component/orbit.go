package component

// Orbiter circles its owner at a fixed distance. AngularSpeed is rad/s.
type Orbiter struct {
	Owner        uint64
	Angle        float64
	Distance     float64
	AngularSpeed float64
}

var OrbiterComponent = NewComponent[Orbiter]()

// Shield intercepts enemy bullets and contacts without breaking.
type Shield struct{}

var ShieldComponent = NewComponent[Shield]()

// Drone fires at the nearest enemy. Heading eases toward the owner's facing.
type Drone struct {
	Cooldown     float64
	CooldownLeft float64
	Heading      float64
	TurnLerp     float64
	DamageScale  float64
}

var DroneComponent = NewComponent[Drone]()

// EnergyField damages every hostile overlapping Radius around its owner.
type EnergyField struct {
	Level           int
	Radius          float64
	DamagePerSecond float64
}

var EnergyFieldComponent = NewComponent[EnergyField]()

// GuidedWeapon periodically launches homing missiles.
type GuidedWeapon struct {
	Level        int
	Cooldown     float64
	CooldownLeft float64
	Damage       float64
	MissileCount int
}

var GuidedWeaponComponent = NewComponent[GuidedWeapon]()
