package component

import "github.com/jakecoffman/cp"

// Enemy carries the per-wave stats of normal, chaser and titan enemies.
type Enemy struct {
	Speed         float64
	BulletDamage  float64
	ContactDamage float64
	ShootCooldown float64
	CooldownLeft  float64
	// KeepDistance stops the approach once the player is this close.
	KeepDistance float64
	// Volley is the number of evenly spaced bullets per shot. Zero disables
	// shooting.
	Volley int
	// Burst is an outward push in px/s that decays to zero.
	Burst cp.Vector
	// FromBoss chasers drop no experience.
	FromBoss bool
}

var EnemyComponent = NewComponent[Enemy]()

// Guardian defends a treasure chest. Aggro uses hysteresis: it turns on
// inside AggroRange and off only beyond AggroRange*AggroExit.
type Guardian struct {
	Treasure      uint64
	Anchor        cp.Vector
	Aggro         bool
	AggroRange    float64
	AggroExit     float64
	GuardRange    float64
	Speed         float64
	BulletDamage  float64
	ContactDamage float64
	ShootCooldown float64
	CooldownLeft  float64
	WanderAngle   float64
	WanderLeft    float64
}

var GuardianComponent = NewComponent[Guardian]()
