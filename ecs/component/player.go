package component

// Player holds the ship's tunables after permanent bonuses and level-up
// upgrades. Speeds are px/s; Accel and Friction are per 1/60 s.
type Player struct {
	Accel        float64
	Friction     float64
	BaseMaxSpeed float64
	SpeedBonus   float64

	Damage        float64
	BulletCount   int
	BulletSize    float64
	BulletSpeed   float64
	ShootCooldown float64
	CooldownLeft  float64
	SplitLevel    int

	// Picks counts level-up upgrades taken, keyed by upgrade id.
	Picks map[string]int
}

var PlayerComponent = NewComponent[Player]()

// MaxSpeed is the current speed cap before slow effects.
func (p *Player) MaxSpeed() float64 {
	if p == nil {
		return 0
	}
	return p.BaseMaxSpeed * (1 + p.SpeedBonus)
}
