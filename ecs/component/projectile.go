package component

import "github.com/jakecoffman/cp"

// Bullet is a straight-line projectile. Player bullets damage hostiles,
// enemy bullets damage the player.
type Bullet struct {
	Damage     float64
	FromPlayer bool
	SplitLevel int
	Split      bool
	// Spent is set on the first hit so no second target is damaged.
	Spent bool
}

var BulletComponent = NewComponent[Bullet]()

// Missile is a homing projectile. Target is a weak reference that may die.
type Missile struct {
	Target      uint64
	Heading     float64
	Speed       float64
	TurnRate    float64
	Damage      float64
	BlastRadius float64
	Traveled    float64
}

var MissileComponent = NewComponent[Missile]()

// Laser is a ray anchored to its source entity with a direction fixed at
// lock time.
type Laser struct {
	Source  uint64
	Origin  cp.Vector
	Dir     cp.Vector
	Width   float64
	Damage  float64
	Life    float64
	Elapsed float64
	FadeIn  float64
	FadeOut float64
	Hit     map[uint64]bool
}

var LaserComponent = NewComponent[Laser]()

// Alpha is the render opacity for the fade envelope.
func (l *Laser) Alpha() float64 {
	if l == nil || l.Life <= 0 {
		return 0
	}
	if l.FadeIn > 0 && l.Elapsed < l.FadeIn {
		return l.Elapsed / l.FadeIn
	}
	if left := l.Life - l.Elapsed; l.FadeOut > 0 && left < l.FadeOut {
		if left < 0 {
			return 0
		}
		return left / l.FadeOut
	}
	return 1
}

// Shockwave is an expanding ring.
type Shockwave struct {
	Center       cp.Vector
	Radius       float64
	MaxRadius    float64
	ExpandSpeed  float64
	Thickness    float64
	Damage       float64
	SlowFactor   float64
	SlowDuration float64
	Hit          map[uint64]bool
}

var ShockwaveComponent = NewComponent[Shockwave]()

// Explosion is the visual trail of a missile blast. Stage advances as the
// effect ages.
type Explosion struct {
	Radius   float64
	Duration float64
	Elapsed  float64
	Stages   int
}

func (x *Explosion) Stage() int {
	if x == nil || x.Duration <= 0 || x.Stages <= 0 {
		return 0
	}
	s := int(x.Elapsed / x.Duration * float64(x.Stages))
	if s >= x.Stages {
		s = x.Stages - 1
	}
	return s
}

var ExplosionComponent = NewComponent[Explosion]()
