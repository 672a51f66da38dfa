package component

import "math"

// Progression tracks experience and level. It has no dependencies on the
// rest of the world.
type Progression struct {
	Level      int
	Experience float64
	Required   float64
	Base       float64
	Multiplier float64
}

var ProgressionComponent = NewComponent[Progression]()

// NewProgression starts at level 1 with the first requirement equal to base.
func NewProgression(base, multiplier float64) Progression {
	return Progression{
		Level:      1,
		Required:   base,
		Base:       base,
		Multiplier: multiplier,
	}
}

// AddExperience adds amount and levels up at most once per call. The
// overflow above the requirement is kept.
func (p *Progression) AddExperience(amount float64) bool {
	if p == nil || amount <= 0 {
		return false
	}
	p.Experience += amount
	if p.Required <= 0 || p.Experience < p.Required {
		return false
	}
	p.Experience -= p.Required
	p.Level++
	p.Required = RequiredFor(p.Base, p.Multiplier, p.Level)
	return true
}

// RequiredFor is floor(base * multiplier^(level-1)).
func RequiredFor(base, multiplier float64, level int) float64 {
	if level < 1 {
		level = 1
	}
	return math.Floor(base * math.Pow(multiplier, float64(level-1)))
}

// RunState is the per-run scoreboard and spawn bookkeeping singleton.
type RunState struct {
	ID    string
	Stage int

	Score   int
	Kills   int
	Wave    int
	Coins   int
	Elapsed float64

	SpawnTimer       float64
	NextTreasureWave int

	BossSpawned  bool
	BossDefeated bool
	Victory      bool
	GameOver     bool

	Relics Relics
}

// Relics are the meta-upgrades active for this run.
type Relics struct {
	BulletSplit    bool
	GravityCapture bool
	AdvancedRepair bool
}

var RunStateComponent = NewComponent[RunState]()
