package component

import "github.com/jakecoffman/cp"

// BossState is a node of the boss encounter state machine.
type BossState uint8

const (
	BossEntering BossState = iota
	BossIdle
	BossSpawningChasers
	BossChargingShockwave
	BossLockingLaser
	BossCooldown
	BossDefeated
	BossVictoryChoice
)

var bossStateNames = [...]string{
	BossEntering:          "entering",
	BossIdle:              "idle",
	BossSpawningChasers:   "spawning_chasers",
	BossChargingShockwave: "charging_shockwave",
	BossLockingLaser:      "locking_laser",
	BossCooldown:          "cooldown",
	BossDefeated:          "defeated",
	BossVictoryChoice:     "victory_choice",
}

func (s BossState) String() string {
	if int(s) < len(bossStateNames) {
		return bossStateNames[s]
	}
	return "unknown"
}

// BossTransitions lists the legal successor states of each state.
var BossTransitions = map[BossState][]BossState{
	BossEntering:          {BossIdle, BossDefeated},
	BossIdle:              {BossSpawningChasers, BossChargingShockwave, BossLockingLaser, BossDefeated},
	BossSpawningChasers:   {BossCooldown, BossDefeated},
	BossChargingShockwave: {BossCooldown, BossDefeated},
	BossLockingLaser:      {BossCooldown, BossDefeated},
	BossCooldown:          {BossIdle, BossDefeated},
	BossDefeated:          {BossVictoryChoice},
	BossVictoryChoice:     nil,
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to BossState) bool {
	for _, s := range BossTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// AttackKind is an entry of the boss attack pattern.
type AttackKind uint8

const (
	AttackChasers AttackKind = iota
	AttackShockwave
	AttackLaser
)

func (a AttackKind) String() string {
	switch a {
	case AttackChasers:
		return "chasers"
	case AttackShockwave:
		return "shockwave"
	case AttackLaser:
		return "laser"
	default:
		return "unknown"
	}
}

// State is the boss state that performs the attack.
func (a AttackKind) State() BossState {
	switch a {
	case AttackShockwave:
		return BossChargingShockwave
	case AttackLaser:
		return BossLockingLaser
	default:
		return BossSpawningChasers
	}
}

// ParseAttackKind maps a pattern name onto the closed attack set.
func ParseAttackKind(name string) (AttackKind, bool) {
	switch name {
	case "chasers":
		return AttackChasers, true
	case "shockwave":
		return AttackShockwave, true
	case "laser":
		return AttackLaser, true
	default:
		return 0, false
	}
}

// Boss stores the static layout of the encounter.
type Boss struct {
	DisplayName string
	Pattern     []AttackKind
	// Home is the point the boss sways around.
	Home cp.Vector
}

// BossRuntime stores runtime-only state for the encounter.
type BossRuntime struct {
	State BossState
	// Timer is the remaining time of the current timed state.
	Timer float64
	// Elapsed is the time spent in the current state.
	Elapsed float64
	Cursor  int

	EnterFrom cp.Vector
	EnterTo   cp.Vector
	Shake     float64

	SwayTime float64

	ChasersLeft int
	SpawnTimer  float64

	LockTarget cp.Vector
	LockDone   bool
	Charge     float64
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()
