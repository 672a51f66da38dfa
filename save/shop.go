package save

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrInsufficientCoins = errors.New("save: insufficient coins")
	ErrUnknownUpgrade    = errors.New("save: unknown upgrade")
	ErrUnknownRelic      = errors.New("save: unknown relic")
	ErrAlreadyPurchased  = errors.New("save: relic already purchased")
)

// UpgradeKind is a permanent shop upgrade.
type UpgradeKind string

const (
	UpgradeHealth UpgradeKind = "health"
	UpgradeSpeed  UpgradeKind = "speed"
	UpgradeDamage UpgradeKind = "damage"
)

// Per-level bonuses of the permanent upgrades.
const (
	HealthPerLevel = 20.0
	SpeedPerLevel  = 0.1
	DamagePerLevel = 5.0
)

type RelicID string

const (
	RelicBulletSplit    RelicID = "bulletSplit"
	RelicGravityCapture RelicID = "gravityCapture"
	RelicAdvancedRepair RelicID = "advancedRepair"
)

var relicCosts = map[RelicID]int{
	RelicBulletSplit:    1,
	RelicGravityCapture: 2,
	RelicAdvancedRepair: 2,
}

// Relics lists every relic in shop order.
func Relics() []RelicID {
	return []RelicID{RelicBulletSplit, RelicGravityCapture, RelicAdvancedRepair}
}

// RelicCost returns the coin price of id.
func RelicCost(id RelicID) (int, error) {
	c, ok := relicCosts[id]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownRelic, id)
	}
	return c, nil
}

// UpgradeCost is the price of buying the next level from level.
func UpgradeCost(level int) int {
	return 10 + 5*level
}

func (p *Profile) upgradeLevel(kind UpgradeKind) (*int, error) {
	switch kind {
	case UpgradeHealth:
		return &p.Upgrades.Health, nil
	case UpgradeSpeed:
		return &p.Upgrades.Speed, nil
	case UpgradeDamage:
		return &p.Upgrades.Damage, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownUpgrade, kind)
	}
}

// UpgradeLevel returns the current level of kind, or 0 for an unknown kind.
func (p *Profile) UpgradeLevel(kind UpgradeKind) int {
	lvl, err := p.upgradeLevel(kind)
	if err != nil {
		return 0
	}
	return *lvl
}

// BuyUpgrade spends coins on the next level of kind.
func (p *Profile) BuyUpgrade(kind UpgradeKind) error {
	lvl, err := p.upgradeLevel(kind)
	if err != nil {
		return err
	}
	cost := UpgradeCost(*lvl)
	if p.Coins < cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCoins, kind, cost, p.Coins)
	}
	p.Coins -= cost
	*lvl++
	return nil
}

// BuyRelic purchases id once. A new relic starts active.
func (p *Profile) BuyRelic(id RelicID) error {
	cost, err := RelicCost(id)
	if err != nil {
		return err
	}
	if p.Relics[id].Purchased {
		return fmt.Errorf("%w: %s", ErrAlreadyPurchased, id)
	}
	if p.Coins < cost {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientCoins, id, cost, p.Coins)
	}
	p.Coins -= cost
	if p.Relics == nil {
		p.Relics = map[RelicID]RelicState{}
	}
	p.Relics[id] = RelicState{Purchased: true, Active: true}
	return nil
}

// SetRelicActive toggles a purchased relic.
func (p *Profile) SetRelicActive(id RelicID, active bool) error {
	if _, err := RelicCost(id); err != nil {
		return err
	}
	st := p.Relics[id]
	if !st.Purchased {
		return fmt.Errorf("%w: %s not purchased", ErrUnknownRelic, id)
	}
	st.Active = active
	p.Relics[id] = st
	return nil
}

// RelicActive reports whether id is owned and switched on.
func (p *Profile) RelicActive(id RelicID) bool {
	st := p.Relics[id]
	return st.Purchased && st.Active
}

// Bonus is the stat boost a run starts with.
type Bonus struct {
	Health float64
	Speed  float64
	Damage float64
}

func (p *Profile) Bonus() Bonus {
	return Bonus{
		Health: float64(p.Upgrades.Health) * HealthPerLevel,
		Speed:  float64(p.Upgrades.Speed) * SpeedPerLevel,
		Damage: float64(p.Upgrades.Damage) * DamagePerLevel,
	}
}

// ActiveRelics lists the relics switched on, in shop order.
func (p *Profile) ActiveRelics() []RelicID {
	return slices.DeleteFunc(Relics(), func(id RelicID) bool { return !p.RelicActive(id) })
}
