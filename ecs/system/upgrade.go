package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// ErrUnknownUpgrade is returned when applying an id outside the catalog.
var ErrUnknownUpgrade = errors.New("upgrade: unknown upgrade")

// UpgradeID names a level-up card.
type UpgradeID string

const (
	UpgradeArmor        UpgradeID = "armor"
	UpgradeDamage       UpgradeID = "damage"
	UpgradeSpeed        UpgradeID = "speed"
	UpgradeMultishot    UpgradeID = "multishot"
	UpgradeBulletSize   UpgradeID = "bulletsize"
	UpgradeEnergyField  UpgradeID = "energyfield"
	UpgradeBulletSplit  UpgradeID = "bulletsplit"
	UpgradeHeavy        UpgradeID = "heavy"
	UpgradeAgile        UpgradeID = "agile"
	UpgradeShield       UpgradeID = "shield"
	UpgradeGuidedWeapon UpgradeID = "guidedweapon"
	UpgradeDrone        UpgradeID = "drone"
)

type Rarity uint8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
)

func (r Rarity) String() string {
	switch r {
	case RarityRare:
		return "rare"
	case RarityEpic:
		return "epic"
	default:
		return "common"
	}
}

// RarityOf returns the tier of a card.
func RarityOf(id UpgradeID) Rarity {
	switch id {
	case UpgradeHeavy, UpgradeAgile, UpgradeShield, UpgradeGuidedWeapon:
		return RarityRare
	case UpgradeDrone:
		return RarityEpic
	default:
		return RarityCommon
	}
}

// upgradePools lists the cards by tier. Bullet split is only offered while
// its relic is active.
func upgradePools(relics component.Relics) [3][]UpgradeID {
	common := []UpgradeID{UpgradeArmor, UpgradeDamage, UpgradeSpeed, UpgradeMultishot, UpgradeBulletSize, UpgradeEnergyField}
	if relics.BulletSplit {
		common = append(common, UpgradeBulletSplit)
	}
	return [3][]UpgradeID{
		RarityCommon: common,
		RarityRare:   {UpgradeHeavy, UpgradeAgile, UpgradeShield, UpgradeGuidedWeapon},
		RarityEpic:   {UpgradeDrone},
	}
}

// RollUpgrades draws distinct cards. Each draw rolls a tier first and falls
// back to commons when the tier is exhausted.
func RollUpgrades(env *Env, relics component.Relics) []UpgradeID {
	uc := env.Config.Upgrades
	pools := upgradePools(relics)
	n := uc.Choices
	if n <= 0 {
		n = 3
	}
	out := make([]UpgradeID, 0, n)
	for range n {
		r := env.Rand.Float64()
		tier := RarityCommon
		switch {
		case r < uc.EpicChance && len(pools[RarityEpic]) > 0:
			tier = RarityEpic
		case r < uc.EpicChance+uc.RareChance && len(pools[RarityRare]) > 0:
			tier = RarityRare
		}
		if len(pools[tier]) == 0 {
			for _, t := range []Rarity{RarityCommon, RarityRare, RarityEpic} {
				if len(pools[t]) > 0 {
					tier = t
					break
				}
			}
		}
		pool := pools[tier]
		if len(pool) == 0 {
			break
		}
		i := env.Rand.IntN(len(pool))
		out = append(out, pool[i])
		pools[tier] = append(pool[:i:i], pool[i+1:]...)
	}
	return out
}

// ApplyUpgrade mutates the player for a chosen card.
func ApplyUpgrade(w *ecs.World, env *Env, player ecs.Entity, id UpgradeID) error {
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return fmt.Errorf("upgrade: entity %s is not a player", player)
	}
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	body, _ := ecs.Get(w, player, component.BodyComponent.Kind())
	cfg := env.Config

	switch id {
	case UpgradeArmor:
		if h != nil {
			inc := h.Max * 0.2
			h.Max += inc
			h.Current += inc
		}
	case UpgradeDamage:
		p.Damage = math.Floor(p.Damage * 1.2)
	case UpgradeSpeed:
		p.BaseMaxSpeed *= 1.2
	case UpgradeMultishot:
		p.BulletCount++
	case UpgradeBulletSize:
		p.BulletSize *= 1.1
	case UpgradeBulletSplit:
		p.SplitLevel++
	case UpgradeHeavy:
		if body != nil {
			body.Radius *= 1.2
		}
		if h != nil {
			inc := h.Max * 0.5
			h.Max += inc
			h.Current += inc
		}
		p.BaseMaxSpeed *= 0.8
	case UpgradeAgile:
		if body != nil {
			body.Radius *= 0.8
		}
		if h != nil {
			h.Max -= h.Max * 0.5
			if h.Current > h.Max {
				h.Current = h.Max
			}
		}
		p.BaseMaxSpeed *= 1.3
	case UpgradeShield:
		if _, err := entity.NewShield(w, cfg, player, 0); err != nil {
			return err
		}
		Redistribute(w, player, component.VariantShield)
	case UpgradeDrone:
		n := countOrbiters(w, player, component.VariantDrone)
		angle := 2 * math.Pi * float64(n) / float64(n+1)
		if _, err := entity.NewDrone(w, cfg, player, angle); err != nil {
			return err
		}
	case UpgradeEnergyField:
		fc := cfg.EnergyField
		f, ok := ecs.Get(w, player, component.EnergyFieldComponent.Kind())
		if !ok {
			if err := ecs.Add(w, player, component.EnergyFieldComponent.Kind(), &component.EnergyField{
				Radius:          fc.Radius,
				DamagePerSecond: fc.DamagePerSecond,
			}); err != nil {
				return err
			}
			break
		}
		f.Level++
		f.DamagePerSecond += fc.DamagePerLevel
		f.Radius *= fc.RadiusScale
		if fc.MaxRadius > 0 && f.Radius > fc.MaxRadius {
			f.Radius = fc.MaxRadius
		}
	case UpgradeGuidedWeapon:
		g, ok := ecs.Get(w, player, component.GuidedWeaponComponent.Kind())
		level := 0
		if ok {
			level = g.Level + 1
		}
		stats := GuidedWeaponStats(cfg.GuidedWeapon, level)
		if ok {
			stats.CooldownLeft = g.CooldownLeft
		}
		if err := ecs.Add(w, player, component.GuidedWeaponComponent.Kind(), &stats); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, id)
	}

	if p.Picks == nil {
		p.Picks = map[string]int{}
	}
	p.Picks[string(id)]++
	return nil
}

func countOrbiters(w *ecs.World, owner ecs.Entity, variant component.Variant) int {
	n := 0
	ecs.ForEach2(w, component.OrbiterComponent.Kind(), component.VariantComponent.Kind(), func(e ecs.Entity, o *component.Orbiter, v *component.Variant) {
		if *v == variant && ecs.Entity(o.Owner) == owner && !isDead(w, e) {
			n++
		}
	})
	return n
}
