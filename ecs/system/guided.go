package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
	"github.com/milk9111/voidarena/prefabs"
)

// GuidedWeaponStats derives cooldown, damage and missile count for level.
// Cooldown is truncated to whole milliseconds.
func GuidedWeaponStats(cfg prefabs.GuidedWeaponConfig, level int) component.GuidedWeapon {
	lvl := float64(level)
	cooldown := math.Floor(cfg.BaseCooldown*1000*math.Pow(cfg.CooldownScale, lvl)) / 1000
	count := 1
	if cfg.LevelsPerExtra > 0 {
		count += level / cfg.LevelsPerExtra
	}
	return component.GuidedWeapon{
		Level:        level,
		Cooldown:     cooldown,
		Damage:       math.Floor(cfg.BaseDamage * math.Pow(cfg.DamageScale, lvl)),
		MissileCount: count,
	}
}

// GuidedWeaponSystem launches missiles from the player whenever the module
// is off cooldown and there is anything to shoot at.
type GuidedWeaponSystem struct {
	env *Env
}

func NewGuidedWeaponSystem(env *Env) *GuidedWeaponSystem {
	return &GuidedWeaponSystem{env: env}
}

func (s *GuidedWeaponSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	cfg := s.env.Config

	ecs.ForEach2(w, component.GuidedWeaponComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, g *component.GuidedWeapon, t *component.Transform) {
		if isDead(w, e) {
			return
		}
		if g.CooldownLeft > 0 {
			g.CooldownLeft -= dt
			return
		}
		pool := missileTargets(w)
		if len(pool) == 0 {
			return
		}
		g.CooldownLeft = g.Cooldown

		target := strongestWithin(w, pool, t.Pos, cfg.GuidedWeapon.SearchRadius)
		heading := t.Angle
		if target.Valid() {
			if tp, ok := entity.Position(w, target); ok {
				if dir, ok := direction(t.Pos, tp); ok {
					heading = dir.ToAngle()
				}
			}
		}
		for range g.MissileCount {
			if _, err := entity.NewMissile(w, cfg, t.Pos, heading, target, g.Damage); err != nil {
				fmt.Printf("guided: entity=%d launch: %v\n", e, err)
				return
			}
		}
	})
}

// missileTargets is the pool homing missiles may lock: wave enemies and
// the boss.
func missileTargets(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range hostiles(w) {
		if v := variantOf(w, e); v.IsEnemy() || v == component.VariantBoss {
			out = append(out, e)
		}
	}
	return out
}

// strongestWithin picks the target with the most health within radius of
// from. It returns ecs.Nil when none qualifies.
func strongestWithin(w *ecs.World, pool []ecs.Entity, from cp.Vector, radius float64) ecs.Entity {
	best := ecs.Nil
	bestHealth := 0.0
	for _, e := range pool {
		pos, ok := entity.Position(w, e)
		if !ok || pos.Distance(from) > radius {
			continue
		}
		h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
		if !ok || h.Current <= bestHealth {
			continue
		}
		best, bestHealth = e, h.Current
	}
	return best
}
