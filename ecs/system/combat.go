package system

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/common"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// CombatSystem resolves collisions once everything has moved: player
// bullets against hostiles, enemy bullets against shields then the player,
// body contacts, and the energy field.
type CombatSystem struct {
	env *Env
}

func NewCombatSystem(env *Env) *CombatSystem {
	return &CombatSystem{env: env}
}

func (s *CombatSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	if rs := runState(w); rs != nil && rs.GameOver {
		return
	}
	s.resolvePlayerBullets(w)
	s.resolveEnemyBullets(w)
	s.resolveContacts(w, dt)
	s.resolveField(w, dt)
}

// hitOrder groups hostiles in the order a bullet tests them.
func hitOrder(w *ecs.World) []ecs.Entity {
	var enemies, bosses, guardians []ecs.Entity
	for _, e := range hostiles(w) {
		switch variantOf(w, e) {
		case component.VariantBoss:
			bosses = append(bosses, e)
		case component.VariantGuardian:
			guardians = append(guardians, e)
		default:
			enemies = append(enemies, e)
		}
	}
	out := append(enemies, bosses...)
	return append(out, guardians...)
}

func (s *CombatSystem) resolvePlayerBullets(w *ecs.World) {
	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		if !b.FromPlayer || b.Spent || isDead(w, e) {
			return
		}
		r := radiusOf(w, e)
		for _, target := range hitOrder(w) {
			if isDead(w, target) {
				continue
			}
			pos, ok := entity.Position(w, target)
			if !ok || !overlaps(t.Pos, pos, r, radiusOf(w, target)) {
				continue
			}
			b.Spent = true
			markDead(w, e)
			DamageHostile(w, s.env, target, b.Damage)
			s.split(w, b, t, r)
			return
		}
	})
}

// split replaces a spent bullet with SplitLevel+1 children at random
// headings. Children never split again.
func (s *CombatSystem) split(w *ecs.World, b *component.Bullet, t *component.Transform, size float64) {
	if b.SplitLevel <= 0 || b.Split {
		return
	}
	cfg := s.env.Config
	speed := cfg.Bullet.Speed
	for range b.SplitLevel + 1 {
		angle := s.env.Rand.Float64() * 2 * math.Pi
		if _, err := entity.NewBullet(w, entity.BulletSpec{
			Pos:        t.Pos,
			Angle:      angle,
			Speed:      speed,
			Size:       size * cfg.Bullet.SplitSizeScale,
			Damage:     b.Damage * cfg.Bullet.SplitDamageScale,
			FromPlayer: true,
			Split:      true,
		}); err != nil {
			fmt.Printf("combat: split bullet: %v\n", err)
			return
		}
	}
}

func shields(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range w.Query(component.ShieldComponent.Kind(), component.TransformComponent.Kind()) {
		if !isDead(w, e) {
			out = append(out, e)
		}
	}
	return out
}

// shieldAt returns the first shield overlapping a circle.
func shieldAt(w *ecs.World, list []ecs.Entity, pos cp.Vector, r float64) bool {
	for _, sh := range list {
		sp, ok := entity.Position(w, sh)
		if ok && overlaps(pos, sp, r, radiusOf(w, sh)) {
			return true
		}
	}
	return false
}

func (s *CombatSystem) resolveEnemyBullets(w *ecs.World) {
	pe, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	pr := radiusOf(w, pe)
	guards := shields(w)

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, b *component.Bullet, t *component.Transform) {
		if b.FromPlayer || b.Spent || isDead(w, e) {
			return
		}
		r := radiusOf(w, e)
		if shieldAt(w, guards, t.Pos, r) {
			b.Spent = true
			markDead(w, e)
			return
		}
		if overlaps(t.Pos, pt.Pos, r, pr) {
			b.Spent = true
			markDead(w, e)
			DamagePlayer(w, s.env, b.Damage)
		}
	})
}

// resolveContacts handles enemy and guardian bodies touching a shield or
// the player. Contact damage is a per-tick rate; kamikaze enemies deal
// their bullet damage once and are destroyed without a reward.
func (s *CombatSystem) resolveContacts(w *ecs.World, dt float64) {
	pe, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	pr := radiusOf(w, pe)
	guards := shields(w)
	ticks := dt * common.ReferenceRate

	for _, e := range hostiles(w) {
		if isDead(w, e) {
			continue
		}
		pos, ok := entity.Position(w, e)
		if !ok {
			continue
		}
		r := radiusOf(w, e)
		kamikaze := variantOf(w, e) == component.VariantEnemyChaser && s.env.Config.Enemies.Chaser.ContactKamikaze

		if shieldAt(w, guards, pos, r) {
			if kamikaze {
				markDead(w, e)
			}
			continue
		}
		if !overlaps(pos, pt.Pos, r, pr) {
			continue
		}
		switch {
		case kamikaze:
			dmg := 0.0
			if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
				dmg = en.BulletDamage
			}
			markDead(w, e)
			DamagePlayer(w, s.env, dmg)
		default:
			DamagePlayer(w, s.env, s.contactDamage(w, e)*ticks)
		}
	}
}

func (s *CombatSystem) contactDamage(w *ecs.World, e ecs.Entity) float64 {
	if ecs.Has(w, e, component.BossComponent.Kind()) {
		return s.env.Config.Boss.ContactDamage
	}
	if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
		return en.ContactDamage
	}
	if g, ok := ecs.Get(w, e, component.GuardianComponent.Kind()); ok {
		return g.ContactDamage
	}
	return 0
}

// resolveField applies the energy field as continuous damage to every
// hostile overlapping its radius.
func (s *CombatSystem) resolveField(w *ecs.World, dt float64) {
	ecs.ForEach2(w, component.EnergyFieldComponent.Kind(), component.TransformComponent.Kind(), func(owner ecs.Entity, f *component.EnergyField, t *component.Transform) {
		if isDead(w, owner) || f.DamagePerSecond <= 0 {
			return
		}
		dmg := f.DamagePerSecond * dt
		for _, e := range hostiles(w) {
			pos, ok := entity.Position(w, e)
			if !ok || pos.Distance(t.Pos) >= f.Radius+radiusOf(w, e) {
				continue
			}
			DamageHostile(w, s.env, e, dmg)
		}
	})
}
