package system

import (
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// PickupSystem pulls gems and health packs toward the player once inside
// their magnet range and collects them on contact. Pickups still carrying
// a Cooldown are inert.
type PickupSystem struct {
	env *Env
}

func NewPickupSystem(env *Env) *PickupSystem {
	return &PickupSystem{env: env}
}

func (s *PickupSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	pe, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	pr := radiusOf(w, pe)

	ecs.ForEach2(w, component.PickupComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Pickup, t *component.Transform) {
		if isDead(w, e) || ecs.Has(w, e, component.CooldownComponent.Kind()) {
			return
		}
		if p.Snap > 0 {
			if dir, ok := direction(pt.Pos, t.Pos); ok {
				t.Pos = pt.Pos.Add(dir.Mult(p.Snap))
			}
			p.Snap = 0
		}

		dist := t.Pos.Distance(pt.Pos)
		if dist < p.MagnetRange {
			if dir, ok := direction(t.Pos, pt.Pos); ok {
				step := p.Speed * dt
				if step > dist {
					step = dist
				}
				t.Pos = t.Pos.Add(dir.Mult(step))
			}
		}
		if !overlaps(t.Pos, pt.Pos, radiusOf(w, e), pr) {
			return
		}
		markDead(w, e)
		s.collect(w, pe, p)
	})
}

func (s *PickupSystem) collect(w *ecs.World, player ecs.Entity, p *component.Pickup) {
	switch p.Kind {
	case component.PickupExperience:
		prog := progression(w)
		if prog == nil {
			return
		}
		if prog.AddExperience(p.Value) {
			w.Emit(EventLevelUp, LevelUpEvent{Level: prog.Level})
		}
	case component.PickupHealth:
		if h, ok := ecs.Get(w, player, component.HealthComponent.Kind()); ok {
			h.Heal(h.Max * p.Value)
		}
	}
}
