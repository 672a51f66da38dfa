package system

import (
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// CooldownSystem counts down generic cooldowns and removes the component
// once it expires, which is what re-enables a delayed pickup.
type CooldownSystem struct{}

func NewCooldownSystem() *CooldownSystem {
	return &CooldownSystem{}
}

func (s *CooldownSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.CooldownComponent.Kind(), func(e ecs.Entity, cd *component.Cooldown) {
		if cd == nil {
			return
		}
		cd.Remaining -= dt
		if cd.Remaining > 0 {
			return
		}
		_ = ecs.Remove(w, e, component.CooldownComponent.Kind())
	})
}

// SlowSystem expires movement slows.
type SlowSystem struct{}

func NewSlowSystem() *SlowSystem {
	return &SlowSystem{}
}

func (s *SlowSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.SlowComponent.Kind(), func(e ecs.Entity, sl *component.Slow) {
		sl.Remaining -= dt
		if sl.Remaining <= 0 {
			_ = ecs.Remove(w, e, component.SlowComponent.Kind())
		}
	})
}
