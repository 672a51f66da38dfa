package system

import (
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// TTLSystem counts down TTL components and marks the entity dead when the
// TTL reaches zero. Explosions also advance their stage clock here.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.ExplosionComponent.Kind(), func(_ ecs.Entity, x *component.Explosion) {
		x.Elapsed += dt
	})

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		if ttl == nil {
			return
		}
		ttl.Remaining -= dt
		if ttl.Remaining > 0 {
			return
		}
		markDead(w, e)
	})
}
