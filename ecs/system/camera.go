package system

import (
	"github.com/milk9111/voidarena/common"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// CameraSystem eases the camera toward the player. While a boss lives and
// the camera is free, the player is framed in the lower half of the screen.
// A fixed camera holds its anchor.
type CameraSystem struct {
	env *Env
}

func NewCameraSystem(env *Env) *CameraSystem {
	return &CameraSystem{env: env}
}

func (cs *CameraSystem) Update(w *ecs.World, dt float64) {
	if w == nil || cs.env == nil || cs.env.Config == nil {
		return
	}
	_, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	bossActive := false
	ecs.ForEach(w, component.BossRuntimeComponent.Kind(), func(e ecs.Entity, rt *component.BossRuntime) {
		if !isDead(w, e) && (bossDamageable(rt.State) || rt.State == component.BossEntering) {
			bossActive = true
		}
	})

	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		if c.Fixed {
			c.Pos = c.Anchor
			return
		}
		c.OffsetY = 0
		if bossActive {
			c.OffsetY = -cs.env.Config.Canvas.Height / 4
		}
		k := common.Approach(c.Smoothing, dt)
		c.Pos.X += (pt.Pos.X - c.Pos.X) * k
		c.Pos.Y += (pt.Pos.Y + c.OffsetY - c.Pos.Y) * k
	})
}
