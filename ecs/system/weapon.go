package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// PlayerWeaponSystem fires the main gun. BulletCount bullets are spread
// evenly across the configured arc and spawned one ship radius ahead.
type PlayerWeaponSystem struct {
	env *Env
}

func NewPlayerWeaponSystem(env *Env) *PlayerWeaponSystem {
	return &PlayerWeaponSystem{env: env}
}

func (s *PlayerWeaponSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	cfg := s.env.Config

	ecs.ForEach3(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform) {
			if isDead(w, e) {
				return
			}
			if p.CooldownLeft > 0 {
				p.CooldownLeft -= dt
			}
			firing := in.Fire || (in.AimStickActive && in.AimStick.LengthSq() > 0)
			if !firing || p.CooldownLeft > 0 {
				return
			}
			p.CooldownLeft = p.ShootCooldown

			ahead := radiusOf(w, e)
			for _, angle := range SpreadAngles(t.Angle, p.BulletCount, cfg.Player.MultishotSpread) {
				pos := t.Pos.Add(cp.ForAngle(angle).Mult(ahead))
				if _, err := entity.NewBullet(w, entity.BulletSpec{
					Pos:        pos,
					Angle:      angle,
					Speed:      p.BulletSpeed,
					Size:       p.BulletSize,
					Damage:     p.Damage,
					FromPlayer: true,
					SplitLevel: p.SplitLevel,
				}); err != nil {
					fmt.Printf("weapon: entity=%d fire: %v\n", e, err)
					return
				}
			}
		})
}

// SpreadAngles returns count headings centred on angle spanning spread
// radians in total.
func SpreadAngles(angle float64, count int, spread float64) []float64 {
	if count <= 1 {
		return []float64{angle}
	}
	out := make([]float64, count)
	step := spread / float64(count-1)
	start := angle - spread/2
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}
