package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/common"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// PlayerControllerSystem applies input to the ship: acceleration toward the
// move direction, per-tick friction, the speed cap (scaled by any slow) and
// facing toward the aim point or aim stick.
type PlayerControllerSystem struct {
	env *Env
}

func NewPlayerControllerSystem(env *Env) *PlayerControllerSystem {
	return &PlayerControllerSystem{env: env}
}

func (s *PlayerControllerSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	stop := s.env.Config.Player.StopSpeed

	ecs.ForEach4(w,
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		component.VelocityComponent.Kind(),
		func(e ecs.Entity, p *component.Player, in *component.Input, t *component.Transform, v *component.Velocity) {
			if isDead(w, e) {
				return
			}
			move := in.Move
			if move.LengthSq() > 1 {
				move = move.Normalize()
			}
			v.Vel = v.Vel.Add(move.Mult(p.Accel * dt))
			v.Vel = v.Vel.Mult(common.Decay(p.Friction, dt))

			maxSpeed := p.MaxSpeed()
			if slow, ok := ecs.Get(w, e, component.SlowComponent.Kind()); ok && slow.Remaining > 0 {
				maxSpeed *= slow.Factor
			}
			if speed := v.Vel.Length(); speed > maxSpeed && speed > 0 {
				v.Vel = v.Vel.Mult(maxSpeed / speed)
			}
			if v.Vel.Length() < stop {
				v.Vel = cp.Vector{}
			}
			t.Pos = t.Pos.Add(v.Vel.Mult(dt))

			if in.AimStickActive && in.AimStick.LengthSq() > 0 {
				t.Angle = in.AimStick.ToAngle()
			} else if d := in.AimPoint.Sub(t.Pos); d.LengthSq() > 0 {
				t.Angle = math.Atan2(d.Y, d.X)
			}
		})
}
