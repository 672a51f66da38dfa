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

// EnemyAISystem moves wave enemies toward the player and fires their
// volleys. Shooters stop approaching at KeepDistance. A chaser's burst
// decays each tick until it falls below burstFloor.
type EnemyAISystem struct {
	env *Env
}

const burstFloor = 6.0

func NewEnemyAISystem(env *Env) *EnemyAISystem {
	return &EnemyAISystem{env: env}
}

func (s *EnemyAISystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	_, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	decay := common.Decay(s.env.Config.Enemies.Chaser.BurstDecay, dt)

	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, en *component.Enemy, t *component.Transform, v *component.Velocity) {
			if isDead(w, e) {
				return
			}
			dir, ok := direction(t.Pos, pt.Pos)
			dist := t.Pos.Distance(pt.Pos)
			v.Vel = cp.Vector{}
			if ok && (en.KeepDistance <= 0 || dist > en.KeepDistance) {
				v.Vel = dir.Mult(en.Speed)
			}
			if ok {
				t.Angle = dir.ToAngle()
			}
			if en.Burst.LengthSq() > 0 {
				v.Vel = v.Vel.Add(en.Burst)
				en.Burst = en.Burst.Mult(decay)
				if en.Burst.Length() < burstFloor {
					en.Burst = cp.Vector{}
				}
			}
			t.Pos = t.Pos.Add(v.Vel.Mult(dt))

			if en.Volley <= 0 {
				return
			}
			en.CooldownLeft -= dt
			if en.CooldownLeft > 0 {
				return
			}
			en.CooldownLeft = en.ShootCooldown
			fireVolley(w, s.env, e, t.Pos, t.Angle, en.Volley, en.BulletDamage)
		})
}

// fireVolley shoots one aimed bullet, or count bullets evenly around the
// shooter when count > 1.
func fireVolley(w *ecs.World, env *Env, shooter ecs.Entity, pos cp.Vector, aim float64, count int, damage float64) {
	cfg := env.Config
	angles := []float64{aim}
	if count > 1 {
		angles = make([]float64, count)
		for i := range angles {
			angles[i] = 2 * math.Pi * float64(i) / float64(count)
		}
	}
	for _, a := range angles {
		if _, err := entity.NewBullet(w, entity.BulletSpec{
			Pos:    pos,
			Angle:  a,
			Speed:  cfg.EnemyBullet.Speed,
			Size:   cfg.EnemyBullet.Size,
			Damage: damage,
		}); err != nil {
			fmt.Printf("ai: entity=%d fire: %v\n", shooter, err)
			return
		}
	}
}

// GuardianAISystem keeps guardians near their chest. Aggro turns on inside
// AggroRange and off only past AggroRange*AggroExit. An aggroed guardian
// chases while its chest is within GuardRange; one that strays past
// ReturnFraction of the range heads back; otherwise it wanders.
type GuardianAISystem struct {
	env *Env
}

func NewGuardianAISystem(env *Env) *GuardianAISystem {
	return &GuardianAISystem{env: env}
}

func (s *GuardianAISystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	_, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	gc := s.env.Config.Guardian

	ecs.ForEach3(w, component.GuardianComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, g *component.Guardian, t *component.Transform, v *component.Velocity) {
			if isDead(w, e) {
				return
			}
			UpdateAggro(g, t.Pos.Distance(pt.Pos))

			toTreasure := t.Pos.Distance(g.Anchor)
			v.Vel = cp.Vector{}
			switch {
			case g.Aggro && toTreasure < g.GuardRange:
				if dir, ok := direction(t.Pos, pt.Pos); ok {
					v.Vel = dir.Mult(g.Speed)
					t.Angle = dir.ToAngle()
				}
			case toTreasure > g.GuardRange*gc.ReturnFraction:
				if dir, ok := direction(t.Pos, g.Anchor); ok {
					v.Vel = dir.Mult(g.Speed)
					t.Angle = dir.ToAngle()
				}
			default:
				g.WanderLeft -= dt
				if g.WanderLeft <= 0 {
					g.WanderLeft = gc.WanderInterval
					g.WanderAngle = s.env.Rand.Float64() * 2 * math.Pi
				}
				v.Vel = cp.ForAngle(g.WanderAngle).Mult(gc.WanderSpeed)
			}
			t.Pos = t.Pos.Add(v.Vel.Mult(dt))

			if g.CooldownLeft > 0 {
				g.CooldownLeft -= dt
			}
			if !g.Aggro || g.CooldownLeft > 0 {
				return
			}
			g.CooldownLeft = g.ShootCooldown
			aim := t.Angle
			if dir, ok := direction(t.Pos, pt.Pos); ok {
				aim = dir.ToAngle()
			}
			fireVolley(w, s.env, e, t.Pos, aim, 1, g.BulletDamage)
		})
}

// UpdateAggro applies the hysteresis rule for a player at dist.
func UpdateAggro(g *component.Guardian, dist float64) {
	exit := g.AggroExit
	if exit < 1 {
		exit = 1
	}
	switch {
	case dist < g.AggroRange:
		g.Aggro = true
	case dist > g.AggroRange*exit:
		g.Aggro = false
	}
}
