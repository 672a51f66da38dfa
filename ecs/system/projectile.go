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

// BulletSystem moves straight bullets and removes those that drift out of
// range of the player.
type BulletSystem struct {
	env *Env
}

func NewBulletSystem(env *Env) *BulletSystem {
	return &BulletSystem{env: env}
}

func (s *BulletSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	_, pt, hasPlayer := playerEntity(w)
	maxDist := s.env.Config.Bullet.MaxDistance

	ecs.ForEach3(w, component.BulletComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, _ *component.Bullet, t *component.Transform, v *component.Velocity) {
			if isDead(w, e) {
				return
			}
			t.Pos = t.Pos.Add(v.Vel.Mult(dt))
			if hasPlayer && t.Pos.Distance(pt.Pos) > maxDist {
				markDead(w, e)
			}
		})
}

// MissileSystem steers homing missiles. Each tick a missile locks the
// nearest living target, leads it by its velocity, and turns toward the
// predicted point no faster than TurnRate. It detonates on contact or
// when its target dies with nothing left to chase.
type MissileSystem struct {
	env *Env
}

func NewMissileSystem(env *Env) *MissileSystem {
	return &MissileSystem{env: env}
}

func (s *MissileSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	gc := s.env.Config.GuidedWeapon
	_, pt, hasPlayer := playerEntity(w)

	ecs.ForEach3(w, component.MissileComponent.Kind(), component.TransformComponent.Kind(), component.VelocityComponent.Kind(),
		func(e ecs.Entity, m *component.Missile, t *component.Transform, v *component.Velocity) {
			if isDead(w, e) {
				return
			}
			prev := ecs.Entity(m.Target)
			if next, ok := nearestOf(w, missileTargets(w), t.Pos); ok {
				m.Target = uint64(next)
			} else if prev.Valid() && isDead(w, prev) {
				s.detonate(w, e, m, t.Pos)
				return
			}

			target := ecs.Entity(m.Target)
			if target.Valid() && !isDead(w, target) {
				tp, _ := entity.Position(w, target)
				aim := LeadPoint(t.Pos, tp, targetVelocity(w, target), m.Speed, gc.Prediction)
				if dir, ok := direction(t.Pos, aim); ok {
					m.Heading = common.TurnToward(m.Heading, dir.ToAngle(), m.TurnRate*dt)
				}
			}
			v.Vel = cp.ForAngle(m.Heading).Mult(m.Speed)
			step := v.Vel.Mult(dt)
			t.Pos = t.Pos.Add(step)
			t.Angle = m.Heading
			m.Traveled += step.Length()

			if target.Valid() && !isDead(w, target) {
				tp, _ := entity.Position(w, target)
				if overlaps(t.Pos, tp, radiusOf(w, e), radiusOf(w, target)) {
					s.detonate(w, e, m, t.Pos)
					return
				}
			}
			if hasPlayer && t.Pos.Distance(pt.Pos) > gc.MaxDistance {
				markDead(w, e)
			}
		})
}

// detonate damages every missile target inside the blast radius, leaves an
// explosion behind and removes the missile.
func (s *MissileSystem) detonate(w *ecs.World, e ecs.Entity, m *component.Missile, at cp.Vector) {
	for _, target := range missileTargets(w) {
		pos, ok := entity.Position(w, target)
		if !ok || pos.Distance(at) > m.BlastRadius {
			continue
		}
		DamageHostile(w, s.env, target, m.Damage)
	}
	if _, err := entity.NewExplosion(w, s.env.Config, at, m.BlastRadius); err != nil {
		fmt.Printf("missile: entity=%d explosion: %v\n", e, err)
	}
	markDead(w, e)
}

// LeadPoint predicts where a target moving at vel will be. The look-ahead
// is the flight time to the target scaled by factor.
func LeadPoint(from, target, vel cp.Vector, speed, factor float64) cp.Vector {
	if speed <= 0 {
		return target
	}
	t := from.Distance(target) / speed * factor
	return target.Add(vel.Mult(t))
}

func targetVelocity(w *ecs.World, e ecs.Entity) cp.Vector {
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		return cp.Vector{}
	}
	return v.Vel
}

func nearestOf(w *ecs.World, pool []ecs.Entity, from cp.Vector) (ecs.Entity, bool) {
	best := ecs.Nil
	bestDist := math.Inf(1)
	for _, e := range pool {
		pos, ok := entity.Position(w, e)
		if !ok {
			continue
		}
		if d := pos.DistanceSq(from); d < bestDist {
			best, bestDist = e, d
		}
	}
	return best, best.Valid()
}

// LaserSystem keeps each boss laser anchored to its source and damages the
// player at most once per laser.
type LaserSystem struct {
	env *Env
}

func NewLaserSystem(env *Env) *LaserSystem {
	return &LaserSystem{env: env}
}

func (s *LaserSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	pe, pt, hasPlayer := playerEntity(w)

	ecs.ForEach2(w, component.LaserComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, l *component.Laser, t *component.Transform) {
		if isDead(w, e) {
			return
		}
		l.Elapsed += dt
		if l.Elapsed >= l.Life {
			markDead(w, e)
			return
		}
		if src := ecs.Entity(l.Source); !isDead(w, src) {
			if pos, ok := entity.Position(w, src); ok {
				l.Origin = pos
			}
		}
		t.Pos = l.Origin
		t.Angle = l.Dir.ToAngle()

		if !hasPlayer || l.Hit[uint64(pe)] {
			return
		}
		if RayHit(l.Origin, l.Dir, pt.Pos, l.Width+radiusOf(w, pe)) {
			l.Hit[uint64(pe)] = true
			DamagePlayer(w, s.env, l.Damage)
		}
	})
}

// RayHit reports whether p lies within width of the ray from origin along
// dir. Points behind the origin never hit.
func RayHit(origin, dir, p cp.Vector, width float64) bool {
	if dir.LengthSq() == 0 {
		return false
	}
	d := dir.Normalize()
	rel := p.Sub(origin)
	along := rel.Dot(d)
	if along < 0 {
		return false
	}
	return math.Abs(rel.Cross(d)) < width
}

// ShockwaveSystem grows boss shockwaves and hits the player once per ring,
// slowing them.
type ShockwaveSystem struct {
	env *Env
}

func NewShockwaveSystem(env *Env) *ShockwaveSystem {
	return &ShockwaveSystem{env: env}
}

func (s *ShockwaveSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	pe, pt, hasPlayer := playerEntity(w)

	ecs.ForEach(w, component.ShockwaveComponent.Kind(), func(e ecs.Entity, sw *component.Shockwave) {
		if isDead(w, e) {
			return
		}
		sw.Radius += sw.ExpandSpeed * dt
		if sw.Radius >= sw.MaxRadius {
			markDead(w, e)
			return
		}
		if !hasPlayer || sw.Hit[uint64(pe)] {
			return
		}
		if RingHit(sw.Center, sw.Radius, sw.Thickness, pt.Pos, radiusOf(w, pe)) {
			sw.Hit[uint64(pe)] = true
			DamagePlayer(w, s.env, sw.Damage)
			if sw.SlowDuration > 0 {
				_ = ecs.Add(w, pe, component.SlowComponent.Kind(), &component.Slow{Factor: sw.SlowFactor, Remaining: sw.SlowDuration})
			}
		}
	})
}

// RingHit reports whether a circle at p with radius r touches the band of
// the given thickness around radius.
func RingHit(center cp.Vector, radius, thickness float64, p cp.Vector, r float64) bool {
	d := p.Distance(center)
	return math.Abs(d-radius) < thickness+r
}
