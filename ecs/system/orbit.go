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

// OrbitSystem keeps shields and drones circling their owner. Orbiters whose
// owner is gone are removed.
type OrbitSystem struct{}

func NewOrbitSystem() *OrbitSystem {
	return &OrbitSystem{}
}

func (s *OrbitSystem) Update(w *ecs.World, dt float64) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.OrbiterComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, o *component.Orbiter, t *component.Transform) {
		owner := ecs.Entity(o.Owner)
		center, ok := entity.Position(w, owner)
		if !ok || isDead(w, owner) {
			markDead(w, e)
			return
		}
		o.Angle = common.WrapAngle(o.Angle + o.AngularSpeed*dt)
		t.Pos = center.Add(cp.ForAngle(o.Angle).Mult(o.Distance))
	})
}

// Redistribute spaces every orbiter of the given variant evenly around owner,
// keeping the first one's phase.
func Redistribute(w *ecs.World, owner ecs.Entity, variant component.Variant) {
	var orbs []*component.Orbiter
	ecs.ForEach2(w, component.OrbiterComponent.Kind(), component.VariantComponent.Kind(), func(e ecs.Entity, o *component.Orbiter, v *component.Variant) {
		if *v == variant && ecs.Entity(o.Owner) == owner && !isDead(w, e) {
			orbs = append(orbs, o)
		}
	})
	if len(orbs) == 0 {
		return
	}
	base := orbs[0].Angle
	step := 2 * math.Pi / float64(len(orbs))
	for i, o := range orbs {
		o.Angle = common.WrapAngle(base + step*float64(i))
	}
}

// DroneSystem turns drones toward the owner's facing and fires at the
// nearest enemy for a fraction of the owner's damage.
type DroneSystem struct {
	env *Env
}

func NewDroneSystem(env *Env) *DroneSystem {
	return &DroneSystem{env: env}
}

func (s *DroneSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	cfg := s.env.Config

	ecs.ForEach3(w, component.DroneComponent.Kind(), component.OrbiterComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, d *component.Drone, o *component.Orbiter, t *component.Transform) {
			if isDead(w, e) {
				return
			}
			owner := ecs.Entity(o.Owner)
			ot, ok := ecs.Get(w, owner, component.TransformComponent.Kind())
			if !ok {
				return
			}
			p, ok := ecs.Get(w, owner, component.PlayerComponent.Kind())
			if !ok {
				return
			}
			diff := common.WrapAngle(ot.Angle - d.Heading)
			d.Heading = common.WrapAngle(d.Heading + diff*common.Approach(d.TurnLerp, dt))
			t.Angle = d.Heading

			if d.CooldownLeft > 0 {
				d.CooldownLeft -= dt
				return
			}
			target, ok := nearestEnemy(w, t.Pos)
			if !ok {
				return
			}
			tp, _ := entity.Position(w, target)
			dir, ok := direction(t.Pos, tp)
			if !ok {
				return
			}
			d.CooldownLeft = d.Cooldown
			if _, err := entity.NewBullet(w, entity.BulletSpec{
				Pos:        t.Pos,
				Angle:      dir.ToAngle(),
				Speed:      p.BulletSpeed,
				Size:       cfg.Bullet.Size,
				Damage:     p.Damage * d.DamageScale,
				FromPlayer: true,
			}); err != nil {
				fmt.Printf("drone: entity=%d fire: %v\n", e, err)
			}
		})
}

// nearestEnemy searches regular enemies, guardians and the boss.
func nearestEnemy(w *ecs.World, from cp.Vector) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := math.Inf(1)
	for _, e := range hostiles(w) {
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
