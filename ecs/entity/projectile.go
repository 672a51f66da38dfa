package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// BulletSpec describes one straight bullet.
type BulletSpec struct {
	Pos        cp.Vector
	Angle      float64
	Speed      float64
	Size       float64
	Damage     float64
	FromPlayer bool
	SplitLevel int
	// Split bullets are the children of a split and never split again.
	Split bool
}

func NewBullet(w *ecs.World, spec BulletSpec) (ecs.Entity, error) {
	variant := component.VariantEnemyBullet
	if spec.FromPlayer {
		variant = component.VariantPlayerBullet
	}
	b := newBuilder(w, "bullet", variant, spec.Pos, spec.Size)
	add(b, component.BulletComponent.Kind(), &component.Bullet{
		Damage:     spec.Damage,
		FromPlayer: spec.FromPlayer,
		SplitLevel: spec.SplitLevel,
		Split:      spec.Split,
	})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{Vel: cp.ForAngle(spec.Angle).Mult(spec.Speed)})
	if b.err == nil {
		if t, ok := ecs.Get(w, b.e, component.TransformComponent.Kind()); ok {
			t.Angle = spec.Angle
		}
	}
	return b.done()
}

// NewMissile launches a homing missile. target may be ecs.Nil.
func NewMissile(w *ecs.World, cfg *prefabs.Config, pos cp.Vector, heading float64, target ecs.Entity, damage float64) (ecs.Entity, error) {
	gc := cfg.GuidedWeapon
	b := newBuilder(w, "missile", component.VariantMissile, pos, gc.MissileSize)
	add(b, component.MissileComponent.Kind(), &component.Missile{
		Target:      uint64(target),
		Heading:     heading,
		Speed:       gc.MissileSpeed,
		TurnRate:    gc.TurnRate,
		Damage:      damage,
		BlastRadius: gc.BlastRadius,
	})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{Vel: cp.ForAngle(heading).Mult(gc.MissileSpeed)})
	return b.done()
}

// NewLaser fires a boss laser from origin along dir.
func NewLaser(w *ecs.World, cfg *prefabs.Config, source ecs.Entity, origin, dir cp.Vector) (ecs.Entity, error) {
	lc := cfg.Boss.Laser
	if dir.LengthSq() > 0 {
		dir = dir.Normalize()
	} else {
		dir = cp.Vector{X: 1}
	}
	b := newBuilder(w, "laser", component.VariantBossLaser, origin, 0)
	add(b, component.LaserComponent.Kind(), &component.Laser{
		Source:  uint64(source),
		Origin:  origin,
		Dir:     dir,
		Width:   lc.Width,
		Damage:  lc.Damage,
		Life:    lc.Life,
		FadeIn:  lc.FadeIn,
		FadeOut: lc.FadeOut,
		Hit:     map[uint64]bool{},
	})
	return b.done()
}

func NewShockwave(w *ecs.World, cfg *prefabs.Config, center cp.Vector) (ecs.Entity, error) {
	sc := cfg.Boss.Shockwave
	b := newBuilder(w, "shockwave", component.VariantBossShockwave, center, 0)
	add(b, component.ShockwaveComponent.Kind(), &component.Shockwave{
		Center:       center,
		MaxRadius:    sc.MaxRadius,
		ExpandSpeed:  sc.ExpandSpeed,
		Thickness:    sc.Thickness,
		Damage:       sc.Damage,
		SlowFactor:   sc.SlowFactor,
		SlowDuration: sc.SlowDuration,
		Hit:          map[uint64]bool{},
	})
	return b.done()
}

// NewExplosion spawns the staged blast effect of a missile.
func NewExplosion(w *ecs.World, cfg *prefabs.Config, pos cp.Vector, radius float64) (ecs.Entity, error) {
	ec := cfg.Effects
	b := newBuilder(w, "explosion", component.VariantExplosion, pos, 0)
	add(b, component.ExplosionComponent.Kind(), &component.Explosion{
		Radius:   radius,
		Duration: ec.ExplosionDuration,
		Stages:   ec.ExplosionStages,
	})
	add(b, component.TTLComponent.Kind(), &component.TTL{Remaining: ec.ExplosionDuration})
	return b.done()
}
