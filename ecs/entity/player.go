package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// PlayerBonus carries permanent shop upgrades into a new run.
type PlayerBonus struct {
	Health float64
	Speed  float64
	Damage float64
	// SplitLevel starts the run with bullet split unlocked.
	SplitLevel int
}

func NewPlayer(w *ecs.World, cfg *prefabs.Config, bonus PlayerBonus, pos cp.Vector) (ecs.Entity, error) {
	pc := cfg.Player
	b := newBuilder(w, "player", component.VariantPlayer, pos, pc.Size)
	add(b, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	add(b, component.PlayerComponent.Kind(), &component.Player{
		Accel:         pc.Accel,
		Friction:      pc.Friction,
		BaseMaxSpeed:  pc.MaxSpeed,
		SpeedBonus:    bonus.Speed,
		Damage:        pc.Damage + bonus.Damage,
		BulletCount:   max(pc.BulletCount, 1),
		BulletSize:    cfg.Bullet.Size,
		BulletSpeed:   cfg.Bullet.Speed,
		ShootCooldown: pc.ShootCooldown,
		SplitLevel:    bonus.SplitLevel,
		Picks:         map[string]int{},
	})
	maxHealth := pc.MaxHealth + bonus.Health
	add(b, component.HealthComponent.Kind(), &component.Health{Current: maxHealth, Max: maxHealth})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	add(b, component.InputComponent.Kind(), &component.Input{AimPoint: pos.Add(cp.Vector{X: 1})})
	return b.done()
}

// NewShield adds an orbiting shield around owner.
func NewShield(w *ecs.World, cfg *prefabs.Config, owner ecs.Entity, angle float64) (ecs.Entity, error) {
	sc := cfg.Shield
	center, _ := Position(w, owner)
	b := newBuilder(w, "shield", component.VariantShield, center, sc.Size)
	add(b, component.ShieldComponent.Kind(), &component.Shield{})
	add(b, component.OrbiterComponent.Kind(), &component.Orbiter{
		Owner:        uint64(owner),
		Angle:        angle,
		Distance:     sc.Distance,
		AngularSpeed: sc.AngularSpeed,
	})
	return b.done()
}

// NewDrone adds an orbiting drone around owner.
func NewDrone(w *ecs.World, cfg *prefabs.Config, owner ecs.Entity, angle float64) (ecs.Entity, error) {
	dc := cfg.Drone
	center, _ := Position(w, owner)
	b := newBuilder(w, "drone", component.VariantDrone, center, dc.Size)
	add(b, component.DroneComponent.Kind(), &component.Drone{
		Cooldown:    dc.Cooldown,
		Heading:     angle,
		TurnLerp:    dc.TurnLerp,
		DamageScale: dc.DamageScale,
	})
	add(b, component.OrbiterComponent.Kind(), &component.Orbiter{
		Owner:        uint64(owner),
		Angle:        angle,
		Distance:     dc.Distance,
		AngularSpeed: dc.AngularSpeed,
	})
	return b.done()
}
