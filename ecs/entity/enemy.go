package entity

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// EnemyConfigFor returns the tuning row for a wave enemy variant.
func EnemyConfigFor(cfg *prefabs.Config, variant component.Variant) (prefabs.EnemyConfig, error) {
	switch variant {
	case component.VariantEnemyNormal:
		return cfg.Enemies.Normal, nil
	case component.VariantEnemyChaser:
		return cfg.Enemies.Chaser, nil
	case component.VariantEnemyTitan:
		return cfg.Enemies.Titan, nil
	default:
		return prefabs.EnemyConfig{}, fmt.Errorf("enemy: %s is not a wave enemy", variant)
	}
}

// NewEnemy builds a wave enemy scaled for wave. rng jitters the first shot so
// a pack does not fire in unison; it may be nil.
func NewEnemy(w *ecs.World, cfg *prefabs.Config, variant component.Variant, wave int, pos cp.Vector, rng *rand.Rand) (ecs.Entity, error) {
	ec, err := EnemyConfigFor(cfg, variant)
	if err != nil {
		return 0, err
	}
	first := ec.CooldownAt(wave)
	if rng != nil && ec.FirstShotJitter > 0 {
		first = rng.Float64() * ec.FirstShotJitter
	}
	health := ec.HealthAt(wave)

	b := newBuilder(w, "enemy", variant, pos, ec.Size)
	add(b, component.EnemyComponent.Kind(), &component.Enemy{
		Speed:         ec.Speed,
		BulletDamage:  ec.DamageAt(wave),
		ContactDamage: ec.ContactDamage,
		ShootCooldown: ec.CooldownAt(wave),
		CooldownLeft:  first,
		KeepDistance:  ec.KeepDistance,
		Volley:        ec.Volley,
	})
	add(b, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	return b.done()
}

// NewChaser builds a chaser with an initial outward burst. Chasers summoned by
// the boss drop nothing.
func NewChaser(w *ecs.World, cfg *prefabs.Config, wave int, pos, burst cp.Vector, fromBoss bool) (ecs.Entity, error) {
	e, err := NewEnemy(w, cfg, component.VariantEnemyChaser, wave, pos, nil)
	if err != nil {
		return 0, err
	}
	en, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
	en.Burst = burst
	en.FromBoss = fromBoss
	return e, nil
}

// NewGuardian builds a guardian anchored to a treasure chest.
func NewGuardian(w *ecs.World, cfg *prefabs.Config, wave int, treasure ecs.Entity, anchor, pos cp.Vector, rng *rand.Rand) (ecs.Entity, error) {
	gc := cfg.Guardian
	health := gc.HealthAt(wave)
	wander := 0.0
	if rng != nil {
		wander = rng.Float64() * 2 * math.Pi
	}

	b := newBuilder(w, "guardian", component.VariantGuardian, pos, gc.Size)
	add(b, component.GuardianComponent.Kind(), &component.Guardian{
		Treasure:      uint64(treasure),
		Anchor:        anchor,
		AggroRange:    gc.AggroRange,
		AggroExit:     gc.AggroExit,
		GuardRange:    gc.GuardRange,
		Speed:         gc.Speed,
		BulletDamage:  gc.DamageAt(wave),
		ContactDamage: gc.ContactDamage,
		ShootCooldown: gc.CooldownAt(wave),
		CooldownLeft:  gc.CooldownAt(wave),
		WanderAngle:   wander,
		WanderLeft:    gc.WanderInterval,
	})
	add(b, component.HealthComponent.Kind(), &component.Health{Current: health, Max: health})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	return b.done()
}

// NewTreasure builds a locked chest. Guards are attached by the caller once
// they exist.
func NewTreasure(w *ecs.World, cfg *prefabs.Config, pos cp.Vector) (ecs.Entity, error) {
	b := newBuilder(w, "treasure", component.VariantTreasureChest, pos, cfg.Treasure.Size)
	add(b, component.TreasureComponent.Kind(), &component.Treasure{Locked: true})
	return b.done()
}

// NewBoss builds the boss in its entrance state. home is where it settles;
// it eases in from EnterOffset above.
func NewBoss(w *ecs.World, cfg *prefabs.Config, home cp.Vector) (ecs.Entity, error) {
	bc := cfg.Boss
	pattern := make([]component.AttackKind, 0, len(bc.Pattern))
	for _, name := range bc.Pattern {
		k, ok := component.ParseAttackKind(name)
		if !ok {
			return 0, fmt.Errorf("boss: unknown attack %q: %w", name, prefabs.ErrInvalidConfig)
		}
		pattern = append(pattern, k)
	}
	from := home.Sub(cp.Vector{Y: bc.EnterOffset})

	b := newBuilder(w, "boss", component.VariantBoss, from, bc.Size)
	add(b, component.BossComponent.Kind(), &component.Boss{
		DisplayName: bc.Name,
		Pattern:     pattern,
		Home:        home,
	})
	add(b, component.BossRuntimeComponent.Kind(), &component.BossRuntime{
		State:     component.BossEntering,
		Timer:     bc.EnterDuration,
		EnterFrom: from,
		EnterTo:   home,
	})
	add(b, component.HealthComponent.Kind(), &component.Health{Current: bc.Health, Max: bc.Health})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	return b.done()
}
