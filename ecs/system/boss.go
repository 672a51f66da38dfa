package system

import (
	"fmt"
	"log"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/common"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// chaserPorts is the number of evenly spaced launch points around the boss.
const chaserPorts = 8

// BossSystem drives the boss encounter state machine. Every timer is a
// remaining-seconds countdown fed by dt, so phases advance the same way at
// any frame rate.
type BossSystem struct {
	env     *Env
	pattern *PatternScript
}

func NewBossSystem(env *Env, pattern *PatternScript) *BossSystem {
	return &BossSystem{env: env, pattern: pattern}
}

// SetPatternScript swaps the attack selection script. nil falls back to the
// configured table.
func (s *BossSystem) SetPatternScript(p *PatternScript) {
	s.pattern = p
}

func (s *BossSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	ecs.ForEach3(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), component.TransformComponent.Kind(),
		func(e ecs.Entity, b *component.Boss, rt *component.BossRuntime, t *component.Transform) {
			if isDead(w, e) {
				return
			}
			s.step(w, e, b, rt, t, dt)
		})
}

func (s *BossSystem) step(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime, t *component.Transform, dt float64) {
	cfg := s.env.Config.Boss
	rt.Elapsed += dt

	if rt.State == component.BossEntering {
		progress := 1.0
		if cfg.EnterDuration > 0 {
			progress = common.Clamp(rt.Elapsed/cfg.EnterDuration, 0, 1)
		}
		eased := common.EaseInOutCubic(progress)
		t.Pos = rt.EnterFrom.Lerp(rt.EnterTo, eased)
		rt.Shake = math.Sin(progress*math.Pi) * cfg.ShakeIntensity
		if progress >= 1 {
			rt.Shake = 0
			s.transition(e, rt, component.BossIdle, cfg.InitialCooldown)
		}
		return
	}
	if rt.State == component.BossDefeated {
		s.transition(e, rt, component.BossVictoryChoice, 0)
		return
	}
	if rt.State == component.BossVictoryChoice {
		return
	}

	s.sway(b, rt, t, dt)

	switch rt.State {
	case component.BossIdle:
		rt.Timer -= dt
		if rt.Timer > 0 {
			return
		}
		s.beginAttack(w, e, b, rt)
	case component.BossSpawningChasers:
		rt.SpawnTimer -= dt
		for rt.SpawnTimer <= 0 && rt.ChasersLeft > 0 {
			s.launchChaser(w, e, t.Pos, cfg.Chasers.Count-rt.ChasersLeft)
			rt.ChasersLeft--
			rt.SpawnTimer += cfg.Chasers.Interval
		}
		if rt.ChasersLeft <= 0 {
			s.finishAttack(b, rt)
		}
	case component.BossChargingShockwave:
		rt.Timer -= dt
		if cfg.Shockwave.Charge > 0 {
			rt.Charge = common.Clamp(1-rt.Timer/cfg.Shockwave.Charge, 0, 1)
		}
		if rt.Timer > 0 {
			return
		}
		rt.Charge = 0
		if _, err := entity.NewShockwave(w, s.env.Config, t.Pos); err != nil {
			fmt.Printf("boss: entity=%d shockwave: %v\n", e, err)
		}
		s.finishAttack(b, rt)
	case component.BossLockingLaser:
		rt.Timer -= dt
		if !rt.LockDone {
			if _, pt, ok := playerEntity(w); ok {
				rt.LockTarget = pt.Pos
			}
			if rt.Timer <= 0 {
				rt.LockDone = true
				rt.Timer += cfg.Laser.Delay
			}
			return
		}
		if rt.Timer > 0 {
			return
		}
		if _, err := entity.NewLaser(w, s.env.Config, e, t.Pos, rt.LockTarget.Sub(t.Pos)); err != nil {
			fmt.Printf("boss: entity=%d laser: %v\n", e, err)
		}
		s.finishAttack(b, rt)
	case component.BossCooldown:
		rt.Timer -= dt
		if rt.Timer <= 0 {
			s.transition(e, rt, component.BossIdle, 0)
		}
	}
}

// sway eases the boss toward an oscillating offset around its home.
func (s *BossSystem) sway(b *component.Boss, rt *component.BossRuntime, t *component.Transform, dt float64) {
	cfg := s.env.Config.Boss
	rt.SwayTime += dt
	target := b.Home.Add(cp.Vector{
		X: math.Sin(rt.SwayTime*2) * cfg.SwayAmplitude,
		Y: math.Cos(rt.SwayTime*1.5) * cfg.SwayAmplitude * 0.5,
	})
	k := common.Approach(cfg.SwayLerp, dt)
	t.Pos = t.Pos.Add(target.Sub(t.Pos).Mult(k))
}

func (s *BossSystem) beginAttack(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime) {
	cfg := s.env.Config.Boss
	attack := s.nextAttack(w, e, b, rt)
	if !s.transition(e, rt, attack.State(), 0) {
		return
	}
	switch attack {
	case component.AttackChasers:
		rt.ChasersLeft = cfg.Chasers.Count
		rt.SpawnTimer = 0
	case component.AttackShockwave:
		rt.Timer = cfg.Shockwave.Charge
		rt.Charge = 0
	case component.AttackLaser:
		rt.Timer = cfg.Laser.Lock
		rt.LockDone = false
	}
}

// nextAttack consults the pattern script, falling back to the table entry
// under the cursor when there is no script or it fails.
func (s *BossSystem) nextAttack(w *ecs.World, e ecs.Entity, b *component.Boss, rt *component.BossRuntime) component.AttackKind {
	if s.pattern != nil {
		frac := 1.0
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			frac = h.Fraction()
		}
		kind, err := s.pattern.Next(rt.Cursor, frac, b.Pattern)
		if err == nil {
			return kind
		}
		log.Printf("boss: entity=%d pattern script %s: %v; using table", e, s.pattern.Name(), err)
		s.pattern = nil
	}
	if len(b.Pattern) == 0 {
		return component.AttackChasers
	}
	return b.Pattern[rt.Cursor%len(b.Pattern)]
}

func (s *BossSystem) finishAttack(b *component.Boss, rt *component.BossRuntime) {
	cfg := s.env.Config.Boss
	if n := len(b.Pattern); n > 0 {
		rt.Cursor = (rt.Cursor + 1) % n
	} else {
		rt.Cursor++
	}
	s.transition(0, rt, component.BossCooldown, s.env.randRange(cfg.CooldownMin, cfg.CooldownMax))
}

func (s *BossSystem) transition(e ecs.Entity, rt *component.BossRuntime, to component.BossState, timer float64) bool {
	if !component.CanTransition(rt.State, to) {
		fmt.Printf("boss: entity=%d illegal transition %s -> %s\n", e, rt.State, to)
		return false
	}
	rt.State = to
	rt.Timer = timer
	rt.Elapsed = 0
	return true
}

// launchChaser emits chaser i from its port with an outward burst.
func (s *BossSystem) launchChaser(w *ecs.World, boss ecs.Entity, center cp.Vector, i int) {
	cfg := s.env.Config
	dir := cp.ForAngle(2 * math.Pi * float64(i%chaserPorts) / chaserPorts)
	pos := center.Add(dir.Mult(cfg.Boss.Size))
	wave := 1
	if rs := runState(w); rs != nil {
		wave = rs.Wave
	}
	if _, err := entity.NewChaser(w, cfg, wave, pos, dir.Mult(cfg.Boss.Chasers.Burst), true); err != nil {
		fmt.Printf("boss: entity=%d chaser: %v\n", boss, err)
	}
}

// defeatBoss ends the encounter: the boss stops being a target, every enemy
// and enemy projectile is cleared and the victory portals open.
func defeatBoss(w *ecs.World, env *Env, boss ecs.Entity) {
	cfg := env.Config
	if rt, ok := ecs.Get(w, boss, component.BossRuntimeComponent.Kind()); ok {
		rt.State = component.BossDefeated
		rt.Timer = 0
		rt.Elapsed = 0
		rt.Shake = 0
	}
	ecs.Remove(w, boss, component.HealthComponent.Kind())
	ecs.Remove(w, boss, component.BodyComponent.Kind())

	ClearHostiles(w)

	center, _ := entity.Position(w, boss)
	if _, a, ok := activeArena(w); ok {
		center = a.Bounds.Center()
	}
	for _, p := range []struct {
		kind component.PortalKind
		dx   float64
	}{
		{component.PortalContinue, -cfg.Portal.Offset},
		{component.PortalMenu, cfg.Portal.Offset},
	} {
		if _, err := entity.NewPortal(w, cfg, p.kind, center.Add(cp.Vector{X: p.dx})); err != nil {
			fmt.Printf("boss: portal %s: %v\n", p.kind, err)
		}
	}
	if rs := runState(w); rs != nil {
		rs.BossDefeated = true
	}
	log.Printf("boss: entity=%d defeated", boss)
	w.Emit(EventBossDefeated, nil)
}

// ClearHostiles marks every wave enemy and enemy projectile dead.
func ClearHostiles(w *ecs.World) {
	ecs.ForEach(w, component.VariantComponent.Kind(), func(e ecs.Entity, v *component.Variant) {
		switch *v {
		case component.VariantEnemyNormal, component.VariantEnemyChaser, component.VariantEnemyTitan,
			component.VariantEnemyBullet, component.VariantBossLaser, component.VariantBossShockwave:
			markDead(w, e)
		}
	})
}
