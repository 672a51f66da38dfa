package system

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// DamageHostile applies amount to an enemy, guardian or boss and resolves
// the kill when health reaches zero. It reports whether the target died.
// Dead targets and a boss that is still entering take no damage.
func DamageHostile(w *ecs.World, env *Env, target ecs.Entity, amount float64) bool {
	if w == nil || env == nil || isDead(w, target) {
		return false
	}
	h, ok := ecs.Get(w, target, component.HealthComponent.Kind())
	if !ok {
		return false
	}
	if rt, ok := ecs.Get(w, target, component.BossRuntimeComponent.Kind()); ok && !bossDamageable(rt.State) {
		return false
	}
	if g, ok := ecs.Get(w, target, component.GuardianComponent.Kind()); ok {
		g.Aggro = true
	}
	dead := h.TakeDamage(amount)
	flash(w, env, target)
	if dead {
		kill(w, env, target)
	}
	return dead
}

func bossDamageable(s component.BossState) bool {
	switch s {
	case component.BossEntering, component.BossDefeated, component.BossVictoryChoice:
		return false
	default:
		return true
	}
}

// DamagePlayer applies amount to the player. The run ends when health
// reaches zero.
func DamagePlayer(w *ecs.World, env *Env, amount float64) {
	e, _, ok := playerEntity(w)
	if !ok || amount <= 0 {
		return
	}
	rs := runState(w)
	if rs != nil && rs.GameOver {
		return
	}
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		return
	}
	dead := h.TakeDamage(amount)
	flash(w, env, e)
	w.Emit(EventPlayerHit, PlayerHitEvent{Damage: amount, Health: h.Current})
	if dead {
		EndRun(w, false)
	}
}

// EndRun finishes the run once. Later calls are ignored.
func EndRun(w *ecs.World, victory bool) {
	rs := runState(w)
	if rs == nil || rs.GameOver {
		return
	}
	rs.GameOver = true
	rs.Victory = victory
	w.Emit(EventRunEnded, RunEndedEvent{Victory: victory, Wave: rs.Wave, Score: rs.Score, Kills: rs.Kills})
}

func flash(w *ecs.World, env *Env, e ecs.Entity) {
	d := env.Config.Effects.HitFlash
	if d <= 0 {
		return
	}
	_ = ecs.Add(w, e, component.WhiteFlashComponent.Kind(), &component.WhiteFlash{Remaining: d, Duration: d})
}

// kill awards score and drops for a hostile whose health reached zero and
// advances the wave every KillsPerWave kills.
func kill(w *ecs.World, env *Env, e ecs.Entity) {
	cfg := env.Config
	rs := runState(w)
	pos, _ := entity.Position(w, e)
	variant := variantOf(w, e)
	wave := 1
	if rs != nil {
		wave = rs.Wave
	}

	score := 0
	switch variant {
	case component.VariantEnemyNormal, component.VariantEnemyChaser, component.VariantEnemyTitan:
		markDead(w, e)
		score = cfg.Score.Enemy
		fromBoss := false
		if en, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
			fromBoss = en.FromBoss
		}
		if !fromBoss {
			dropGem(w, env, pos, wave, entity.PickupOptions{})
		}
		rollHealthPack(w, env, pos)
	case component.VariantGuardian:
		markDead(w, e)
		score = cfg.Score.Guardian
		for range cfg.Score.GuardianGems {
			dropGem(w, env, env.scatter(pos, cfg.Score.GuardianScatter), wave, entity.PickupOptions{})
		}
	case component.VariantBoss:
		score = cfg.Score.Boss
		for range cfg.Score.BossGems {
			dropGem(w, env, env.scatter(pos, cfg.Score.BossScatter), wave, entity.PickupOptions{})
		}
		defeatBoss(w, env, e)
	default:
		markDead(w, e)
	}

	w.Emit(EventEnemyKilled, EnemyKilledEvent{Variant: variant, Score: score})
	if rs == nil {
		return
	}
	rs.Score += score
	rs.Kills++
	// Only wave enemies move the wave counter.
	if per := cfg.Spawn.KillsPerWave; per > 0 && variant.IsEnemy() && rs.Kills%per == 0 {
		advanceWave(w, env, rs)
	}
}

func dropGem(w *ecs.World, env *Env, pos cp.Vector, wave int, opts entity.PickupOptions) {
	if rs := runState(w); rs != nil && rs.Relics.GravityCapture && opts.MagnetScale == 0 && opts.MagnetRange == 0 {
		opts.MagnetScale = 2
	}
	if _, err := entity.NewGem(w, env.Config, pos, env.Config.Experience.ValueAt(wave), opts); err != nil {
		fmt.Printf("combat: drop gem: %v\n", err)
	}
}

func healFraction(w *ecs.World, env *Env) float64 {
	if rs := runState(w); rs != nil && rs.Relics.AdvancedRepair {
		return env.Config.HealthPack.RepairHealFraction
	}
	return env.Config.HealthPack.HealFraction
}

func dropHealthPack(w *ecs.World, env *Env, pos cp.Vector, opts entity.PickupOptions) {
	if rs := runState(w); rs != nil && rs.Relics.GravityCapture && opts.MagnetScale == 0 && opts.MagnetRange == 0 {
		opts.MagnetScale = 2
	}
	if _, err := entity.NewHealthPack(w, env.Config, pos, healFraction(w, env), opts); err != nil {
		fmt.Printf("combat: drop health pack: %v\n", err)
	}
}

func rollHealthPack(w *ecs.World, env *Env, pos cp.Vector) {
	chance := env.Config.HealthPack.DropChance
	if rs := runState(w); rs != nil && rs.Relics.AdvancedRepair {
		chance += env.Config.HealthPack.RepairDropBonus
	}
	if env.Rand.Float64() < chance {
		dropHealthPack(w, env, pos, entity.PickupOptions{})
	}
}
