package system

import (
	"math/rand/v2"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
	"github.com/milk9111/voidarena/prefabs"
)

// newTestRun builds a world with a player at the origin, a run on wave 1
// and a progression singleton.
func newTestRun(t *testing.T) (*ecs.World, *Env, ecs.Entity) {
	t.Helper()
	cfg := prefabs.MustDefaultConfig()
	env := NewEnv(cfg, rand.New(rand.NewPCG(1, 2)))
	w := ecs.NewWorld()

	player, err := entity.NewPlayer(w, cfg, entity.PlayerBonus{}, cp.Vector{})
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	if _, err := entity.NewRunState(w, component.RunState{Wave: 1, NextTreasureWave: 1000}); err != nil {
		t.Fatalf("new run state: %v", err)
	}
	if _, err := entity.NewProgression(w, cfg); err != nil {
		t.Fatalf("new progression: %v", err)
	}
	if _, err := entity.NewCamera(w, cfg, cp.Vector{}); err != nil {
		t.Fatalf("new camera: %v", err)
	}
	return w, env, player
}

func mustEnemy(t *testing.T, w *ecs.World, env *Env, variant component.Variant, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewEnemy(w, env.Config, variant, 1, pos, nil)
	if err != nil {
		t.Fatalf("new enemy: %v", err)
	}
	return e
}

func mustBullet(t *testing.T, w *ecs.World, spec entity.BulletSpec) ecs.Entity {
	t.Helper()
	e, err := entity.NewBullet(w, spec)
	if err != nil {
		t.Fatalf("new bullet: %v", err)
	}
	return e
}

// idleBoss spawns the boss and skips its entrance.
func idleBoss(t *testing.T, w *ecs.World, env *Env) (ecs.Entity, *component.BossRuntime) {
	t.Helper()
	if err := TriggerBoss(w, env); err != nil {
		t.Fatalf("trigger boss: %v", err)
	}
	boss, ok := ecs.First(w, component.BossComponent.Kind())
	if !ok {
		t.Fatal("expected a boss entity")
	}
	rt, _ := ecs.Get(w, boss, component.BossRuntimeComponent.Kind())
	rt.State = component.BossIdle
	rt.Timer = 100
	return boss, rt
}

func countVariant(w *ecs.World, variant component.Variant) int {
	n := 0
	ecs.ForEach(w, component.VariantComponent.Kind(), func(e ecs.Entity, v *component.Variant) {
		if *v == variant && !isDead(w, e) {
			n++
		}
	})
	return n
}

func drainTypes(w *ecs.World) map[string]int {
	out := map[string]int{}
	for _, evt := range w.Events().Drain() {
		out[evt.Type]++
	}
	return out
}
