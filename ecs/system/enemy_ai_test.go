package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

func TestUpdateAggroHysteresis(t *testing.T) {
	steps := []struct {
		dist float64
		want bool
	}{
		{400, false},
		{349, true},
		{351, true},
		{525, true},
		{526, false},
		{400, false},
		{100, true},
	}
	g := &component.Guardian{AggroRange: 350, AggroExit: 1.5}
	for i, s := range steps {
		UpdateAggro(g, s.dist)
		if g.Aggro != s.want {
			t.Fatalf("step %d dist %v: aggro = %v, want %v", i, s.dist, g.Aggro, s.want)
		}
	}
}

func TestGuardianShootsOnlyWhenAggro(t *testing.T) {
	w, env, _ := newTestRun(t)
	chest, err := entity.NewTreasure(w, env.Config, cp.Vector{X: 450})
	if err != nil {
		t.Fatalf("new treasure: %v", err)
	}
	g, err := entity.NewGuardian(w, env.Config, 1, chest, cp.Vector{X: 450}, cp.Vector{X: 450}, nil)
	if err != nil {
		t.Fatalf("new guardian: %v", err)
	}
	gc, _ := ecs.Get(w, g, component.GuardianComponent.Kind())
	gc.CooldownLeft = 0
	sys := NewGuardianAISystem(env)

	sys.Update(w, 1.0/60)
	if countVariant(w, component.VariantEnemyBullet) != 0 {
		t.Fatal("calm guardian should not shoot")
	}

	DamageHostile(w, env, g, 1)
	if !gc.Aggro {
		t.Fatal("taking damage should aggro the guardian")
	}
	sys.Update(w, 1.0/60)
	if countVariant(w, component.VariantEnemyBullet) != 1 {
		t.Fatal("aggroed guardian should fire")
	}
}

func TestEnemyKeepsDistance(t *testing.T) {
	w, env, _ := newTestRun(t)
	near := mustEnemy(t, w, env, component.VariantEnemyNormal, cp.Vector{X: 100})
	far := mustEnemy(t, w, env, component.VariantEnemyNormal, cp.Vector{X: 400})

	NewEnemyAISystem(env).Update(w, 0.1)

	np, _ := entity.Position(w, near)
	fp, _ := entity.Position(w, far)
	if np.X != 100 {
		t.Fatalf("enemy inside keep distance should hold, at %v", np)
	}
	if fp.X >= 400 {
		t.Fatalf("distant enemy should approach, at %v", fp)
	}
}

func TestTitanFiresRing(t *testing.T) {
	w, env, _ := newTestRun(t)
	titan := mustEnemy(t, w, env, component.VariantEnemyTitan, cp.Vector{X: 150})
	en, _ := ecs.Get(w, titan, component.EnemyComponent.Kind())
	en.CooldownLeft = 0

	NewEnemyAISystem(env).Update(w, 1.0/60)

	if got := countVariant(w, component.VariantEnemyBullet); got != env.Config.Enemies.Titan.Volley {
		t.Fatalf("expected %d bullets, got %d", env.Config.Enemies.Titan.Volley, got)
	}
}

func TestChaserBurstDecays(t *testing.T) {
	w, env, _ := newTestRun(t)
	c, err := entity.NewChaser(w, env.Config, 1, cp.Vector{X: 500}, cp.Vector{Y: 180}, true)
	if err != nil {
		t.Fatalf("new chaser: %v", err)
	}
	en, _ := ecs.Get(w, c, component.EnemyComponent.Kind())
	sys := NewEnemyAISystem(env)
	sys.Update(w, 1.0/60)
	if en.Burst.Y >= 180 || en.Burst.Y <= 0 {
		t.Fatalf("burst should decay, got %v", en.Burst)
	}
	for range 600 {
		sys.Update(w, 1.0/60)
	}
	if en.Burst != (cp.Vector{}) {
		t.Fatalf("burst should settle to zero, got %v", en.Burst)
	}
}
