package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

func TestSpawnIntervalAndPause(t *testing.T) {
	w, env, _ := newTestRun(t)
	sys := NewSpawnSystem(env)

	sys.Update(w, 1.0/60)
	first := len(hostiles(w))
	if first == 0 {
		t.Fatal("expected a spawn on the first tick")
	}
	sys.Update(w, env.Config.Spawn.Interval/2)
	if got := len(hostiles(w)); got != first {
		t.Fatalf("no spawn before the interval elapses, got %d want %d", got, first)
	}

	runState(w).BossDefeated = true
	sys.Update(w, env.Config.Spawn.Interval*2)
	if got := len(hostiles(w)); got != first {
		t.Fatal("no spawns while the victory portals are open")
	}
}

func TestSpawnPointDistance(t *testing.T) {
	_, env, _ := newTestRun(t)
	sys := NewSpawnSystem(env)
	d := env.Config.Spawn.Distance
	for range 100 {
		p := sys.spawnPoint(cp.Vector{})
		if abs(int(p.X)) != int(d) && abs(int(p.Y)) != int(d) {
			t.Fatalf("spawn point %v is not on a side %v away", p, d)
		}
	}
}

func TestPickEnemyVariantGatesTitans(t *testing.T) {
	_, env, _ := newTestRun(t)
	for range 500 {
		if PickEnemyVariant(env, 1) == component.VariantEnemyTitan {
			t.Fatal("titans must not spawn before their wave")
		}
	}
	titans := 0
	for range 2000 {
		if PickEnemyVariant(env, env.Config.Spawn.TitanMinWave) == component.VariantEnemyTitan {
			titans++
		}
	}
	if titans == 0 {
		t.Fatal("titans should appear once unlocked")
	}
}

func TestChaserPackSize(t *testing.T) {
	w, env, _ := newTestRun(t)
	sys := NewSpawnSystem(env)
	sys.spawnPack(w, cp.Vector{X: 600}, 1)
	n := countVariant(w, component.VariantEnemyChaser)
	if n < env.Config.Spawn.PackMin || n > env.Config.Spawn.PackMax {
		t.Fatalf("pack of %d outside [%d, %d]", n, env.Config.Spawn.PackMin, env.Config.Spawn.PackMax)
	}
}

func TestTreasureEventOnWave(t *testing.T) {
	w, env, _ := newTestRun(t)
	rs := runState(w)
	rs.NextTreasureWave = 2
	advanceWave(w, env, rs)

	if !treasureExists(w) {
		t.Fatal("expected a treasure chest")
	}
	if got := countVariant(w, component.VariantGuardian); got != env.Config.Treasure.GuardCount {
		t.Fatalf("expected %d guardians, got %d", env.Config.Treasure.GuardCount, got)
	}
	tc := env.Config.Treasure
	if rs.NextTreasureWave < rs.Wave+tc.WaveOffsetMin || rs.NextTreasureWave > rs.Wave+tc.WaveOffsetMax {
		t.Fatalf("next treasure wave %d out of range", rs.NextTreasureWave)
	}

	_, tr, _ := ecs.Single(w, component.TreasureComponent.Kind())
	if len(tr.Guards) != tc.GuardCount {
		t.Fatalf("chest tracks %d guards", len(tr.Guards))
	}

	rs.NextTreasureWave = rs.Wave + 1
	advanceWave(w, env, rs)
	if got := countVariant(w, component.VariantTreasureChest); got != 1 {
		t.Fatalf("only one chest at a time, got %d", got)
	}
}

func TestTreasureReturnsAfterBoss(t *testing.T) {
	w, env, _ := defeatedArena(t)
	rs := runState(w)

	rs.NextTreasureWave = rs.Wave + 1
	advanceWave(w, env, rs)
	if treasureExists(w) {
		t.Fatal("no treasure while the victory portals are open")
	}

	NewArenaSystem(env).choose(w, rs, component.PortalContinue)
	NewCleanupSystem().Update(w, 1.0/60)
	w.Events().Drain()
	if !rs.BossSpawned {
		t.Fatal("boss must stay spawned so it never retriggers")
	}

	rs.NextTreasureWave = rs.Wave + 1
	advanceWave(w, env, rs)
	if !treasureExists(w) {
		t.Fatalf("treasure should spawn after the encounter, wave %d next %d", rs.Wave, rs.NextTreasureWave)
	}
	if countVariant(w, component.VariantBoss) != 0 {
		t.Fatal("boss should not respawn")
	}
}
