package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

func TestPickupCollectExperience(t *testing.T) {
	w, env, _ := newTestRun(t)
	if _, err := entity.NewGem(w, env.Config, cp.Vector{X: 5}, 60, entity.PickupOptions{}); err != nil {
		t.Fatalf("new gem: %v", err)
	}

	NewPickupSystem(env).Update(w, 1.0/60)

	prog := progression(w)
	if prog.Level != 2 || prog.Experience != 10 {
		t.Fatalf("expected level 2 with 10 overflow, got %+v", prog)
	}
	if got := drainTypes(w)[EventLevelUp]; got != 1 {
		t.Fatalf("expected one level_up event, got %d", got)
	}
}

func TestPickupLevelsOncePerGem(t *testing.T) {
	w, env, _ := newTestRun(t)
	if _, err := entity.NewGem(w, env.Config, cp.Vector{}, 1000, entity.PickupOptions{}); err != nil {
		t.Fatalf("new gem: %v", err)
	}
	NewPickupSystem(env).Update(w, 1.0/60)
	if prog := progression(w); prog.Level != 2 {
		t.Fatalf("expected a single level up, got level %d", prog.Level)
	}
}

func TestPickupHeal(t *testing.T) {
	w, env, player := newTestRun(t)
	h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
	h.Current = 10
	if _, err := entity.NewHealthPack(w, env.Config, cp.Vector{}, 0.3, entity.PickupOptions{}); err != nil {
		t.Fatalf("new pack: %v", err)
	}
	NewPickupSystem(env).Update(w, 1.0/60)
	if h.Current != 40 {
		t.Fatalf("expected 40 health, got %v", h.Current)
	}
}

func TestPickupMagnetAndDelay(t *testing.T) {
	w, env, _ := newTestRun(t)
	gem, err := entity.NewGem(w, env.Config, cp.Vector{X: 250}, 1, entity.PickupOptions{Delay: 0.5, MagnetRange: 300, Snap: 100})
	if err != nil {
		t.Fatalf("new gem: %v", err)
	}
	pickups := NewPickupSystem(env)
	cooldowns := NewCooldownSystem()

	pickups.Update(w, 0.1)
	if pos, _ := entity.Position(w, gem); pos.X != 250 {
		t.Fatalf("delayed gem should not move, at %v", pos)
	}

	cooldowns.Update(w, 0.6)
	pickups.Update(w, 0.1)
	pos, _ := entity.Position(w, gem)
	want := 100 - env.Config.Experience.Speed*0.1
	if pos.X != want {
		t.Fatalf("expected snap then magnet to %v, at %v", want, pos)
	}
}

func TestTreasureLockedUntilGuardsDie(t *testing.T) {
	w, env, _ := newTestRun(t)
	chest, err := entity.NewTreasure(w, env.Config, cp.Vector{X: 10})
	if err != nil {
		t.Fatalf("new treasure: %v", err)
	}
	g, err := entity.NewGuardian(w, env.Config, 1, chest, cp.Vector{X: 10}, cp.Vector{X: 2000}, nil)
	if err != nil {
		t.Fatalf("new guardian: %v", err)
	}
	tr, _ := ecs.Get(w, chest, component.TreasureComponent.Kind())
	tr.Guards = append(tr.Guards, uint64(g))
	sys := NewTreasureSystem(env)

	sys.Update(w, 1.0/60)
	sys.Update(w, 1.0/60)
	if tr.Opened || !tr.Locked {
		t.Fatal("guarded chest must stay locked")
	}
	if got := drainTypes(w)[EventTreasureLocked]; got != 1 {
		t.Fatalf("expected one locked notice per contact, got %d", got)
	}

	DamageHostile(w, env, g, 1e6)
	sys.Update(w, 1.0/60)
	if !tr.Opened || !isDead(w, chest) {
		t.Fatal("chest should open once its guards are gone")
	}
	events := w.Events().Drain()
	opened := false
	for _, evt := range events {
		if evt.Type != EventTreasureOpened {
			continue
		}
		opened = true
		payload := evt.Data.(TreasureOpenedEvent)
		if got := runState(w).Coins; got != payload.Coins {
			t.Fatalf("coins %d, event %d", got, payload.Coins)
		}
	}
	if !opened {
		t.Fatal("expected treasure_opened")
	}
}

func TestTreasureCoinsRange(t *testing.T) {
	_, env, _ := newTestRun(t)
	tests := []struct {
		wave   int
		lo, hi int
	}{
		{1, 0, 1},
		{10, 2, 3},
		{50, 3, 5},
	}
	for _, tc := range tests {
		for range 100 {
			if got := TreasureCoins(env, tc.wave); got < tc.lo || got > tc.hi {
				t.Fatalf("wave %d: coins %d outside [%d, %d]", tc.wave, got, tc.lo, tc.hi)
			}
		}
	}
}
