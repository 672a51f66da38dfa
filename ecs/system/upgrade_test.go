package system

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

func TestRollUpgradesDistinct(t *testing.T) {
	_, env, _ := newTestRun(t)
	for i := range 200 {
		cards := RollUpgrades(env, component.Relics{})
		if len(cards) != env.Config.Upgrades.Choices {
			t.Fatalf("roll %d: expected %d cards, got %v", i, env.Config.Upgrades.Choices, cards)
		}
		seen := map[UpgradeID]bool{}
		for _, c := range cards {
			if seen[c] {
				t.Fatalf("roll %d: duplicate card in %v", i, cards)
			}
			seen[c] = true
			if c == UpgradeBulletSplit {
				t.Fatalf("roll %d: bullet split offered without its relic", i)
			}
		}
	}
}

func TestRollUpgradesOffersBulletSplitWithRelic(t *testing.T) {
	_, env, _ := newTestRun(t)
	found := false
	for range 500 {
		for _, c := range RollUpgrades(env, component.Relics{BulletSplit: true}) {
			if c == UpgradeBulletSplit {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("bullet split never offered with the relic active")
	}
}

func TestRollUpgradesFallsBackWhenTiersRunOut(t *testing.T) {
	_, env, _ := newTestRun(t)
	env.Config.Upgrades.EpicChance = 0
	env.Config.Upgrades.RareChance = 1
	env.Config.Upgrades.Choices = 6
	cards := RollUpgrades(env, component.Relics{})
	if len(cards) != 6 {
		t.Fatalf("expected 6 cards, got %v", cards)
	}
	for i, c := range cards {
		want := RarityRare
		if i >= 4 {
			want = RarityCommon
		}
		if RarityOf(c) != want {
			t.Fatalf("card %d: got %s (%s), want %s", i, c, RarityOf(c), want)
		}
	}
}

func TestApplyUpgrade(t *testing.T) {
	tests := []struct {
		id    UpgradeID
		check func(t *testing.T, w *ecs.World, p *component.Player, h *component.Health, b *component.Body)
	}{
		{UpgradeArmor, func(t *testing.T, _ *ecs.World, _ *component.Player, h *component.Health, _ *component.Body) {
			if h.Max != 120 || h.Current != 120 {
				t.Fatalf("armor: health %v/%v", h.Current, h.Max)
			}
		}},
		{UpgradeDamage, func(t *testing.T, _ *ecs.World, p *component.Player, _ *component.Health, _ *component.Body) {
			if p.Damage != 24 {
				t.Fatalf("damage: %v", p.Damage)
			}
		}},
		{UpgradeSpeed, func(t *testing.T, _ *ecs.World, p *component.Player, _ *component.Health, _ *component.Body) {
			if math.Abs(p.BaseMaxSpeed-288*1.2) > 1e-9 {
				t.Fatalf("speed: %v", p.BaseMaxSpeed)
			}
		}},
		{UpgradeMultishot, func(t *testing.T, _ *ecs.World, p *component.Player, _ *component.Health, _ *component.Body) {
			if p.BulletCount != 2 {
				t.Fatalf("multishot: %d", p.BulletCount)
			}
		}},
		{UpgradeBulletSplit, func(t *testing.T, _ *ecs.World, p *component.Player, _ *component.Health, _ *component.Body) {
			if p.SplitLevel != 1 {
				t.Fatalf("split: %d", p.SplitLevel)
			}
		}},
		{UpgradeHeavy, func(t *testing.T, _ *ecs.World, p *component.Player, h *component.Health, b *component.Body) {
			if h.Max != 150 || h.Current != 150 || math.Abs(b.Radius-24) > 1e-9 || math.Abs(p.BaseMaxSpeed-288*0.8) > 1e-9 {
				t.Fatalf("heavy: health %v/%v radius %v speed %v", h.Current, h.Max, b.Radius, p.BaseMaxSpeed)
			}
		}},
		{UpgradeAgile, func(t *testing.T, _ *ecs.World, p *component.Player, h *component.Health, b *component.Body) {
			if h.Max != 50 || h.Current != 50 || math.Abs(b.Radius-16) > 1e-9 {
				t.Fatalf("agile: health %v/%v radius %v", h.Current, h.Max, b.Radius)
			}
		}},
		{UpgradeShield, func(t *testing.T, w *ecs.World, _ *component.Player, _ *component.Health, _ *component.Body) {
			if countVariant(w, component.VariantShield) != 1 {
				t.Fatal("shield: expected one shield")
			}
		}},
		{UpgradeEnergyField, func(t *testing.T, w *ecs.World, _ *component.Player, _ *component.Health, _ *component.Body) {
			_, f, ok := ecs.Single(w, component.EnergyFieldComponent.Kind())
			if !ok || f.Radius != 52 || f.DamagePerSecond != 10 {
				t.Fatalf("energy field: %+v", f)
			}
		}},
		{UpgradeGuidedWeapon, func(t *testing.T, w *ecs.World, _ *component.Player, _ *component.Health, _ *component.Body) {
			_, g, ok := ecs.Single(w, component.GuidedWeaponComponent.Kind())
			if !ok || g.Level != 0 || g.MissileCount != 1 {
				t.Fatalf("guided weapon: %+v", g)
			}
		}},
	}
	for _, tc := range tests {
		t.Run(string(tc.id), func(t *testing.T) {
			w, env, player := newTestRun(t)
			if err := ApplyUpgrade(w, env, player, tc.id); err != nil {
				t.Fatalf("apply %s: %v", tc.id, err)
			}
			p, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
			h, _ := ecs.Get(w, player, component.HealthComponent.Kind())
			b, _ := ecs.Get(w, player, component.BodyComponent.Kind())
			tc.check(t, w, p, h, b)
			if p.Picks[string(tc.id)] != 1 {
				t.Fatalf("expected pick count 1, got %d", p.Picks[string(tc.id)])
			}
		})
	}
}

func TestApplyUpgradeStacks(t *testing.T) {
	t.Run("energy_field_caps_radius", func(t *testing.T) {
		w, env, player := newTestRun(t)
		for range 4 {
			if err := ApplyUpgrade(w, env, player, UpgradeEnergyField); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		f, _ := ecs.Get(w, player, component.EnergyFieldComponent.Kind())
		if f.Level != 3 || f.DamagePerSecond != 25 || f.Radius != env.Config.EnergyField.MaxRadius {
			t.Fatalf("unexpected field %+v", f)
		}
	})

	t.Run("guided_weapon_levels", func(t *testing.T) {
		w, env, player := newTestRun(t)
		for range 4 {
			if err := ApplyUpgrade(w, env, player, UpgradeGuidedWeapon); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		g, _ := ecs.Get(w, player, component.GuidedWeaponComponent.Kind())
		if g.Level != 3 || g.MissileCount != 2 {
			t.Fatalf("unexpected weapon %+v", g)
		}
	})

	t.Run("shields_spread_evenly", func(t *testing.T) {
		w, env, player := newTestRun(t)
		for range 3 {
			if err := ApplyUpgrade(w, env, player, UpgradeShield); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		var angles []float64
		ecs.ForEach(w, component.ShieldComponent.Kind(), func(e ecs.Entity, _ *component.Shield) {
			o, _ := ecs.Get(w, e, component.OrbiterComponent.Kind())
			angles = append(angles, math.Mod(o.Angle+2*math.Pi, 2*math.Pi))
		})
		if len(angles) != 3 {
			t.Fatalf("expected 3 shields, got %d", len(angles))
		}
		slices.Sort(angles)
		for i := range angles {
			next := angles[(i+1)%len(angles)]
			if i == len(angles)-1 {
				next += 2 * math.Pi
			}
			if gap := next - angles[i]; math.Abs(gap-2*math.Pi/3) > 1e-9 {
				t.Fatalf("uneven shield gap %v in %v", gap, angles)
			}
		}
	})

	t.Run("drones", func(t *testing.T) {
		w, env, player := newTestRun(t)
		for range 2 {
			if err := ApplyUpgrade(w, env, player, UpgradeDrone); err != nil {
				t.Fatalf("apply: %v", err)
			}
		}
		if got := countVariant(w, component.VariantDrone); got != 2 {
			t.Fatalf("expected 2 drones, got %d", got)
		}
	})
}

func TestApplyUnknownUpgrade(t *testing.T) {
	w, env, player := newTestRun(t)
	if err := ApplyUpgrade(w, env, player, "teleport"); !errors.Is(err, ErrUnknownUpgrade) {
		t.Fatalf("expected ErrUnknownUpgrade, got %v", err)
	}
}
