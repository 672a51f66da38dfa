package main

import (
	"image/color"
	"strings"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/sim"
)

func TestScreenWorldRoundTrip(t *testing.T) {
	r := NewRenderer(prefabs.MustDefaultConfig())
	r.Render(sim.Snapshot{Camera: cp.Vector{X: 500, Y: -200}})

	tests := []struct {
		name   string
		screen cp.Vector
		world  cp.Vector
	}{
		{name: "centre", screen: cp.Vector{X: 600, Y: 350}, world: cp.Vector{X: 500, Y: -200}},
		{name: "origin", screen: cp.Vector{}, world: cp.Vector{X: -100, Y: -550}},
		{name: "corner", screen: cp.Vector{X: 1200, Y: 700}, world: cp.Vector{X: 1100, Y: 150}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.ScreenToWorld(tc.screen); got != tc.world {
				t.Fatalf("ScreenToWorld(%v) = %v, want %v", tc.screen, got, tc.world)
			}
			if got := r.WorldToScreen(tc.world); got != tc.screen {
				t.Fatalf("WorldToScreen(%v) = %v, want %v", tc.world, got, tc.screen)
			}
		})
	}
}

func TestEveryUpgradeHasTitle(t *testing.T) {
	ids := []system.UpgradeID{
		system.UpgradeArmor, system.UpgradeDamage, system.UpgradeSpeed, system.UpgradeMultishot,
		system.UpgradeBulletSize, system.UpgradeEnergyField, system.UpgradeBulletSplit, system.UpgradeHeavy,
		system.UpgradeAgile, system.UpgradeShield, system.UpgradeGuidedWeapon, system.UpgradeDrone,
	}
	for _, id := range ids {
		if upgradeTitle(id) == string(id) {
			t.Fatalf("no title for %s", id)
		}
	}
}

func TestRunSummary(t *testing.T) {
	got := runSummary(3, system.RunEndedEvent{Victory: true, Wave: 20, Score: 1500, Kills: 190}, 20)
	for _, want := range []string{"stage 3", "Victory", "score 1500", "kills 190", "wave 20", "+20 coins"} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
	if strings.Contains(runSummary(1, system.RunEndedEvent{}, 0), "Victory") {
		t.Fatalf("defeat summary says victory")
	}
}

func TestFlashBlend(t *testing.T) {
	base := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	if got := flashed(base, 0); got != base {
		t.Fatalf("no flash changed color: %v", got)
	}
	if got := flashed(base, 1); got != (color.NRGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("full flash = %v", got)
	}
}
