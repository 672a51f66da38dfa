package sim

import (
	"slices"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/system"
)

// Snapshot is a read-only copy of everything a renderer needs for one
// frame. It shares no memory with the world.
type Snapshot struct {
	Tick    uint64
	Running bool
	Paused  bool

	// Camera is the world point at the centre of the screen.
	Camera cp.Vector
	Shake  float64

	Entities []EntityView
	Stars    []cp.Vector
	Arena    *ArenaView
	HUD      HUD

	PendingUpgrades []system.UpgradeID
}

// EntityView is the drawable state of one entity.
type EntityView struct {
	ID      uint64
	Variant component.Variant
	Pos     cp.Vector
	Angle   float64
	Radius  float64

	Health    float64
	MaxHealth float64
	Flash     float64

	// Alpha fades lasers and explosions; 1 otherwise.
	Alpha float64
	// Dir and Width describe a laser ray.
	Dir   cp.Vector
	Width float64
	// Ring is the radius of a shockwave or explosion.
	Ring      float64
	Thickness float64
	Stage     int

	BossState component.BossState
	Charge    float64
	Portal    component.PortalKind
	Locked    bool

	// Field is the energy field radius around the player, 0 without one.
	Field  float64
	Slowed bool
}

type ArenaView struct {
	Bounds      cp.BB
	Formation   float64
	Dissipating bool
}

// HUD carries the scoreboard and bars.
type HUD struct {
	RunID   string
	Stage   int
	Score   int
	Kills   int
	Wave    int
	Coins   int
	Elapsed float64

	Level      int
	Experience float64
	Required   float64

	Health    float64
	MaxHealth float64

	BossName      string
	BossHealth    float64
	BossMaxHealth float64
	BossActive    bool

	GameOver bool
	Victory  bool
}

// Snapshot copies the renderable state. Entities are sorted by id.
func (s *Simulation) Snapshot() Snapshot {
	snap := Snapshot{
		Tick:            s.ticks,
		Running:         s.running,
		Paused:          s.paused,
		PendingUpgrades: slices.Clone(s.pending),
	}
	w := s.world
	if w == nil {
		return snap
	}

	if _, c, ok := ecs.Single(w, component.CameraComponent.Kind()); ok {
		snap.Camera = c.Pos
	}
	if _, a, ok := ecs.Single(w, component.ArenaComponent.Kind()); ok {
		snap.Arena = &ArenaView{Bounds: a.Bounds, Formation: a.Formation, Dissipating: a.Dissipating}
	}

	ecs.ForEach(w, component.ChunkComponent.Kind(), func(_ ecs.Entity, c *component.Chunk) {
		snap.Stars = append(snap.Stars, c.Stars...)
	})

	ids := w.Query(component.VariantComponent.Kind(), component.TransformComponent.Kind())
	slices.Sort(ids)
	for _, e := range ids {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			continue
		}
		v, _ := ecs.Get(w, e, component.VariantComponent.Kind())
		if *v == component.VariantNone || bossGone(w, e, *v) {
			continue
		}
		snap.Entities = append(snap.Entities, s.view(w, e, *v, &snap))
	}

	s.fillHUD(w, &snap.HUD)
	return snap
}

// bossGone reports a defeated boss that stays in the world until a portal
// is chosen.
func bossGone(w *ecs.World, e ecs.Entity, v component.Variant) bool {
	if v != component.VariantBoss {
		return false
	}
	rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind())
	return ok && (rt.State == component.BossDefeated || rt.State == component.BossVictoryChoice)
}

func (s *Simulation) view(w *ecs.World, e ecs.Entity, v component.Variant, snap *Snapshot) EntityView {
	t, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	view := EntityView{
		ID:      uint64(e),
		Variant: v,
		Pos:     t.Pos,
		Angle:   t.Angle,
		Alpha:   1,
	}
	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		view.Radius = b.Radius
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
		view.Health, view.MaxHealth = h.Current, h.Max
	}
	if f, ok := ecs.Get(w, e, component.WhiteFlashComponent.Kind()); ok {
		view.Flash = f.Intensity()
	}

	if ecs.Has(w, e, component.SlowComponent.Kind()) {
		view.Slowed = true
	}

	switch v {
	case component.VariantPlayer:
		if f, ok := ecs.Get(w, e, component.EnergyFieldComponent.Kind()); ok {
			view.Field = f.Radius
		}
	case component.VariantBossLaser:
		if l, ok := ecs.Get(w, e, component.LaserComponent.Kind()); ok {
			view.Pos = l.Origin
			view.Dir = l.Dir
			view.Width = l.Width
			view.Alpha = l.Alpha()
		}
	case component.VariantBossShockwave:
		if sw, ok := ecs.Get(w, e, component.ShockwaveComponent.Kind()); ok {
			view.Pos = sw.Center
			view.Ring = sw.Radius
			view.Thickness = sw.Thickness
		}
	case component.VariantExplosion:
		if x, ok := ecs.Get(w, e, component.ExplosionComponent.Kind()); ok {
			view.Ring = x.Radius
			view.Stage = x.Stage()
			if x.Duration > 0 {
				view.Alpha = max(0, 1-x.Elapsed/x.Duration)
			}
		}
	case component.VariantBoss:
		if rt, ok := ecs.Get(w, e, component.BossRuntimeComponent.Kind()); ok {
			view.BossState = rt.State
			view.Charge = rt.Charge
			snap.Shake = max(snap.Shake, rt.Shake)
		}
	case component.VariantPortal:
		if p, ok := ecs.Get(w, e, component.PortalComponent.Kind()); ok {
			view.Portal = p.Kind
		}
	case component.VariantTreasureChest:
		if tr, ok := ecs.Get(w, e, component.TreasureComponent.Kind()); ok {
			view.Locked = tr.Locked
		}
	}
	return view
}

func (s *Simulation) fillHUD(w *ecs.World, hud *HUD) {
	if rs := s.runState(); rs != nil {
		hud.RunID = rs.ID
		hud.Stage = rs.Stage
		hud.Score = rs.Score
		hud.Kills = rs.Kills
		hud.Wave = rs.Wave
		hud.Coins = rs.Coins
		hud.Elapsed = rs.Elapsed
		hud.GameOver = rs.GameOver
		hud.Victory = rs.Victory
	}
	if _, p, ok := ecs.Single(w, component.ProgressionComponent.Kind()); ok {
		hud.Level = p.Level
		hud.Experience = p.Experience
		hud.Required = p.Required
	}
	if h, ok := ecs.Get(w, s.player, component.HealthComponent.Kind()); ok {
		hud.Health, hud.MaxHealth = h.Current, h.Max
	}
	ecs.ForEach2(w, component.BossComponent.Kind(), component.BossRuntimeComponent.Kind(), func(e ecs.Entity, b *component.Boss, rt *component.BossRuntime) {
		hud.BossName = b.DisplayName
		hud.BossActive = rt.State != component.BossDefeated && rt.State != component.BossVictoryChoice
		if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok {
			hud.BossHealth, hud.BossMaxHealth = h.Current, h.Max
		}
	})
}
