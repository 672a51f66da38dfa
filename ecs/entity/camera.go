package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

func NewCamera(w *ecs.World, cfg *prefabs.Config, pos cp.Vector) (ecs.Entity, error) {
	b := newBuilder(w, "camera", component.VariantNone, pos, 0)
	add(b, component.CameraComponent.Kind(), &component.Camera{
		Pos:       pos,
		Smoothing: cfg.Camera.Smoothing,
	})
	return b.done()
}

// NewRunState creates the per-run scoreboard singleton.
func NewRunState(w *ecs.World, state component.RunState) (ecs.Entity, error) {
	b := newBuilder(w, "run", component.VariantNone, cp.Vector{}, 0)
	add(b, component.RunStateComponent.Kind(), &state)
	return b.done()
}

// NewProgression creates the experience/level singleton.
func NewProgression(w *ecs.World, cfg *prefabs.Config) (ecs.Entity, error) {
	p := component.NewProgression(cfg.Experience.Base, cfg.Experience.Multiplier)
	b := newBuilder(w, "progression", component.VariantNone, cp.Vector{}, 0)
	add(b, component.ProgressionComponent.Kind(), &p)
	return b.done()
}

// NewArena builds the boss arena centred on center. It starts unformed.
func NewArena(w *ecs.World, cfg *prefabs.Config, center cp.Vector) (ecs.Entity, error) {
	ac := cfg.Arena
	b := newBuilder(w, "arena", component.VariantNone, center, 0)
	add(b, component.ArenaComponent.Kind(), &component.Arena{
		Bounds: cp.NewBBForExtents(center, ac.Width/2, ac.Height/2),
	})
	return b.done()
}

func NewPortal(w *ecs.World, cfg *prefabs.Config, kind component.PortalKind, pos cp.Vector) (ecs.Entity, error) {
	b := newBuilder(w, "portal", component.VariantPortal, pos, cfg.Portal.Size)
	add(b, component.PortalComponent.Kind(), &component.Portal{Kind: kind})
	return b.done()
}

// NewChunk creates a background chunk at grid cell (x, y).
func NewChunk(w *ecs.World, x, y int, size float64, stars []cp.Vector) (ecs.Entity, error) {
	origin := cp.Vector{X: float64(x) * size, Y: float64(y) * size}
	b := newBuilder(w, "chunk", component.VariantNone, origin, 0)
	add(b, component.ChunkComponent.Kind(), &component.Chunk{X: x, Y: y, Stars: stars})
	return b.done()
}
