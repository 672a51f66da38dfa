package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// ArenaSystem forms and dissipates the boss arena, keeps the player inside
// it while formed, and resolves the victory portal choice.
type ArenaSystem struct {
	env *Env
}

func NewArenaSystem(env *Env) *ArenaSystem {
	return &ArenaSystem{env: env}
}

func (s *ArenaSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	ac := s.env.Config.Arena
	pe, pt, hasPlayer := playerEntity(w)

	ecs.ForEach(w, component.ArenaComponent.Kind(), func(e ecs.Entity, a *component.Arena) {
		if isDead(w, e) {
			return
		}
		if a.Dissipating {
			a.Formation -= ac.DissipationRate * dt
			if a.Formation <= 0 {
				a.Formation = 0
				markDead(w, e)
			}
			return
		}
		a.Formation += ac.FormationRate * dt
		if a.Formation > 1 {
			a.Formation = 1
		}
		if hasPlayer {
			ConfinePoint(a.Bounds, radiusOf(w, pe), pt)
		}
	})

	if hasPlayer {
		s.resolvePortals(w, pe, pt.Pos)
	}
}

// ConfinePoint clamps t into bb shrunk by margin.
func ConfinePoint(bb cp.BB, margin float64, t *component.Transform) {
	inner := cp.BB{L: bb.L + margin, B: bb.B + margin, R: bb.R - margin, T: bb.T - margin}
	if inner.L > inner.R || inner.B > inner.T {
		inner = bb
	}
	t.Pos = inner.ClampVect(&t.Pos)
}

func (s *ArenaSystem) resolvePortals(w *ecs.World, player ecs.Entity, pos cp.Vector) {
	rs := runState(w)
	if rs == nil || !rs.BossDefeated || rs.GameOver {
		return
	}
	chosen := component.PortalKind(0)
	found := false
	ecs.ForEach2(w, component.PortalComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Portal, t *component.Transform) {
		if found || isDead(w, e) {
			return
		}
		if overlaps(pos, t.Pos, radiusOf(w, player), radiusOf(w, e)) {
			chosen, found = p.Kind, true
		}
	})
	if !found {
		return
	}
	s.choose(w, rs, chosen)
}

func (s *ArenaSystem) choose(w *ecs.World, rs *component.RunState, kind component.PortalKind) {
	w.Emit(EventPortalChosen, PortalChosenEvent{Kind: kind})
	ecs.ForEach(w, component.PortalComponent.Kind(), func(e ecs.Entity, _ *component.Portal) {
		markDead(w, e)
	})
	ecs.ForEach(w, component.BossComponent.Kind(), func(e ecs.Entity, _ *component.Boss) {
		markDead(w, e)
	})
	rs.BossDefeated = false

	if kind == component.PortalMenu {
		EndRun(w, true)
		return
	}
	if next := rs.Stage + 1; next <= s.env.Config.Shop.MaxStage {
		w.Emit(EventStageUnlocked, StageUnlockedEvent{Stage: next})
	}
	ecs.ForEach(w, component.ArenaComponent.Kind(), func(_ ecs.Entity, a *component.Arena) {
		a.Dissipating = true
	})
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, c *component.Camera) {
		c.Fixed = false
	})
}
