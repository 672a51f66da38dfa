package system

import (
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// Env is the configuration and randomness shared by every system of a run.
// Config may be swapped between ticks; systems read it on every update.
type Env struct {
	Config *prefabs.Config
	Rand   *rand.Rand
}

func NewEnv(cfg *prefabs.Config, rng *rand.Rand) *Env {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Env{Config: cfg, Rand: rng}
}

// randRange returns a uniform float in [lo, hi).
func (env *Env) randRange(lo, hi float64) float64 {
	return lo + env.Rand.Float64()*(hi-lo)
}

// randIntRange returns a uniform int in [lo, hi].
func (env *Env) randIntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + env.Rand.IntN(hi-lo+1)
}

// scatter offsets pos by up to spread/2 on each axis.
func (env *Env) scatter(pos cp.Vector, spread float64) cp.Vector {
	if spread <= 0 {
		return pos
	}
	return cp.Vector{
		X: pos.X + (env.Rand.Float64()-0.5)*spread,
		Y: pos.Y + (env.Rand.Float64()-0.5)*spread,
	}
}

func playerEntity(w *ecs.World) (ecs.Entity, *component.Transform, bool) {
	e, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok || isDead(w, e) {
		return 0, nil, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, t, true
}

func runState(w *ecs.World) *component.RunState {
	_, rs, ok := ecs.Single(w, component.RunStateComponent.Kind())
	if !ok {
		return nil
	}
	return rs
}

func progression(w *ecs.World) *component.Progression {
	_, p, ok := ecs.Single(w, component.ProgressionComponent.Kind())
	if !ok {
		return nil
	}
	return p
}

func activeArena(w *ecs.World) (ecs.Entity, *component.Arena, bool) {
	return ecs.Single(w, component.ArenaComponent.Kind())
}

func isDead(w *ecs.World, e ecs.Entity) bool {
	return !ecs.IsAlive(w, e) || ecs.Has(w, e, component.DeadComponent.Kind())
}

func markDead(w *ecs.World, e ecs.Entity) {
	if !ecs.IsAlive(w, e) {
		return
	}
	_ = ecs.Add(w, e, component.DeadComponent.Kind(), &component.Dead{})
}

func radiusOf(w *ecs.World, e ecs.Entity) float64 {
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return 0
	}
	return b.Radius
}

func variantOf(w *ecs.World, e ecs.Entity) component.Variant {
	v, ok := ecs.Get(w, e, component.VariantComponent.Kind())
	if !ok {
		return component.VariantNone
	}
	return *v
}

// overlaps is the circle test used by every contact check. Sizes are radii.
func overlaps(a, b cp.Vector, ra, rb float64) bool {
	return a.DistanceSq(b) < (ra+rb)*(ra+rb)
}

// direction returns the unit vector from a to b, or false if they coincide.
func direction(from, to cp.Vector) (cp.Vector, bool) {
	d := to.Sub(from)
	l := d.Length()
	if l <= 0 {
		return cp.Vector{}, false
	}
	return d.Mult(1 / l), true
}

// hostiles returns every living enemy, guardian and boss.
func hostiles(w *ecs.World) []ecs.Entity {
	var out []ecs.Entity
	for _, e := range w.Query(component.VariantComponent.Kind(), component.HealthComponent.Kind()) {
		if isDead(w, e) {
			continue
		}
		if variantOf(w, e).IsHostile() {
			out = append(out, e)
		}
	}
	return out
}
