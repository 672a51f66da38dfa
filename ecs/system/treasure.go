package system

import (
	"math"

	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

// TreasureSystem unlocks a chest once all of its guardians are gone and
// opens it when the player touches it. Touching a locked chest raises a
// notice once per contact.
type TreasureSystem struct {
	env *Env
}

func NewTreasureSystem(env *Env) *TreasureSystem {
	return &TreasureSystem{env: env}
}

func (s *TreasureSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	pe, pt, hasPlayer := playerEntity(w)

	ecs.ForEach2(w, component.TreasureComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, tr *component.Treasure, t *component.Transform) {
		if isDead(w, e) || tr.Opened {
			return
		}
		if tr.Locked {
			alive := tr.Guards[:0]
			for _, g := range tr.Guards {
				if !isDead(w, ecs.Entity(g)) {
					alive = append(alive, g)
				}
			}
			tr.Guards = alive
			if len(tr.Guards) == 0 {
				tr.Locked = false
			}
		}
		if !hasPlayer {
			return
		}
		touching := overlaps(t.Pos, pt.Pos, radiusOf(w, e), radiusOf(w, pe))
		if !touching {
			tr.Touching = false
			return
		}
		if tr.Locked {
			if !tr.Touching {
				w.Emit(EventTreasureLocked, len(tr.Guards))
			}
			tr.Touching = true
			return
		}
		s.open(w, e, tr, t)
	})
}

// open drops either a gem burst or health packs, awards coins scaled by
// wave and removes the chest.
func (s *TreasureSystem) open(w *ecs.World, e ecs.Entity, tr *component.Treasure, t *component.Transform) {
	cfg := s.env.Config
	tc := cfg.Treasure
	tr.Opened = true
	markDead(w, e)

	wave := 1
	rs := runState(w)
	if rs != nil {
		wave = rs.Wave
	}
	opts := entity.PickupOptions{Delay: tc.PickupDelay, MagnetRange: tc.MagnetRange, Snap: tc.SnapDistance}
	gems := s.env.Rand.Float64() < tc.GemChance
	if gems {
		for range tc.GemCount {
			dropGem(w, s.env, s.env.scatter(t.Pos, tc.GemScatter), wave, opts)
		}
	} else {
		for range tc.HealthPackCount {
			dropHealthPack(w, s.env, s.env.scatter(t.Pos, tc.GemScatter), opts)
		}
	}

	coins := TreasureCoins(s.env, wave)
	if rs != nil {
		rs.Coins += coins
	}
	w.Emit(EventTreasureOpened, TreasureOpenedEvent{Coins: coins, Gems: gems})
}

// TreasureCoins rolls the coin reward: an integer in
// [floor(ln(w+1)), floor(1.5*ln(w+1))].
func TreasureCoins(env *Env, wave int) int {
	l := math.Log(float64(wave) + 1)
	return env.randIntRange(int(math.Floor(l)), int(math.Floor(l*1.5)))
}
