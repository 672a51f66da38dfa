package system

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

type chunkKey struct{ x, y int }

// ChunkSystem keeps background chunks generated around the player and
// prunes those that fall far behind. Star layout is seeded by the chunk
// coordinates, so a chunk looks the same every time it is regenerated.
type ChunkSystem struct {
	env    *Env
	chunks map[chunkKey]ecs.Entity
}

func NewChunkSystem(env *Env) *ChunkSystem {
	return &ChunkSystem{env: env, chunks: map[chunkKey]ecs.Entity{}}
}

func (s *ChunkSystem) Update(w *ecs.World, dt float64) {
	if w == nil || s.env == nil || s.env.Config == nil {
		return
	}
	_, pt, ok := playerEntity(w)
	if !ok {
		return
	}
	cc := s.env.Config.Chunks
	cx := int(math.Floor(pt.Pos.X / cc.Size))
	cy := int(math.Floor(pt.Pos.Y / cc.Size))

	for k, e := range s.chunks {
		if !ecs.IsAlive(w, e) {
			delete(s.chunks, k)
			continue
		}
		if abs(k.x-cx) > cc.PruneDistance || abs(k.y-cy) > cc.PruneDistance {
			ecs.DestroyEntity(w, e)
			delete(s.chunks, k)
		}
	}
	for x := cx - cc.ViewDistance; x <= cx+cc.ViewDistance; x++ {
		for y := cy - cc.ViewDistance; y <= cy+cc.ViewDistance; y++ {
			k := chunkKey{x, y}
			if _, ok := s.chunks[k]; ok {
				continue
			}
			e, err := entity.NewChunk(w, x, y, cc.Size, ChunkStars(x, y, cc.Size, cc.Stars))
			if err != nil {
				fmt.Printf("chunks: %d,%d: %v\n", x, y, err)
				continue
			}
			s.chunks[k] = e
		}
	}
}

// Reset forgets tracked chunks; used when the world is rebuilt.
func (s *ChunkSystem) Reset() {
	s.chunks = map[chunkKey]ecs.Entity{}
}

// ChunkStars returns n star positions in world space for chunk (x, y).
func ChunkStars(x, y int, size float64, n int) []cp.Vector {
	seed := uint64(int64(x))*0x9E3779B97F4A7C15 ^ uint64(int64(y))*0xC2B2AE3D27D4EB4F
	rng := rand.New(rand.NewPCG(seed, 0x5DEECE66D))
	origin := cp.Vector{X: float64(x) * size, Y: float64(y) * size}
	out := make([]cp.Vector, n)
	for i := range out {
		out[i] = origin.Add(cp.Vector{X: rng.Float64() * size, Y: rng.Float64() * size})
	}
	return out
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ChunkCount reports the number of live background chunks.
func ChunkCount(w *ecs.World) int {
	return ecs.CountOf(w, component.ChunkComponent.Kind())
}
