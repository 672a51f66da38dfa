package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs/entity"
)

func TestChunkStarsDeterministic(t *testing.T) {
	a := ChunkStars(3, -2, 1000, 40)
	b := ChunkStars(3, -2, 1000, 40)
	if len(a) != 40 {
		t.Fatalf("expected 40 stars, got %d", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("star %d differs: %v vs %v", i, a[i], b[i])
		}
		if a[i].X < 3000 || a[i].X >= 4000 || a[i].Y < -2000 || a[i].Y >= -1000 {
			t.Fatalf("star %v outside its chunk", a[i])
		}
	}
	if c := ChunkStars(4, -2, 1000, 40); c[0] == a[0] {
		t.Fatal("neighbouring chunks should differ")
	}
}

func TestChunksFollowPlayer(t *testing.T) {
	w, env, player := newTestRun(t)
	sys := NewChunkSystem(env)
	cc := env.Config.Chunks
	side := 2*cc.ViewDistance + 1

	sys.Update(w, 1.0/60)
	if got := ChunkCount(w); got != side*side {
		t.Fatalf("expected %d chunks, got %d", side*side, got)
	}

	if err := entity.SetPosition(w, player, cp.Vector{X: cc.Size * 20}); err != nil {
		t.Fatalf("move player: %v", err)
	}
	sys.Update(w, 1.0/60)
	if got := ChunkCount(w); got != side*side {
		t.Fatalf("far chunks should be pruned, got %d", got)
	}
}
