package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/entity"
)

func TestCameraFollowsPlayer(t *testing.T) {
	w, env, player := newTestRun(t)
	if err := entity.SetPosition(w, player, cp.Vector{X: 100}); err != nil {
		t.Fatalf("move player: %v", err)
	}
	sys := NewCameraSystem(env)
	sys.Update(w, 1.0/60)

	_, cam, _ := ecs.Single(w, component.CameraComponent.Kind())
	want := 100 * env.Config.Camera.Smoothing
	if d := cam.Pos.X - want; d > 1e-9 || d < -1e-9 {
		t.Fatalf("expected one smoothing step to %v, got %v", want, cam.Pos.X)
	}
}

func TestCameraHoldsArenaAnchor(t *testing.T) {
	w, env, player := newTestRun(t)
	idleBoss(t, w, env)
	if err := entity.SetPosition(w, player, cp.Vector{X: 300, Y: 200}); err != nil {
		t.Fatalf("move player: %v", err)
	}
	NewCameraSystem(env).Update(w, 1.0/60)

	_, cam, _ := ecs.Single(w, component.CameraComponent.Kind())
	if cam.Pos != (cp.Vector{}) {
		t.Fatalf("fixed camera should hold the arena centre, at %v", cam.Pos)
	}
}

func TestCameraFramesBossWhenFree(t *testing.T) {
	w, env, _ := newTestRun(t)
	idleBoss(t, w, env)
	_, cam, _ := ecs.Single(w, component.CameraComponent.Kind())
	cam.Fixed = false

	NewCameraSystem(env).Update(w, 1.0/60)

	if cam.OffsetY != -env.Config.Canvas.Height/4 {
		t.Fatalf("expected offset %v, got %v", -env.Config.Canvas.Height/4, cam.OffsetY)
	}
	if cam.Pos.Y >= 0 {
		t.Fatalf("camera should drift above the player, at %v", cam.Pos)
	}
}
