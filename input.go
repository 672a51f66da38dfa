package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/sim"
)

const stickDeadzone = 0.2

// Input reads keyboard, mouse and the first gamepad. It implements
// sim.InputProvider.
type Input struct {
	view *Renderer
	// autoFire keeps the gun firing without a held button.
	autoFire bool
}

func NewInput(view *Renderer) *Input {
	return &Input{view: view, autoFire: true}
}

func (in *Input) Poll() sim.InputState {
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		in.autoFire = !in.autoFire
	}

	var move cp.Vector
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		move.Y -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		move.Y += 1
	}

	cx, cy := ebiten.CursorPosition()
	state := sim.InputState{
		Move:     move,
		AimPoint: in.view.ScreenToWorld(cp.Vector{X: float64(cx), Y: float64(cy)}),
		Fire:     in.autoFire || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) || ebiten.IsKeyPressed(ebiten.KeySpace),
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			state.Move = cp.Vector{X: lx, Y: ly}
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
		if math.Hypot(rx, ry) > stickDeadzone {
			state.AimStick = cp.Vector{X: rx, Y: ry}
			state.AimStickActive = true
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight) {
			state.Fire = true
		}
	}
	return state
}
