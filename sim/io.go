package sim

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs/system"
)

// Events the simulation raises on top of the in-world ones in system.
const (
	EventUpgradeChoice = "upgrade_choice"
	EventPaused        = "paused"
	EventResumed       = "resumed"
	EventRunStarted    = "run_started"
	EventCoinsAwarded  = "coins_awarded"
)

// Event is delivered to the UI controller after every tick, in the order
// it was raised.
type Event struct {
	Type string
	Data any
}

type UpgradeChoiceEvent struct {
	Level   int
	Choices []system.UpgradeID
}

type RunStartedEvent struct {
	ID    string
	Stage int
}

type CoinsAwardedEvent struct {
	Amount int
	Total  int
}

// InputState is one frame of player intent. Axes are in [-1,1]; AimPoint is
// in world space.
type InputState struct {
	Move           cp.Vector
	AimPoint       cp.Vector
	AimStick       cp.Vector
	AimStickActive bool
	Fire           bool
}

// Renderer draws a snapshot. It must not retain it past the call.
type Renderer interface {
	Render(Snapshot)
}

// InputProvider returns the current input once per frame.
type InputProvider interface {
	Poll() InputState
}

// UIStateController receives discrete game events such as level ups and
// the end of a run.
type UIStateController interface {
	Notify(Event)
}

// UIFunc adapts a function to UIStateController.
type UIFunc func(Event)

func (f UIFunc) Notify(evt Event) {
	if f != nil {
		f(evt)
	}
}
