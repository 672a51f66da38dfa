package system

import (
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
)

// CleanupSystem destroys every entity marked Dead during the tick. It runs
// last so no system sees a handle vanish mid-pass.
type CleanupSystem struct{}

func NewCleanupSystem() *CleanupSystem {
	return &CleanupSystem{}
}

func (s *CleanupSystem) Update(w *ecs.World, _ float64) {
	if w == nil {
		return
	}
	for _, e := range w.Query(component.DeadComponent.Kind()) {
		ecs.DestroyEntity(w, e)
	}
}
