package entity

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
)

// PickupOptions adjusts a dropped pickup. The zero value is a plain drop.
type PickupOptions struct {
	// MagnetScale multiplies the configured magnet range when > 0.
	MagnetScale float64
	// Delay is the pickup immunity in seconds.
	Delay float64
	// MagnetRange overrides the magnet range when > 0.
	MagnetRange float64
	// Snap is the distance from the player the pickup jumps to when its
	// immunity ends.
	Snap float64
}

func (o PickupOptions) magnet(base float64) float64 {
	r := base
	if o.MagnetRange > 0 {
		r = o.MagnetRange
	}
	if o.MagnetScale > 0 {
		r *= o.MagnetScale
	}
	return r
}

// NewGem drops an experience gem worth value.
func NewGem(w *ecs.World, cfg *prefabs.Config, pos cp.Vector, value float64, opts PickupOptions) (ecs.Entity, error) {
	xc := cfg.Experience
	b := newBuilder(w, "gem", component.VariantExperienceGem, pos, xc.GemSize)
	add(b, component.PickupComponent.Kind(), &component.Pickup{
		Kind:        component.PickupExperience,
		Value:       value,
		MagnetRange: opts.magnet(xc.MagnetRange),
		Speed:       xc.Speed,
		Snap:        opts.Snap,
	})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	if opts.Delay > 0 {
		add(b, component.CooldownComponent.Kind(), &component.Cooldown{Remaining: opts.Delay})
	}
	return b.done()
}

// NewHealthPack drops a pack healing healFraction of max health.
func NewHealthPack(w *ecs.World, cfg *prefabs.Config, pos cp.Vector, healFraction float64, opts PickupOptions) (ecs.Entity, error) {
	hc := cfg.HealthPack
	b := newBuilder(w, "health pack", component.VariantHealthPack, pos, hc.Size)
	add(b, component.PickupComponent.Kind(), &component.Pickup{
		Kind:        component.PickupHealth,
		Value:       healFraction,
		MagnetRange: opts.magnet(hc.MagnetRange),
		Speed:       hc.Speed,
		Snap:        opts.Snap,
	})
	add(b, component.VelocityComponent.Kind(), &component.Velocity{})
	if opts.Delay > 0 {
		add(b, component.CooldownComponent.Kind(), &component.Cooldown{Remaining: opts.Delay})
	}
	return b.done()
}
