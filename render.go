package main

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/sim"
)

// laserReach is how far a laser ray is drawn past its origin.
const laserReach = 4000

// Renderer keeps the latest snapshot and draws it with vector shapes. It
// implements sim.Renderer.
type Renderer struct {
	cfg  *prefabs.Config
	snap sim.Snapshot
}

func NewRenderer(cfg *prefabs.Config) *Renderer {
	return &Renderer{cfg: cfg}
}

func (r *Renderer) Render(s sim.Snapshot) {
	r.snap = s
}

func (r *Renderer) Snapshot() sim.Snapshot {
	return r.snap
}

func (r *Renderer) SetConfig(cfg *prefabs.Config) {
	r.cfg = cfg
}

func (r *Renderer) center() cp.Vector {
	return cp.Vector{X: r.cfg.Canvas.Width / 2, Y: r.cfg.Canvas.Height / 2}
}

// WorldToScreen maps a world point through the camera.
func (r *Renderer) WorldToScreen(p cp.Vector) cp.Vector {
	return p.Sub(r.snap.Camera).Add(r.center())
}

func (r *Renderer) ScreenToWorld(p cp.Vector) cp.Vector {
	return p.Sub(r.center()).Add(r.snap.Camera)
}

func (r *Renderer) color(name string, fallback color.NRGBA) color.NRGBA {
	return r.cfg.Color(name, fallback)
}

func (r *Renderer) onScreen(p cp.Vector, margin float64) bool {
	return p.X >= -margin && p.Y >= -margin && p.X <= r.cfg.Canvas.Width+margin && p.Y <= r.cfg.Canvas.Height+margin
}

func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(r.color("background", color.NRGBA{A: 0xff}))

	shake := cp.Vector{}
	if r.snap.Shake > 0 {
		phase := float64(r.snap.Tick) * 1.7
		shake = cp.Vector{X: math.Sin(phase) * r.snap.Shake, Y: math.Cos(phase*1.3) * r.snap.Shake}
	}
	toScreen := func(p cp.Vector) cp.Vector {
		return r.WorldToScreen(p).Add(shake)
	}

	star := r.color("star", color.NRGBA{R: 0x88, G: 0x99, B: 0xbb, A: 0xff})
	for _, s := range r.snap.Stars {
		p := toScreen(s)
		if r.onScreen(p, 0) {
			vector.FillRect(screen, float32(p.X), float32(p.Y), 1.5, 1.5, star, false)
		}
	}

	if a := r.snap.Arena; a != nil && a.Formation > 0 {
		c := r.color("arena", color.NRGBA{R: 0x7c, G: 0x4d, B: 0xff, A: 0xff})
		c.A = uint8(float64(c.A) * a.Formation)
		corner := toScreen(cp.Vector{X: a.Bounds.L, Y: a.Bounds.B})
		vector.StrokeRect(screen, float32(corner.X), float32(corner.Y), float32(a.Bounds.R-a.Bounds.L), float32(a.Bounds.T-a.Bounds.B), 4, c, true)
	}

	for _, v := range r.snap.Entities {
		r.drawEntity(screen, v, toScreen(v.Pos))
	}
}

func (r *Renderer) drawEntity(screen *ebiten.Image, v sim.EntityView, p cp.Vector) {
	if v.Variant != component.VariantBossLaser && !r.onScreen(p, v.Radius+v.Ring+v.Field+20) {
		return
	}
	c := flashed(r.color(v.Variant.String(), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}), v.Flash)
	x, y, rad := float32(p.X), float32(p.Y), float32(v.Radius)

	switch v.Variant {
	case component.VariantPlayer:
		if v.Field > 0 {
			vector.FillCircle(screen, x, y, float32(v.Field), r.color("field", color.NRGBA{R: 0x4f, G: 0xc3, B: 0xf7, A: 0x66}), true)
		}
		if v.Slowed {
			c = mix(c, color.NRGBA{R: 0x60, G: 0x60, B: 0xff, A: 0xff}, 0.5)
		}
		vector.FillCircle(screen, x, y, rad, c, true)
		nose := p.Add(cp.ForAngle(v.Angle).Mult(v.Radius * 1.6))
		vector.StrokeLine(screen, x, y, float32(nose.X), float32(nose.Y), 3, c, true)
	case component.VariantEnemyTitan, component.VariantGuardian:
		vector.FillCircle(screen, x, y, rad, c, true)
		vector.StrokeCircle(screen, x, y, rad+3, 2, c, true)
		r.drawHealthBar(screen, v, p)
	case component.VariantEnemyNormal, component.VariantEnemyChaser:
		vector.FillCircle(screen, x, y, rad, c, true)
		r.drawHealthBar(screen, v, p)
	case component.VariantBoss:
		vector.FillCircle(screen, x, y, rad, c, true)
		if v.Charge > 0 {
			vector.StrokeCircle(screen, x, y, rad*float32(1+v.Charge), 3, r.color("boss_shockwave", c), true)
		}
	case component.VariantMissile:
		tail := p.Sub(cp.ForAngle(v.Angle).Mult(v.Radius * 3))
		vector.StrokeLine(screen, x, y, float32(tail.X), float32(tail.Y), rad, c, true)
	case component.VariantBossLaser:
		c.A = uint8(float64(c.A) * v.Alpha)
		end := p.Add(v.Dir.Mult(laserReach))
		vector.StrokeLine(screen, x, y, float32(end.X), float32(end.Y), float32(v.Width), c, true)
	case component.VariantBossShockwave:
		vector.StrokeCircle(screen, x, y, float32(v.Ring), float32(v.Thickness), c, true)
	case component.VariantExplosion:
		c.A = uint8(float64(c.A) * v.Alpha)
		vector.FillCircle(screen, x, y, float32(v.Ring)*float32(v.Stage+1)/3, c, true)
	case component.VariantTreasureChest:
		if v.Locked {
			c = mix(c, color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}, 0.5)
		}
		vector.FillRect(screen, x-rad, y-rad*0.7, rad*2, rad*1.4, c, false)
	case component.VariantPortal:
		vector.StrokeCircle(screen, x, y, rad, 4, c, true)
		label := "CONTINUE"
		if v.Portal == component.PortalMenu {
			label = "MENU"
		}
		drawText(screen, label, p.X, p.Y+v.Radius+8, c, true)
	case component.VariantShield:
		vector.StrokeCircle(screen, x, y, rad, 3, c, true)
	default:
		vector.FillCircle(screen, x, y, rad, c, true)
	}
}

func (r *Renderer) drawHealthBar(screen *ebiten.Image, v sim.EntityView, p cp.Vector) {
	if v.MaxHealth <= 0 || v.Health >= v.MaxHealth {
		return
	}
	w := float32(v.Radius * 2)
	x := float32(p.X) - w/2
	y := float32(p.Y - v.Radius - 8)
	vector.FillRect(screen, x, y, w, 3, color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}, false)
	vector.FillRect(screen, x, y, w*float32(v.Health/v.MaxHealth), 3, color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff}, false)
}

// flashed blends c toward white by k.
func flashed(c color.NRGBA, k float64) color.NRGBA {
	if k <= 0 {
		return c
	}
	return mix(c, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: c.A}, k)
}

func mix(a, b color.NRGBA, k float64) color.NRGBA {
	k = math.Max(0, math.Min(1, k))
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*k)
	}
	return color.NRGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}
