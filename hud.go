package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/sim"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

var (
	white    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	barTrack = color.NRGBA{R: 0x22, G: 0x22, B: 0x2a, A: 0xcc}
)

// drawText draws s with its top-left (or top-centre) at x, y.
func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color, centered bool) {
	op := &ebtext.DrawOptions{}
	if centered {
		w, _ := ebtext.Measure(s, hudFace, 0)
		x -= w / 2
	}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	ebtext.Draw(dst, s, hudFace, op)
}

func drawBar(dst *ebiten.Image, x, y, w, h, frac float64, fill color.Color) {
	frac = max(0, min(1, frac))
	vector.FillRect(dst, float32(x), float32(y), float32(w), float32(h), barTrack, false)
	vector.FillRect(dst, float32(x), float32(y), float32(w*frac), float32(h), fill, false)
}

func drawHUD(screen *ebiten.Image, snap sim.Snapshot) {
	hud := snap.HUD
	drawText(screen, fmt.Sprintf("SCORE %d   KILLS %d   WAVE %d   STAGE %d", hud.Score, hud.Kills, hud.Wave, hud.Stage), 12, 10, white, false)

	minutes := int(hud.Elapsed) / 60
	seconds := int(hud.Elapsed) % 60
	drawText(screen, fmt.Sprintf("%02d:%02d", minutes, seconds), 12, 28, white, false)

	drawText(screen, fmt.Sprintf("HP %.0f/%.0f", hud.Health, hud.MaxHealth), 12, 48, white, false)
	if hud.MaxHealth > 0 {
		drawBar(screen, 100, 49, 200, 10, hud.Health/hud.MaxHealth, color.NRGBA{R: 0xef, G: 0x53, B: 0x50, A: 0xff})
	}
	drawText(screen, fmt.Sprintf("LV %d", hud.Level), 12, 66, white, false)
	if hud.Required > 0 {
		drawBar(screen, 100, 67, 200, 10, hud.Experience/hud.Required, color.NRGBA{R: 0x00, G: 0xe6, B: 0x76, A: 0xff})
	}

	if hud.BossActive && hud.BossMaxHealth > 0 {
		bounds := screen.Bounds()
		w := float64(bounds.Dx()) * 0.6
		x := (float64(bounds.Dx()) - w) / 2
		drawText(screen, hud.BossName, float64(bounds.Dx())/2, 10, white, true)
		drawBar(screen, x, 28, w, 12, hud.BossHealth/hud.BossMaxHealth, color.NRGBA{R: 0xd5, A: 0xff})
	}
}

func drawNotices(screen *ebiten.Image, cfg *prefabs.Config, notices []notice) {
	y := cfg.Canvas.Height * 0.22
	for _, n := range notices {
		c := n.color
		if n.left < 0.5 {
			c.A = uint8(float64(c.A) * n.left / 0.5)
		}
		drawText(screen, n.text, cfg.Canvas.Width/2, y, c, true)
		y += 20
	}
}
