package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/voidarena/ecs/component"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/sim"
)

const (
	// One terminal cell covers this much of the world.
	cellWidth  = 12.0
	cellHeight = 24.0

	// hudRows are reserved at the top of the screen.
	hudRows = 2

	// Terminals only report presses, so a press keeps a key down this long.
	holdDuration = 150 * time.Millisecond

	frameInterval = 16 * time.Millisecond
	laserCells    = 200
)

var glyphs = map[component.Variant]rune{
	component.VariantPlayer:        '@',
	component.VariantEnemyNormal:   'o',
	component.VariantEnemyChaser:   'x',
	component.VariantEnemyTitan:    'O',
	component.VariantGuardian:      'G',
	component.VariantBoss:          'B',
	component.VariantExperienceGem: '*',
	component.VariantHealthPack:    '+',
	component.VariantTreasureChest: '$',
	component.VariantPlayerBullet:  '.',
	component.VariantEnemyBullet:   '•',
	component.VariantMissile:       '^',
	component.VariantBossLaser:     '=',
	component.VariantBossShockwave: '~',
	component.VariantShield:        'o',
	component.VariantDrone:         'd',
	component.VariantPortal:        '%',
	component.VariantExplosion:     '#',
}

func glyphFor(v component.Variant) rune {
	if g, ok := glyphs[v]; ok {
		return g
	}
	return '?'
}

// keyInput turns terminal key presses into held controls. It implements
// sim.InputProvider.
type keyInput struct {
	now     func() time.Time
	pressed map[rune]time.Time

	fire bool
	// aim is the last arrow direction, kept after the arrows are released.
	aim    cp.Vector
	player cp.Vector
}

// Arrow keys are tracked in the same table as letters.
const (
	arrowUp    = '↑'
	arrowDown  = '↓'
	arrowLeft  = '←'
	arrowRight = '→'
)

func newKeyInput(now func() time.Time) *keyInput {
	return &keyInput{now: now, pressed: make(map[rune]time.Time), fire: true, aim: cp.Vector{X: 1}}
}

func (k *keyInput) press(r rune) {
	k.pressed[r] = k.now()
}

func (k *keyInput) held(r rune) bool {
	at, ok := k.pressed[r]
	return ok && k.now().Sub(at) < holdDuration
}

func (k *keyInput) axis(neg, pos rune) float64 {
	var v float64
	if k.held(neg) {
		v--
	}
	if k.held(pos) {
		v++
	}
	return v
}

func (k *keyInput) Poll() sim.InputState {
	state := sim.InputState{
		Move: cp.Vector{X: k.axis('a', 'd'), Y: k.axis('w', 's')},
		Fire: k.fire,
	}
	stick := cp.Vector{X: k.axis(arrowLeft, arrowRight), Y: k.axis(arrowUp, arrowDown)}
	if stick.X != 0 || stick.Y != 0 {
		k.aim = stick.Normalize()
		state.AimStick = k.aim
		state.AimStickActive = true
	}
	state.AimPoint = k.player.Add(k.aim.Mult(100))
	return state
}

// terminal draws snapshots into a tcell screen and reacts to run events.
type terminal struct {
	screen tcell.Screen
	cfg    *prefabs.Config
	keys   *keyInput

	snap      sim.Snapshot
	notice    string
	noticeEnd time.Time
	ended     *system.RunEndedEvent
	summary   string
	quit      bool
}

func newTerminal(screen tcell.Screen, cfg *prefabs.Config) *terminal {
	return &terminal{screen: screen, cfg: cfg, keys: newKeyInput(time.Now)}
}

// Notify implements sim.UIStateController.
func (t *terminal) Notify(evt sim.Event) {
	switch evt.Type {
	case system.EventWaveAdvanced:
		if data, ok := evt.Data.(system.WaveAdvancedEvent); ok {
			t.say(fmt.Sprintf("Wave %d", data.Wave))
		}
	case system.EventBossSpawned:
		if data, ok := evt.Data.(system.BossSpawnedEvent); ok {
			t.say(strings.ToUpper(data.Name) + " APPROACHES")
		}
	case system.EventBossDefeated:
		t.say("Boss defeated. Walk into a portal.")
	case system.EventTreasureSpawn:
		t.say("A treasure chest appeared")
	case system.EventTreasureLocked:
		if n, ok := evt.Data.(int); ok {
			t.say(fmt.Sprintf("Defeat the %d guardians first", n))
		}
	case system.EventStageUnlocked:
		if data, ok := evt.Data.(system.StageUnlockedEvent); ok {
			t.say(fmt.Sprintf("Stage %d unlocked", data.Stage))
		}
	case sim.EventCoinsAwarded:
		if data, ok := evt.Data.(sim.CoinsAwardedEvent); ok {
			t.say(fmt.Sprintf("+%d coins (%d total)", data.Amount, data.Total))
		}
	case system.EventRunEnded:
		if data, ok := evt.Data.(system.RunEndedEvent); ok {
			t.ended = &data
			result := "defeated"
			if data.Victory {
				result = "victory"
			}
			t.summary = fmt.Sprintf("voidarena stage %d: %s, score %d, kills %d, wave %d",
				t.snap.HUD.Stage, result, data.Score, data.Kills, data.Wave)
		}
	}
}

func (t *terminal) say(s string) {
	t.notice = s
	t.noticeEnd = time.Now().Add(2 * time.Second)
}

// run drives the simulation until the player quits.
func (t *terminal) run(s *sim.Simulation) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for !t.quit {
		select {
		case ev := <-eventChan:
			t.handleEvent(s, ev)
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			s.Frame(dt, t.keys, t)
		}
	}
}

func (t *terminal) handleEvent(s *sim.Simulation, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			t.quit = true
		case tcell.KeyUp:
			t.keys.press(arrowUp)
		case tcell.KeyDown:
			t.keys.press(arrowDown)
		case tcell.KeyLeft:
			t.keys.press(arrowLeft)
		case tcell.KeyRight:
			t.keys.press(arrowRight)
		case tcell.KeyRune:
			t.handleRune(s, ev.Rune())
		}
	}
}

func (t *terminal) handleRune(s *sim.Simulation, r rune) {
	switch r {
	case 'q':
		t.quit = true
	case 'w', 'a', 's', 'd':
		t.keys.press(r)
	case ' ':
		t.keys.fire = !t.keys.fire
	case 'p':
		s.SetPaused(!s.Paused())
	case 'r':
		if t.ended == nil {
			return
		}
		stage := s.RunState().Stage
		t.ended = nil
		t.summary = ""
		if err := s.StartRun(stage); err != nil {
			log.Printf("retry stage %d: %v", stage, err)
			t.quit = true
		}
	default:
		pending := s.PendingUpgrades()
		if i := int(r - '1'); i >= 0 && i < len(pending) {
			if err := s.ChooseUpgrade(pending[i]); err != nil {
				log.Printf("choose upgrade %s: %v", pending[i], err)
			}
		}
	}
}

// cellOf maps a world point to a screen cell for a w by h terminal.
func cellOf(p, camera cp.Vector, w, h int) (int, int) {
	col := int(math.Floor((p.X-camera.X)/cellWidth)) + w/2
	row := int(math.Floor((p.Y-camera.Y)/cellHeight)) + hudRows + (h-hudRows)/2
	return col, row
}

func (t *terminal) styleFor(name string, fallback color.NRGBA) tcell.Style {
	c := t.cfg.Color(name, fallback)
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// Render implements sim.Renderer.
func (t *terminal) Render(snap sim.Snapshot) {
	t.snap = snap
	t.screen.Clear()
	w, h := t.screen.Size()

	put := func(p cp.Vector, r rune, st tcell.Style) {
		col, row := cellOf(p, snap.Camera, w, h)
		if col >= 0 && col < w && row >= hudRows && row < h {
			t.screen.SetContent(col, row, r, nil, st)
		}
	}

	star := t.styleFor("star", color.NRGBA{R: 0x88, G: 0x99, B: 0xbb, A: 0xff}).Dim(true)
	for _, s := range snap.Stars {
		put(s, '.', star)
	}

	if a := snap.Arena; a != nil && a.Formation > 0 {
		st := t.styleFor("arena", color.NRGBA{R: 0x7c, G: 0x4d, B: 0xff, A: 0xff})
		for x := a.Bounds.L; x <= a.Bounds.R; x += cellWidth {
			put(cp.Vector{X: x, Y: a.Bounds.B}, '#', st)
			put(cp.Vector{X: x, Y: a.Bounds.T}, '#', st)
		}
		for y := a.Bounds.B; y <= a.Bounds.T; y += cellHeight {
			put(cp.Vector{X: a.Bounds.L, Y: y}, '#', st)
			put(cp.Vector{X: a.Bounds.R, Y: y}, '#', st)
		}
	}

	for _, v := range snap.Entities {
		st := t.styleFor(v.Variant.String(), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		if v.Flash > 0 {
			st = st.Reverse(true)
		}
		g := glyphFor(v.Variant)
		switch v.Variant {
		case component.VariantBossLaser:
			for i := range laserCells {
				put(v.Pos.Add(v.Dir.Mult(float64(i)*cellWidth)), g, st)
			}
		case component.VariantBossShockwave:
			steps := max(8, int(2*math.Pi*v.Ring/cellWidth))
			for i := range steps {
				put(v.Pos.Add(cp.ForAngle(2*math.Pi*float64(i)/float64(steps)).Mult(v.Ring)), g, st)
			}
		case component.VariantBoss, component.VariantEnemyTitan, component.VariantGuardian:
			for dy := -v.Radius; dy <= v.Radius; dy += cellHeight {
				for dx := -v.Radius; dx <= v.Radius; dx += cellWidth {
					if dx*dx+dy*dy <= v.Radius*v.Radius {
						put(v.Pos.Add(cp.Vector{X: dx, Y: dy}), g, st)
					}
				}
			}
		case component.VariantTreasureChest:
			if v.Locked {
				st = st.Dim(true)
			}
			put(v.Pos, g, st)
		default:
			put(v.Pos, g, st)
		}
		if v.Variant == component.VariantPlayer {
			t.keys.player = v.Pos
		}
	}

	t.drawHUD(snap, w, h)
	t.screen.Show()
}

func (t *terminal) text(col, row int, s string, st tcell.Style) {
	for i, r := range []rune(s) {
		t.screen.SetContent(col+i, row, r, nil, st)
	}
}

func (t *terminal) drawHUD(snap sim.Snapshot, w, h int) {
	hud := snap.HUD
	st := tcell.StyleDefault.Bold(true)
	line := fmt.Sprintf("HP %.0f/%.0f  LV %d (%.0f/%.0f)  SCORE %d  KILLS %d  WAVE %d  STAGE %d  %02d:%02d",
		hud.Health, hud.MaxHealth, hud.Level, hud.Experience, hud.Required,
		hud.Score, hud.Kills, hud.Wave, hud.Stage, int(hud.Elapsed)/60, int(hud.Elapsed)%60)
	if !t.keys.fire {
		line += "  [hold fire]"
	}
	t.text(0, 0, line, st)

	if hud.BossActive && hud.BossMaxHealth > 0 {
		t.text(0, 1, fmt.Sprintf("%s %.0f/%.0f", hud.BossName, hud.BossHealth, hud.BossMaxHealth), st.Foreground(tcell.ColorRed))
	} else if t.notice != "" && time.Now().Before(t.noticeEnd) {
		t.text(0, 1, t.notice, st.Foreground(tcell.ColorYellow))
	}

	mid := hudRows + (h-hudRows)/2
	switch {
	case t.ended != nil:
		t.centered(w, mid-1, strings.ToUpper(t.summary), st)
		t.centered(w, mid+1, "r retry   q quit", st)
	case len(snap.PendingUpgrades) > 0:
		t.centered(w, mid-len(snap.PendingUpgrades), "LEVEL UP", st)
		for i, id := range snap.PendingUpgrades {
			label := fmt.Sprintf("%d) %s [%s]", i+1, id, system.RarityOf(id))
			t.centered(w, mid-len(snap.PendingUpgrades)+2+i, label, st)
		}
	case snap.Paused:
		t.centered(w, mid, "PAUSED (p to resume)", st)
	}
}

func (t *terminal) centered(w, row int, s string, st tcell.Style) {
	t.text(max(0, (w-len([]rune(s)))/2), row, s, st)
}
