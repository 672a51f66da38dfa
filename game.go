package main

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/voidarena/audio"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/save"
	"github.com/milk9111/voidarena/sim"
)

const noticeDuration = 2.5

type Options struct {
	ConfigName string
	DataDir    string
	Stage      int
	Seed       uint64
	Watch      bool
	Debug      bool
	Mute       bool
}

type mode uint8

const (
	modeMenu mode = iota
	modePlaying
	modeGameOver
)

type notice struct {
	text  string
	color color.NRGBA
	left  float64
}

type Game struct {
	opts Options
	cfg  *prefabs.Config

	sim      *sim.Simulation
	store    *save.AsyncStore
	cues     *audio.Cues
	watcher  *prefabs.Watcher
	renderer *Renderer
	input    *Input

	mode    mode
	overlay *ebitenui.UI
	notices []notice
	debug   bool
	quit    bool
}

func NewGame(opts Options) (*Game, error) {
	cfg, err := prefabs.LoadConfig(opts.ConfigName)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	g := &Game{opts: opts, cfg: cfg, debug: opts.Debug}
	g.store = save.NewAsyncStore(save.NewFileStore(opts.DataDir), nil)
	g.cues = audio.NewCues(0.8)
	if !opts.Mute {
		if err := g.cues.Init(); err != nil {
			log.Printf("audio: %v; running without sound", err)
		}
	}

	var rng *rand.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}
	g.sim = sim.New(cfg, sim.WithRand(rng), sim.WithProfile(g.store), sim.WithUI(g))
	g.renderer = NewRenderer(cfg)
	g.input = NewInput(g.renderer)

	if opts.Watch {
		w, err := prefabs.NewWatcher("prefabs", filepath.Join("prefabs", "scripts"))
		if err != nil {
			log.Printf("watch prefabs: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.openMenu()
	if opts.Stage > 0 {
		if err := g.startRun(opts.Stage); err != nil {
			log.Printf("start stage %d: %v", opts.Stage, err)
		}
	}
	return g, nil
}

func (g *Game) startRun(stage int) error {
	if err := g.sim.StartRun(stage); err != nil {
		return err
	}
	g.mode = modePlaying
	g.overlay = nil
	g.notices = nil
	return nil
}

func (g *Game) openMenu() {
	g.sim.Abandon()
	g.mode = modeMenu
	g.overlay = NewMenuUI(g)
}

// Notify implements sim.UIStateController.
func (g *Game) Notify(evt sim.Event) {
	g.cues.Notify(evt)

	switch evt.Type {
	case sim.EventUpgradeChoice:
		if data, ok := evt.Data.(sim.UpgradeChoiceEvent); ok {
			g.overlay = NewLevelUpUI(g, data)
		}
	case sim.EventPaused:
		g.overlay = NewPauseUI(g)
	case sim.EventResumed:
		g.overlay = nil
	case system.EventRunEnded:
		if data, ok := evt.Data.(system.RunEndedEvent); ok {
			g.mode = modeGameOver
			g.overlay = NewGameOverUI(g, data)
		}
	case system.EventWaveAdvanced:
		if data, ok := evt.Data.(system.WaveAdvancedEvent); ok {
			g.pushNotice(fmt.Sprintf("Wave %d", data.Wave), color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
		}
	case system.EventBossSpawned:
		if data, ok := evt.Data.(system.BossSpawnedEvent); ok {
			g.pushNotice(strings.ToUpper(data.Name)+" APPROACHES", color.NRGBA{R: 0xff, G: 0x17, B: 0x44, A: 0xff})
		}
	case system.EventBossDefeated:
		g.pushNotice("Boss defeated. Choose a portal.", color.NRGBA{R: 0xb3, G: 0x88, B: 0xff, A: 0xff})
	case system.EventTreasureSpawn:
		g.pushNotice("A treasure chest appeared", color.NRGBA{R: 0xff, G: 0xd7, A: 0xff})
	case system.EventTreasureLocked:
		if n, ok := evt.Data.(int); ok {
			g.pushNotice(fmt.Sprintf("Defeat the %d guardians first", n), color.NRGBA{R: 0xff, G: 0xa7, B: 0x26, A: 0xff})
		}
	case system.EventStageUnlocked:
		if data, ok := evt.Data.(system.StageUnlockedEvent); ok {
			g.pushNotice(fmt.Sprintf("Stage %d unlocked", data.Stage), color.NRGBA{R: 0xff, G: 0xd7, A: 0xff})
		}
	case sim.EventCoinsAwarded:
		if data, ok := evt.Data.(sim.CoinsAwardedEvent); ok {
			g.pushNotice(fmt.Sprintf("+%d coins", data.Amount), color.NRGBA{R: 0xff, G: 0xd7, A: 0xff})
		}
	}
}

func (g *Game) pushNotice(text string, c color.NRGBA) {
	g.notices = append(g.notices, notice{text: text, color: c, left: noticeDuration})
	if len(g.notices) > 4 {
		g.notices = g.notices[len(g.notices)-4:]
	}
}

func (g *Game) tickNotices(dt float64) {
	kept := g.notices[:0]
	for _, n := range g.notices {
		n.left -= dt
		if n.left > 0 {
			kept = append(kept, n)
		}
	}
	g.notices = kept
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("watch prefabs: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	switch prefabs.KindOf(path) {
	case prefabs.ReloadNone:
		return
	case prefabs.ReloadScript:
		if err := g.sim.ReloadPatternScript(); err != nil {
			log.Printf("reload %s: %v", path, err)
			return
		}
		log.Printf("reloaded %s", path)
		return
	}
	cfg, err := prefabs.LoadConfig(g.opts.ConfigName)
	if err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	if err := g.sim.ReloadConfig(cfg); err != nil {
		log.Printf("reload %s: %v", path, err)
		return
	}
	g.cfg = cfg
	g.renderer.SetConfig(cfg)
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.pollWatcher()
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.debug = !g.debug
	}
	dt := 1 / float64(ebiten.TPS())
	g.tickNotices(dt)

	if g.mode == modePlaying {
		if pausePressed() {
			g.sim.SetPaused(!g.sim.Paused())
		}
		g.sim.Frame(dt, g.input, g.renderer)
	}
	if g.overlay != nil {
		g.overlay.Update()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.mode == modeMenu {
		screen.Fill(g.cfg.Color("background", color.NRGBA{A: 0xff}))
	} else {
		g.renderer.Draw(screen)
		drawHUD(screen, g.renderer.Snapshot())
		drawNotices(screen, g.cfg, g.notices)
	}
	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
	if g.debug {
		snap := g.renderer.Snapshot()
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.2f  TPS: %.2f  tick: %d  entities: %d", ebiten.ActualFPS(), ebiten.ActualTPS(), snap.Tick, len(snap.Entities)))
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return g.cfg.Canvas.Width, g.cfg.Canvas.Height
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

// Close flushes pending saves and releases audio and the watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
	g.cues.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := g.store.Close(ctx); err != nil {
		log.Printf("save: flush on exit: %v", err)
	}
}

func pausePressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		return true
	}
	for _, id := range ebiten.AppendGamepadIDs(nil) {
		if inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight) {
			return true
		}
	}
	return false
}
