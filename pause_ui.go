package main

import (
	"fmt"
	"image/color"
	"log"
	"strings"
	"sync"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/save"
	"github.com/milk9111/voidarena/sim"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

var upgradeTitles = map[system.UpgradeID]string{
	system.UpgradeArmor:        "Armor Plating: +20% max health",
	system.UpgradeDamage:       "Overcharge: +20% damage",
	system.UpgradeSpeed:        "Thrusters: +20% speed",
	system.UpgradeMultishot:    "Multishot: +1 bullet",
	system.UpgradeBulletSize:   "Heavy Rounds: +10% bullet size",
	system.UpgradeEnergyField:  "Energy Field",
	system.UpgradeBulletSplit:  "Bullet Split",
	system.UpgradeHeavy:        "Juggernaut: +50% health, bigger hull, -20% speed",
	system.UpgradeAgile:        "Agile: +30% speed, smaller hull, -50% health",
	system.UpgradeShield:       "Orbiting Shield",
	system.UpgradeGuidedWeapon: "Guided Missiles",
	system.UpgradeDrone:        "Combat Drone",
}

var rarityColors = map[system.Rarity]color.NRGBA{
	system.RarityCommon: {R: 0x33, G: 0x33, B: 0x33, A: 0xff},
	system.RarityRare:   {R: 0x1e, G: 0x4a, B: 0x8c, A: 0xff},
	system.RarityEpic:   {R: 0x5e, G: 0x24, B: 0x8c, A: 0xff},
}

func upgradeTitle(id system.UpgradeID) string {
	if t, ok := upgradeTitles[id]; ok {
		return t
	}
	return string(id)
}

var clipboardOnce sync.Once
var clipboardErr error

func copyToClipboard(s string) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return clipboardErr
	}
	clipboard.Write(clipboard.FmtText, []byte(s))
	return nil
}

// uiKit holds the shared face and images so every overlay looks alike.
type uiKit struct {
	face      ebtext.Face
	panel     *imageui.NineSlice
	button    *imageui.NineSlice
	disabled  *imageui.NineSlice
	textColor *widget.ButtonTextColor
}

func newKit() *uiKit {
	return &uiKit{
		face:     ebtext.NewGoXFace(basicfont.Face7x13),
		panel:    imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200}),
		button:   imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}),
		disabled: imageui.NewNineSliceColor(color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 255}),
		textColor: &widget.ButtonTextColor{
			Idle:     color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
			Disabled: color.NRGBA{R: 0x77, G: 0x77, B: 0x77, A: 0xff},
		},
	}
}

func (k *uiKit) text(s string, c color.Color) *widget.Text {
	return widget.NewText(
		widget.TextOpts.Text(s, &k.face, c),
		widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
	)
}

func (k *uiKit) buttonWith(label string, idle *imageui.NineSlice, enabled bool, onClick func()) *widget.Button {
	btn := widget.NewButton(
		widget.ButtonOpts.Image(&widget.ButtonImage{Idle: idle, Pressed: idle, Disabled: k.disabled}),
		widget.ButtonOpts.Text(label, &k.face, k.textColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(48, 28),
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter, Stretch: true}),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
	btn.GetWidget().Disabled = !enabled
	return btn
}

func (k *uiKit) btn(label string, enabled bool, onClick func()) *widget.Button {
	return k.buttonWith(label, k.button, enabled, onClick)
}

// overlay centres a vertical panel on the screen.
func (k *uiKit) overlay(g *Game, children ...widget.PreferredSizeLocateableWidget) *ebitenui.UI {
	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(k.panel),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(int(g.cfg.Canvas.Width/2), int(g.cfg.Canvas.Height/3)),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	for _, c := range children {
		panel.AddChild(c)
	}

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)
	return &ebitenui.UI{Container: root}
}

// NewPauseUI shows Resume and Quit to menu.
func NewPauseUI(g *Game) *ebitenui.UI {
	k := newKit()
	return k.overlay(g,
		k.text("Paused", white),
		k.btn("Resume", true, func() {
			g.sim.SetPaused(false)
		}),
		k.btn("Quit to menu", true, func() {
			g.openMenu()
		}),
	)
}

// NewLevelUpUI shows one card per offered upgrade.
func NewLevelUpUI(g *Game, choice sim.UpgradeChoiceEvent) *ebitenui.UI {
	k := newKit()
	children := []widget.PreferredSizeLocateableWidget{
		k.text(fmt.Sprintf("Level %d! Choose an upgrade", choice.Level), white),
	}
	for _, id := range choice.Choices {
		rarity := system.RarityOf(id)
		label := fmt.Sprintf("[%s] %s", strings.ToUpper(rarity.String()), upgradeTitle(id))
		img := imageui.NewNineSliceColor(rarityColors[rarity])
		children = append(children, k.buttonWith(label, img, true, func() {
			g.overlay = nil
			if err := g.sim.ChooseUpgrade(id); err != nil {
				log.Printf("choose upgrade %s: %v", id, err)
			}
		}))
	}
	return k.overlay(g, children...)
}

// runSummary is the text shown on the game over screen and copied to the
// clipboard.
func runSummary(stage int, ended system.RunEndedEvent, coins int) string {
	result := "Defeated"
	if ended.Victory {
		result = "Victory"
	}
	return fmt.Sprintf("voidarena stage %d: %s\nscore %d, kills %d, wave %d, +%d coins",
		stage, result, ended.Score, ended.Kills, ended.Wave, coins)
}

// NewGameOverUI shows the run summary with retry, copy and menu buttons.
func NewGameOverUI(g *Game, ended system.RunEndedEvent) *ebitenui.UI {
	k := newKit()
	stage := g.sim.RunState().Stage
	summary := runSummary(stage, ended, ended.Wave)

	title := "GAME OVER"
	if ended.Victory {
		title = "VICTORY"
	}
	children := []widget.PreferredSizeLocateableWidget{k.text(title, white)}
	for _, line := range strings.Split(summary, "\n") {
		children = append(children, k.text(line, white))
	}
	children = append(children,
		k.btn("Retry", true, func() {
			if err := g.startRun(stage); err != nil {
				log.Printf("retry stage %d: %v", stage, err)
			}
		}),
		k.btn("Copy summary", true, func() {
			if err := copyToClipboard(summary); err != nil {
				log.Printf("clipboard: %v", err)
			}
		}),
		k.btn("Menu", true, func() {
			g.openMenu()
		}),
	)
	return k.overlay(g, children...)
}

var shopUpgrades = []struct {
	kind  save.UpgradeKind
	label string
}{
	{save.UpgradeHealth, "Max health"},
	{save.UpgradeSpeed, "Speed"},
	{save.UpgradeDamage, "Damage"},
}

var relicTitles = map[save.RelicID]string{
	save.RelicBulletSplit:    "Bullet Split (unlocks the split card)",
	save.RelicGravityCapture: "Gravity Capture (pickups fly to you)",
	save.RelicAdvancedRepair: "Advanced Repair (health packs heal more)",
}

// NewMenuUI is the stage select and the shop.
func NewMenuUI(g *Game) *ebitenui.UI {
	k := newKit()
	p := g.sim.Profile()
	refresh := func() {
		if err := g.sim.SaveProfile(); err != nil {
			log.Printf("save profile: %v", err)
		}
		g.overlay = NewMenuUI(g)
	}

	children := []widget.PreferredSizeLocateableWidget{
		k.text("VOIDARENA", white),
		k.text(fmt.Sprintf("Coins: %d", p.Coins), color.NRGBA{R: 0xff, G: 0xd7, A: 0xff}),
	}

	stages := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(5),
			widget.GridLayoutOpts.Spacing(6, 6),
			widget.GridLayoutOpts.Stretch([]bool{true, true, true, true, true}, nil),
		)),
		widget.ContainerOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true})),
	)
	for stage := 1; stage <= max(g.cfg.Shop.MaxStage, 1); stage++ {
		unlocked := p.StageUnlocked(stage)
		label := fmt.Sprintf("Stage %d", stage)
		if !unlocked {
			label = "Locked"
		}
		stages.AddChild(k.btn(label, unlocked, func() {
			if err := g.startRun(stage); err != nil {
				log.Printf("start stage %d: %v", stage, err)
			}
		}))
	}
	children = append(children, stages)

	children = append(children, k.text("Upgrades", white))
	for _, u := range shopUpgrades {
		level := p.UpgradeLevel(u.kind)
		cost := save.UpgradeCost(level)
		children = append(children, k.btn(fmt.Sprintf("%s Lv%d (%d coins)", u.label, level, cost), p.Coins >= cost, func() {
			if err := p.BuyUpgrade(u.kind); err != nil {
				log.Printf("buy %s: %v", u.kind, err)
				return
			}
			refresh()
		}))
	}

	children = append(children, k.text("Relics", white))
	for _, id := range save.Relics() {
		state := p.Relics[id]
		cost, _ := save.RelicCost(id)
		switch {
		case !state.Purchased:
			children = append(children, k.btn(fmt.Sprintf("Buy %s (%d coins)", relicTitles[id], cost), p.Coins >= cost, func() {
				if err := p.BuyRelic(id); err != nil {
					log.Printf("buy relic %s: %v", id, err)
					return
				}
				refresh()
			}))
		default:
			verb := "Enable"
			if state.Active {
				verb = "Disable"
			}
			children = append(children, k.btn(fmt.Sprintf("%s %s", verb, relicTitles[id]), true, func() {
				if err := p.SetRelicActive(id, !state.Active); err != nil {
					log.Printf("toggle relic %s: %v", id, err)
					return
				}
				refresh()
			}))
		}
	}

	children = append(children, k.btn("Quit", true, func() {
		g.quit = true
	}))
	return k.overlay(g, children...)
}
