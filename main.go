package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/voidarena/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug overlay")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	stage := flag.Int("stage", 0, "start this stage right away instead of opening the menu")
	dataDir := flag.String("data", "", "save directory (defaults to the user config dir)")
	configName := flag.String("config", prefabs.DefaultConfigName, "tuning table under prefabs/ or an absolute path")
	watch := flag.Bool("watch", false, "reload prefabs/ when files change")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	if *dataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			log.Fatalf("resolve data dir: %v", err)
		}
		*dataDir = filepath.Join(dir, "voidarena")
	}

	game, err := NewGame(Options{
		ConfigName: *configName,
		DataDir:    *dataDir,
		Stage:      *stage,
		Seed:       *seed,
		Watch:      *watch,
		Debug:      *debug,
		Mute:       *mute,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(int(game.cfg.Canvas.Width), int(game.cfg.Canvas.Height))
	ebiten.SetWindowTitle("voidarena")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
