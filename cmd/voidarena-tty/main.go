// Command voidarena-tty plays voidarena in a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/voidarena/audio"
	"github.com/milk9111/voidarena/prefabs"
	"github.com/milk9111/voidarena/save"
	"github.com/milk9111/voidarena/sim"
)

func main() {
	stage := flag.Int("stage", 1, "stage to play")
	dataDir := flag.String("data", "", "save directory (defaults to the user config dir)")
	configName := flag.String("config", prefabs.DefaultConfigName, "tuning table under prefabs/ or an absolute path")
	seed := flag.Uint64("seed", 0, "random seed; 0 picks one")
	mute := flag.Bool("mute", false, "disable sound")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	if *dataDir == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "resolve data dir: %v\n", err)
			os.Exit(1)
		}
		*dataDir = filepath.Join(dir, "voidarena")
	}

	cfg, err := prefabs.LoadConfig(*configName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	cues := audio.NewCues(0.6)
	if !*mute {
		if err := cues.Init(); err != nil {
			log.Printf("audio: %v; running without sound", err)
		}
	}
	store := save.NewAsyncStore(save.NewFileStore(*dataDir), nil)

	t := newTerminal(screen, cfg)
	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))
	}
	s := sim.New(cfg, sim.WithRand(rng), sim.WithProfile(store), sim.WithUI(sim.UIFunc(func(evt sim.Event) {
		cues.Notify(evt)
		t.Notify(evt)
	})))

	runErr := s.StartRun(*stage)
	if runErr == nil {
		t.run(s)
	}

	screen.Fini()
	cues.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "save: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "start stage %d: %v\n", *stage, runErr)
		os.Exit(1)
	}
	if t.summary != "" {
		fmt.Println(t.summary)
	}
}
