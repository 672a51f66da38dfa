// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/sim"
)

var cueTable = map[string][]Tone{
	system.EventPlayerHit: {
		{Freq: 140, Sweep: -60, Duration: 90 * time.Millisecond, Wave: WaveSquare, Gain: 0.25},
	},
	system.EventEnemyKilled: {
		{Freq: 420, Sweep: -300, Duration: 60 * time.Millisecond, Wave: WaveNoise, Gain: 0.12},
	},
	system.EventLevelUp: {
		{Freq: 523, Sweep: 260, Duration: 180 * time.Millisecond, Wave: WaveSine, Gain: 0.3},
	},
	system.EventWaveAdvanced: {
		{Freq: 330, Sweep: 110, Duration: 150 * time.Millisecond, Wave: WaveSaw, Gain: 0.15},
	},
	system.EventTreasureOpened: {
		{Freq: 880, Sweep: 440, Duration: 220 * time.Millisecond, Wave: WaveSine, Gain: 0.25},
	},
	system.EventTreasureLocked: {
		{Freq: 110, Duration: 150 * time.Millisecond, Wave: WaveSquare, Gain: 0.2},
	},
	system.EventBossSpawned: {
		{Freq: 55, Sweep: 30, Duration: 1200 * time.Millisecond, Wave: WaveSaw, Gain: 0.35},
	},
	system.EventBossDefeated: {
		{Freq: 80, Sweep: -60, Duration: 900 * time.Millisecond, Wave: WaveNoise, Gain: 0.35},
	},
	system.EventRunEnded: {
		{Freq: 262, Sweep: -130, Duration: 600 * time.Millisecond, Wave: WaveSine, Gain: 0.3},
	},
	sim.EventCoinsAwarded: {
		{Freq: 1320, Duration: 80 * time.Millisecond, Wave: WaveSine, Gain: 0.2},
	},
}

// CuesFor returns the tones played for an event type.
func CuesFor(typ string) []Tone {
	return cueTable[typ]
}

// Cues is a sim.UIStateController that turns events into sound. It is a
// no-op until Init succeeds.
type Cues struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	volume float64
	ready  bool
	muted  bool
}

func NewCues(volume float64) *Cues {
	return &Cues{mixer: &beep.Mixer{}, volume: volume}
}

// Init opens the speaker. Hosts may run silently if it fails.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.ready = true
	return nil
}

func (c *Cues) SetMuted(muted bool) {
	c.mu.Lock()
	c.muted = muted
	c.mu.Unlock()
}

func (c *Cues) Notify(evt sim.Event) {
	tones := CuesFor(evt.Type)
	if len(tones) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready || c.muted {
		return
	}
	streams := make([]beep.Streamer, 0, len(tones))
	for _, t := range tones {
		streams = append(streams, NewOscillator(t, sampleRate))
	}
	gain := &effects.Gain{Streamer: beep.Seq(streams...), Gain: c.volume - 1}
	speaker.Lock()
	c.mixer.Add(gain)
	speaker.Unlock()
}

// Close stops every playing cue.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.ready {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	c.ready = false
}
