package audio

import (
	"testing"
	"time"

	"github.com/milk9111/voidarena/ecs/system"
	"github.com/milk9111/voidarena/sim"
)

func TestOscillatorLength(t *testing.T) {
	tests := []struct {
		name string
		wave Wave
	}{
		{name: "sine", wave: WaveSine},
		{name: "square", wave: WaveSquare},
		{name: "saw", wave: WaveSaw},
		{name: "noise", wave: WaveNoise},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tone := Tone{Freq: 440, Duration: 10 * time.Millisecond, Wave: tc.wave, Gain: 1}
			s := NewOscillator(tone, sampleRate)
			want := sampleRate.N(tone.Duration)

			buf := make([][2]float64, 128)
			total := 0
			for {
				n, ok := s.Stream(buf)
				total += n
				for _, sample := range buf[:n] {
					if sample[0] < -1 || sample[0] > 1 {
						t.Fatalf("sample out of range: %v", sample[0])
					}
				}
				if !ok {
					break
				}
			}
			if total != want {
				t.Fatalf("streamed %d samples, want %d", total, want)
			}
		})
	}
}

func TestEveryCueIsAudible(t *testing.T) {
	for typ, tones := range cueTable {
		for _, tone := range tones {
			if tone.Duration <= 0 || tone.Gain <= 0 || tone.Freq <= 0 {
				t.Fatalf("%s: silent tone %+v", typ, tone)
			}
		}
	}
	if len(CuesFor(system.EventLevelUp)) == 0 {
		t.Fatalf("no level up cue")
	}
	if len(CuesFor("unknown")) != 0 {
		t.Fatalf("unexpected cue for unknown event")
	}
}

func TestNotifyBeforeInitIsSilent(t *testing.T) {
	c := NewCues(1)
	c.Notify(sim.Event{Type: system.EventPlayerHit})
	c.Close()
}
