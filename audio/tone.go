package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
)

const sampleRate = beep.SampleRate(44100)

// Wave is an oscillator shape.
type Wave uint8

const (
	WaveSine Wave = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// Tone is one synthesized blip. Sweep is the frequency change in Hz over
// the whole duration.
type Tone struct {
	Freq     float64
	Sweep    float64
	Duration time.Duration
	Wave     Wave
	Gain     float64
}

type oscillator struct {
	tone     Tone
	rate     beep.SampleRate
	phase    float64
	position int
	length   int
}

// NewOscillator renders t as a finite streamer with a linear fade out.
func NewOscillator(t Tone, rate beep.SampleRate) beep.Streamer {
	return &oscillator{tone: t, rate: rate, length: rate.N(t.Duration)}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	if o.position >= o.length {
		return 0, false
	}
	for i := range samples {
		if o.position >= o.length {
			return i, true
		}
		progress := float64(o.position) / float64(o.length)

		var val float64
		switch o.tone.Wave {
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		default:
			val = math.Sin(2 * math.Pi * o.phase)
		}
		val *= o.tone.Gain * (1 - progress)

		samples[i][0] = val
		samples[i][1] = val

		freq := o.tone.Freq + o.tone.Sweep*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }
