package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	shotFreqStartHz = 480.0
	shotFreqEndHz   = 160.0
	shotAmplitude   = 0.18

	killRumbleFrequencyHz = 90.0
	killNoiseAmplitude    = 0.22
	killRumbleAmplitude   = 0.28

	hurtBuzzFrequencyHz = 70.0
	hurtBuzzAmplitude   = 0.2

	pickupFreqStartHz = 220.0
	pickupFreqEndHz   = 440.0
	pickupAmplitude   = 0.2

	gameOverFreqStartHz = 330.0
	gameOverFreqEndHz   = 55.0
	gameOverAmplitude   = 0.25
)

// SweepGenerator is a sine tone gliding linearly from one pitch to another
// over a fixed duration, with a short fade at both ends.
type SweepGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	amplitude float64
	total     int
	pos       int
	phase     float64
}

// NewSweepGenerator creates a sweep lasting ms milliseconds.
func NewSweepGenerator(sr beep.SampleRate, from, to, amplitude float64, ms int) *SweepGenerator {
	return &SweepGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		amplitude: amplitude,
		total:     sr.N(time.Duration(ms) * time.Millisecond),
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := 1.0
		if g.total > 0 {
			progress = math.Min(float64(g.pos)/float64(g.total), 1)
		}
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)

		fade := math.Min(progress/0.05, 1) * math.Min((1-progress)/0.2, 1)
		sample := g.amplitude * math.Max(fade, 0) * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// BuzzGenerator is a harmonically rich low tone.
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz at freq Hz.
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.5 * math.Sin(2*math.Pi*g.freq*t)
		sample += 0.25 * math.Sin(2*math.Pi*g.freq*2*t)
		sample += 0.125 * math.Sin(2*math.Pi*g.freq*3*t)

		envelope := math.Min(t/0.01, 1) * math.Exp(-t*6)
		sample *= envelope * hurtBuzzAmplitude

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// CrackleGenerator is enveloped noise over a low rumble.
type CrackleGenerator struct {
	sr     beep.SampleRate
	rumble float64
	pos    int
	seed   int64
}

// NewCrackleGenerator creates a crackle; seed makes the noise reproducible.
func NewCrackleGenerator(sr beep.SampleRate, rumble float64, seed int64) *CrackleGenerator {
	return &CrackleGenerator{sr: sr, rumble: rumble, seed: seed & 0x7fffffff}
}

func (g *CrackleGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 14)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := killRumbleAmplitude * math.Sin(2*math.Pi*g.rumble*t)

		sample := envelope * (killNoiseAmplitude*noise + rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *CrackleGenerator) Err() error {
	return nil
}
