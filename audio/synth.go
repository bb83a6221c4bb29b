// Package audio synthesizes the click sounds and plays them through
// one of three interchangeable backends: the process speaker (beep),
// a spawned system player, or silence. Backend selection happens once
// at startup; playback itself is fire-and-forget so the timing loop
// never waits on audio.
package audio

import (
	"math"

	"github.com/faiface/beep"
)

// SampleRate for all synthesized clicks, 16-bit mono.
const SampleRate = 44100

// Click voices. The accent is brighter, longer and louder than the
// plain tick so the downbeat cuts through.
const (
	accentFreq = 2200.0 // Hz
	accentMs   = 25.0
	accentGain = 0.5

	tickFreq = 1500.0
	tickMs   = 20.0
	tickGain = 0.35

	// decayRate shapes the exponential envelope, a fast dry click.
	decayRate = 60.0
)

var format = beep.Format{
	SampleRate:  beep.SampleRate(SampleRate),
	NumChannels: 1,
	Precision:   2,
}

// synthClick renders a damped sine, sin(2π·f·t)·e^(−decay·t)·gain,
// hard-clipped to [-1, 1].
func synthClick(freq, ms, gain float64) []float64 {
	n := int(SampleRate * ms / 1000.0)
	out := make([]float64, n)
	for i := range out {
		t := float64(i) / SampleRate
		v := math.Sin(2*math.Pi*freq*t) * math.Exp(-decayRate*t) * gain
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		out[i] = v
	}
	return out
}

// clickBuffer renders one click into a reusable beep buffer. Buffers
// are built once per engine; playback streams cheap views of them.
func clickBuffer(freq, ms, gain float64) *beep.Buffer {
	buf := beep.NewBuffer(format)
	buf.Append(&sliceStreamer{samples: synthClick(freq, ms, gain)})
	return buf
}

// sliceStreamer streams a mono sample slice once, both channels fed
// the same signal.
type sliceStreamer struct {
	samples []float64
	pos     int
}

func (s *sliceStreamer) Stream(out [][2]float64) (int, bool) {
	if s.pos >= len(s.samples) {
		return 0, false
	}
	n := 0
	for i := range out {
		if s.pos >= len(s.samples) {
			break
		}
		v := s.samples[s.pos]
		out[i][0] = v
		out[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *sliceStreamer) Err() error { return nil }
