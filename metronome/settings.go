// Package metronome drives the click. Settings is the shared,
// mutex-guarded control surface the UI writes to; Scheduler is the
// single timing loop that reads a snapshot of it each tick and fans
// the tick out to audio and visual sinks.
package metronome

import (
	"sync"

	"go-pulse/tempo"
)

// Accent cycle range, enforced by every setter.
const (
	minAccentEvery = 1
	maxAccentEvery = 16
)

// Snapshot is a consistent view of the settings at one instant. The
// loop reads exactly one per tick, so a tick never sees half an edit.
type Snapshot struct {
	BPM         float64
	Subdivision tempo.Subdivision
	AccentEvery int
	SwingPct    float64
	AudioOn     bool
	VisualOn    bool
}

// Settings holds the live metronome parameters. All access goes
// through the methods; setters clamp so the stored values always
// satisfy the invariants (BPM in [0,500], swing in [50,80],
// accentEvery in [1,16]).
type Settings struct {
	mu sync.RWMutex
	s  Snapshot
}

// NewSettings returns settings at the startup defaults: 120 BPM,
// quarter notes, accent every 4, straight feel, both sinks on.
func NewSettings() *Settings {
	return &Settings{s: Snapshot{
		BPM:         120,
		Subdivision: tempo.Quarter,
		AccentEvery: 4,
		SwingPct:    tempo.MinSwingPct,
		AudioOn:     true,
		VisualOn:    true,
	}}
}

// Snapshot returns a copy of the current values under one lock.
func (st *Settings) Snapshot() Snapshot {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.s
}

// SetBPM stores a clamped tempo and returns what was stored.
func (st *Settings) SetBPM(bpm float64) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.BPM = tempo.Clamp(bpm)
	return st.s.BPM
}

// AdjustBPM nudges the tempo by delta, clamped.
func (st *Settings) AdjustBPM(delta float64) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.BPM = tempo.Clamp(st.s.BPM + delta)
	return st.s.BPM
}

// SetSubdivision switches the tick unit.
func (st *Settings) SetSubdivision(s tempo.Subdivision) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Subdivision = s
}

// CycleSubdivision advances to the next unit and returns it.
func (st *Settings) CycleSubdivision() tempo.Subdivision {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.Subdivision = st.s.Subdivision.Next()
	return st.s.Subdivision
}

// SetAccentEvery stores a clamped accent cycle length.
func (st *Settings) SetAccentEvery(n int) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.AccentEvery = clampAccent(n)
}

// AdjustAccentEvery nudges the accent cycle, clamped, and returns the
// stored value.
func (st *Settings) AdjustAccentEvery(delta int) int {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.AccentEvery = clampAccent(st.s.AccentEvery + delta)
	return st.s.AccentEvery
}

func clampAccent(n int) int {
	if n < minAccentEvery {
		return minAccentEvery
	}
	if n > maxAccentEvery {
		return maxAccentEvery
	}
	return n
}

// SetSwing stores a clamped swing percentage and returns it.
func (st *Settings) SetSwing(pct float64) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SwingPct = tempo.ClampSwing(pct)
	return st.s.SwingPct
}

// AdjustSwing nudges the swing percentage, clamped, and returns it.
func (st *Settings) AdjustSwing(delta float64) float64 {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.SwingPct = tempo.ClampSwing(st.s.SwingPct + delta)
	return st.s.SwingPct
}

// SetAudioOn enables or disables the audio sinks.
func (st *Settings) SetAudioOn(on bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.AudioOn = on
}

// ToggleAudio flips the audio flag and returns the new state.
func (st *Settings) ToggleAudio() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.AudioOn = !st.s.AudioOn
	return st.s.AudioOn
}

// SetVisualOn enables or disables the visual sink.
func (st *Settings) SetVisualOn(on bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.VisualOn = on
}

// ToggleVisual flips the visual flag and returns the new state.
func (st *Settings) ToggleVisual() bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s.VisualOn = !st.s.VisualOn
	return st.s.VisualOn
}
