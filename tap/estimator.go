// Package tap turns a stream of keystroke timestamps into a tempo
// estimate. Intervals between recent taps are averaged over a short
// window; a long pause abandons the session so stale taps never skew
// a new tempo.
package tap

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"go-pulse/tempo"
)

const (
	// Window is how many taps are kept. Older taps age out so the
	// estimate tracks the player, not their history.
	Window = 8

	// Timeout is the gap that starts a fresh session.
	Timeout = 2 * time.Second
)

// Estimator accumulates taps and reports the mean-interval BPM. It is
// driven from a single goroutine (the UI loop); it keeps no global
// state and owns no timers.
type Estimator struct {
	taps []time.Time
	now  func() time.Time
}

// New returns an estimator reading the wall clock.
func New() *Estimator {
	return &Estimator{now: time.Now}
}

// NewWithClock injects the time source. Tests use this to replay
// exact tap patterns.
func NewWithClock(now func() time.Time) *Estimator {
	return &Estimator{now: now}
}

// Tap records one tap. A tap arriving more than Timeout after the
// previous one clears the session before being recorded, and the
// window never holds more than Window taps.
func (e *Estimator) Tap() {
	t := e.now()
	if n := len(e.taps); n > 0 && t.Sub(e.taps[n-1]) > Timeout {
		e.taps = e.taps[:0]
	}
	e.taps = append(e.taps, t)
	if len(e.taps) > Window {
		e.taps = e.taps[1:]
	}
}

// Estimate returns the tempo implied by the mean interval between the
// recorded taps, clamped to the display range. It reports false with
// fewer than two taps, or if the clock ever produced a non-positive
// mean interval.
func (e *Estimator) Estimate() (float64, bool) {
	intervals := e.intervals()
	if len(intervals) == 0 {
		return 0, false
	}
	mean := stat.Mean(intervals, nil)
	if mean <= 0 {
		return 0, false
	}
	return tempo.Clamp(60.0 / mean), true
}

// Jitter reports the sample standard deviation of the tap intervals in
// milliseconds, a feel for how steady the player is. Needs at least
// three taps (two intervals).
func (e *Estimator) Jitter() (float64, bool) {
	intervals := e.intervals()
	if len(intervals) < 2 {
		return 0, false
	}
	return stat.StdDev(intervals, nil) * 1000.0, true
}

// Count reports how many taps are in the current session.
func (e *Estimator) Count() int {
	return len(e.taps)
}

// Reset clears the session. Safe to call at any time.
func (e *Estimator) Reset() {
	e.taps = e.taps[:0]
}

// intervals returns the gaps between consecutive taps in seconds.
func (e *Estimator) intervals() []float64 {
	if len(e.taps) < 2 {
		return nil
	}
	out := make([]float64, 0, len(e.taps)-1)
	for i := 1; i < len(e.taps); i++ {
		out = append(out, e.taps[i].Sub(e.taps[i-1]).Seconds())
	}
	return out
}
