package metronome

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// countWrap keeps the beat counter bounded on very long runs.
	countWrap = 1_000_000

	// idlePush is how far the deadline advances per settings recheck
	// while the tempo is zero. No ticks are emitted in that state.
	idlePush = 200 * time.Millisecond
)

// Tick is one scheduled beat, delivered to the sinks.
type Tick struct {
	Accent bool
	Index  int       // position within the accent cycle, 0 = accented
	Count  int       // ticks since start, wraps at countWrap
	At     time.Time // the deadline this tick was scheduled for
}

// AudioSink makes a click audible. Play is called on the loop
// goroutine and must return quickly; an error is logged and the
// schedule carries on.
type AudioSink interface {
	Play(accent bool) error
}

// VisualSink receives ticks for display. Flash must never block.
type VisualSink interface {
	Flash(Tick)
}

// Scheduler runs the metronome loop. Timing is drift-corrected: the
// next deadline is the previous one plus the period, not "now plus the
// period", so per-tick jitter never accumulates. Settings changes are
// picked up at the top of each tick, never mid-tick.
type Scheduler struct {
	settings *Settings
	visual   VisualSink
	audio    []AudioSink
	log      zerolog.Logger

	mu       sync.Mutex
	playing  bool
	stopChan chan struct{}
}

// NewScheduler wires a scheduler to its settings and sinks. The
// visual sink may be nil; audio sinks are optional too.
func NewScheduler(settings *Settings, visual VisualSink, log zerolog.Logger, audio ...AudioSink) *Scheduler {
	return &Scheduler{
		settings: settings,
		visual:   visual,
		audio:    audio,
		log:      log,
	}
}

// Start launches the loop goroutine. No-op while already running.
// The beat counter starts at zero, so the first tick is accented and
// fires immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.playing {
		s.mu.Unlock()
		return
	}
	s.playing = true
	s.stopChan = make(chan struct{})
	stop := s.stopChan
	s.mu.Unlock()

	s.log.Debug().Msg("started")
	go s.run(stop)
}

// Stop signals the loop to exit. Safe to call when already stopped;
// the loop observes the close within one timer wait.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.playing {
		return
	}
	s.playing = false
	close(s.stopChan)
	s.log.Debug().Msg("stopped")
}

// Running reports whether the loop is live.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

// Toggle starts or stops and returns the new state.
func (s *Scheduler) Toggle() bool {
	if s.Running() {
		s.Stop()
		return false
	}
	s.Start()
	return true
}

func (s *Scheduler) run(stop chan struct{}) {
	deadline := time.Now()
	count := 0

	for {
		snap := s.settings.Snapshot()

		if snap.BPM <= 0 {
			// Undefined tempo: idle, rechecking settings every
			// idlePush so a new tempo takes effect promptly.
			deadline = time.Now().Add(idlePush)
			if !s.waitUntil(deadline, stop) {
				return
			}
			continue
		}

		period := time.Duration(60.0 / snap.BPM / snap.Subdivision.Multiplier() * float64(time.Second))

		s.deliver(Tick{
			Accent: count%snap.AccentEvery == 0,
			Index:  count % snap.AccentEvery,
			Count:  count,
			At:     deadline,
		}, snap)

		count = (count + 1) % countWrap

		deadline = deadline.Add(period)
		if now := time.Now(); deadline.Before(now) {
			// Behind schedule (suspend, stall): resync to now rather
			// than bursting ticks to catch up.
			s.log.Debug().Dur("behind", now.Sub(deadline)).Msg("resync")
			deadline = now
		}
		if !s.waitUntil(deadline, stop) {
			return
		}
	}
}

// deliver fans one tick out to the sinks per the snapshot's flags.
func (s *Scheduler) deliver(t Tick, snap Snapshot) {
	if snap.VisualOn && s.visual != nil {
		s.visual.Flash(t)
	}
	if !snap.AudioOn {
		return
	}
	for _, sink := range s.audio {
		if err := sink.Play(t.Accent); err != nil {
			s.log.Warn().Err(err).Int("count", t.Count).Msg("audio sink failed")
		}
	}
}

// waitUntil sleeps until the deadline or a stop, reporting false on
// stop so the caller can bail out.
func (s *Scheduler) waitUntil(deadline time.Time, stop chan struct{}) bool {
	d := time.Until(deadline)
	if d <= 0 {
		// Already due; still honor a pending stop between ticks.
		select {
		case <-stop:
			return false
		default:
			return true
		}
	}
	timer := time.NewTimer(d)
	select {
	case <-stop:
		timer.Stop()
		return false
	case <-timer.C:
		return true
	}
}
