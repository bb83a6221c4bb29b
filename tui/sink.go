package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"go-pulse/metronome"
)

// TickSink carries scheduler ticks into the bubbletea event loop. The
// send never blocks the timing loop: if the UI hasn't drained the
// previous tick yet, the new one is dropped, which a lamp can afford.
type TickSink struct {
	ch chan metronome.Tick
}

func NewTickSink() *TickSink {
	return &TickSink{ch: make(chan metronome.Tick, 1)}
}

// Flash implements metronome.VisualSink.
func (s *TickSink) Flash(t metronome.Tick) {
	select {
	case s.ch <- t:
	default:
	}
}

// listenForTicks blocks on the sink and is re-armed from Update after
// every message, one tick per msg.
func listenForTicks(s *TickSink) tea.Cmd {
	return func() tea.Msg {
		return tickMsg(<-s.ch)
	}
}
