package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"go-pulse/audio"
	"go-pulse/debug"
	"go-pulse/metronome"
	"go-pulse/tap"
	"go-pulse/tempo"
	"go-pulse/theme"
)

// flashDur is how long the lamp stays lit after a tick.
const flashDur = 120 * time.Millisecond

// presets maps the function keys to common practice tempos.
var presets = map[string]float64{
	"f1": 60, "f2": 90, "f3": 100, "f4": 120, "f5": 140, "f6": 160,
}

type Model struct {
	Settings  *metronome.Settings
	Scheduler *metronome.Scheduler
	Taps      *tap.Estimator
	Theme     *theme.Theme

	sink      *TickSink
	audioMode audio.Mode
	midiName  string // connected MIDI port, "" when none

	entry     string // BPM being typed, "" when not editing
	beatLabel string // survives the flash revert, like a real readout
	flashOn   bool
	flashTick metronome.Tick
	flashSeq  int
	quitting  bool
}

type tickMsg metronome.Tick

// flashRevertMsg darkens the lamp. It carries the flash sequence it
// was armed for, so a revert left over from an earlier beat never
// darkens a newer flash.
type flashRevertMsg int

func NewModel(settings *metronome.Settings, scheduler *metronome.Scheduler,
	taps *tap.Estimator, th *theme.Theme, sink *TickSink,
	audioMode audio.Mode, midiName string) Model {
	return Model{
		Settings:  settings,
		Scheduler: scheduler,
		Taps:      taps,
		Theme:     th,
		sink:      sink,
		audioMode: audioMode,
		midiName:  midiName,
		beatLabel: "Ready",
	}
}

func (m Model) Init() tea.Cmd {
	return listenForTicks(m.sink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		t := metronome.Tick(msg)
		m.flashOn = true
		m.flashTick = t
		m.beatLabel = beatLabel(t)
		m.flashSeq++
		seq := m.flashSeq
		revert := tea.Tick(flashDur, func(time.Time) tea.Msg {
			return flashRevertMsg(seq)
		})
		return m, tea.Batch(listenForTicks(m.sink), revert)

	case flashRevertMsg:
		if int(msg) == m.flashSeq {
			m.flashOn = false
		}
	}

	return m, nil
}

// beatLabel names a tick by its place in the accent cycle. Accents
// restart the cycle, so the accented tick is always beat 1.
func beatLabel(t metronome.Tick) string {
	if t.Accent {
		return "Beat 1"
	}
	return fmt.Sprintf("tick %d", t.Index+1)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Digits and the dot feed the BPM entry buffer.
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		m.entry += key
		return m, nil
	case "backspace":
		if m.entry != "" {
			m.entry = m.entry[:len(m.entry)-1]
		}
		return m, nil
	case "enter":
		if v, ok := tempo.ParseInput(m.entry); ok {
			m.Settings.SetBPM(v)
			debug.Log("keys", "entry committed %q", m.entry)
		}
		// Invalid entries keep the last valid BPM.
		m.entry = ""
		return m, nil
	case "esc":
		m.entry = ""
		return m, nil
	}

	switch key {
	case "q", "ctrl+c":
		m.quitting = true
		m.Scheduler.Stop()
		debug.Log("keys", "quit")
		return m, tea.Quit

	case " ":
		m.Taps.Tap()
		// The estimate follows the player as they tap.
		if bpm, ok := m.Taps.Estimate(); ok {
			m.Settings.SetBPM(bpm)
		}

	case "m":
		m.Scheduler.Toggle()

	case "u":
		if bpm, ok := m.Taps.Estimate(); ok {
			m.Settings.SetBPM(bpm)
		}

	case "r":
		m.Taps.Reset()

	case "+", "=":
		m.Settings.AdjustBPM(1)
	case "-", "_":
		m.Settings.AdjustBPM(-1)
	case "up":
		m.Settings.AdjustBPM(5)
	case "down":
		m.Settings.AdjustBPM(-5)

	case "[":
		m.Settings.AdjustSwing(-0.5)
	case "]":
		m.Settings.AdjustSwing(0.5)

	case "s":
		m.Settings.CycleSubdivision()

	case "a":
		m.Settings.AdjustAccentEvery(1)
	case "A":
		m.Settings.AdjustAccentEvery(-1)

	case "o":
		m.Settings.ToggleAudio()
	case "v":
		m.Settings.ToggleVisual()

	default:
		if bpm, ok := presets[key]; ok {
			m.Settings.SetBPM(bpm)
		}
	}

	return m, nil
}
