package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pulse/audio"
	"go-pulse/metronome"
	"go-pulse/tap"
	"go-pulse/tempo"
	"go-pulse/theme"
)

// fakeClock drives the tap estimator without sleeping.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestModel() (Model, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	settings := metronome.NewSettings()
	sink := NewTickSink()
	sched := metronome.NewScheduler(settings, sink, zerolog.Nop())
	taps := tap.NewWithClock(clock.now)
	return NewModel(settings, sched, taps, theme.New(theme.Default()), sink,
		audio.ModeOff, ""), clock
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press runs one key through Update and returns the new model.
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update must return the same model type")
	return got
}

func TestKeysAdjustSettings(t *testing.T) {
	tests := []struct {
		name  string
		msg   tea.KeyMsg
		check func(t *testing.T, snap metronome.Snapshot)
	}{
		{"plus bumps bpm", keyRunes("+"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 121.0, s.BPM)
		}},
		{"equals bumps bpm", keyRunes("="), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 121.0, s.BPM)
		}},
		{"minus drops bpm", keyRunes("-"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 119.0, s.BPM)
		}},
		{"up arrow coarse", tea.KeyMsg{Type: tea.KeyUp}, func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 125.0, s.BPM)
		}},
		{"down arrow coarse", tea.KeyMsg{Type: tea.KeyDown}, func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 115.0, s.BPM)
		}},
		{"s cycles subdivision", keyRunes("s"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, tempo.Eighth, s.Subdivision)
		}},
		{"a widens accent cycle", keyRunes("a"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 5, s.AccentEvery)
		}},
		{"A narrows accent cycle", keyRunes("A"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 3, s.AccentEvery)
		}},
		{"] raises swing", keyRunes("]"), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, 50.5, s.SwingPct)
		}},
		{"[ clamps swing at straight", keyRunes("["), func(t *testing.T, s metronome.Snapshot) {
			assert.Equal(t, tempo.MinSwingPct, s.SwingPct)
		}},
		{"o mutes audio", keyRunes("o"), func(t *testing.T, s metronome.Snapshot) {
			assert.False(t, s.AudioOn)
		}},
		{"v hides visuals", keyRunes("v"), func(t *testing.T, s metronome.Snapshot) {
			assert.False(t, s.VisualOn)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newTestModel()
			m = press(t, m, tt.msg)
			tt.check(t, m.Settings.Snapshot())
		})
	}
}

func TestPresetKeys(t *testing.T) {
	tests := []struct {
		key  tea.KeyType
		want float64
	}{
		{tea.KeyF1, 60},
		{tea.KeyF2, 90},
		{tea.KeyF3, 100},
		{tea.KeyF4, 120},
		{tea.KeyF5, 140},
		{tea.KeyF6, 160},
	}

	for _, tt := range tests {
		m, _ := newTestModel()
		m = press(t, m, tea.KeyMsg{Type: tt.key})
		assert.Equal(t, tt.want, m.Settings.Snapshot().BPM)
	}
}

func TestSpaceTapsAndAppliesEstimate(t *testing.T) {
	m, clock := newTestModel()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}

	// A single tap has no interval yet, so the BPM must not move.
	m = press(t, m, space)
	assert.Equal(t, 1, m.Taps.Count())
	assert.Equal(t, 120.0, m.Settings.Snapshot().BPM)

	// 250 ms apart is 240 BPM.
	clock.advance(250 * time.Millisecond)
	m = press(t, m, space)
	assert.Equal(t, 2, m.Taps.Count())
	assert.InDelta(t, 240.0, m.Settings.Snapshot().BPM, 1e-9)
}

func TestUseAndResetTapKeys(t *testing.T) {
	m, clock := newTestModel()

	m.Taps.Tap()
	clock.advance(500 * time.Millisecond)
	m.Taps.Tap()

	// Drift the live BPM away, then pull the estimate back with u.
	m.Settings.SetBPM(90)
	m = press(t, m, keyRunes("u"))
	assert.InDelta(t, 120.0, m.Settings.Snapshot().BPM, 1e-9)

	m = press(t, m, keyRunes("r"))
	assert.Equal(t, 0, m.Taps.Count())
	_, ok := m.Taps.Estimate()
	assert.False(t, ok)

	// With no estimate, u leaves the BPM alone.
	m = press(t, m, keyRunes("u"))
	assert.InDelta(t, 120.0, m.Settings.Snapshot().BPM, 1e-9)
}

func TestToggleKeyStartsAndStopsScheduler(t *testing.T) {
	m, _ := newTestModel()
	defer m.Scheduler.Stop()

	m = press(t, m, keyRunes("m"))
	assert.True(t, m.Scheduler.Running())

	m = press(t, m, keyRunes("m"))
	assert.False(t, m.Scheduler.Running())
}

func TestTickMsgFlashesLamp(t *testing.T) {
	m, _ := newTestModel()

	next, cmd := m.Update(tickMsg(metronome.Tick{Accent: true, Index: 0, Count: 0}))
	m = next.(Model)
	assert.True(t, m.flashOn)
	assert.True(t, m.flashTick.Accent)
	assert.Equal(t, "Beat 1", m.beatLabel)
	// One command re-arms the listener, another schedules the revert.
	require.NotNil(t, cmd)

	next, _ = m.Update(tickMsg(metronome.Tick{Accent: false, Index: 2, Count: 6}))
	m = next.(Model)
	assert.Equal(t, "tick 3", m.beatLabel)
	assert.False(t, m.flashTick.Accent)
}

func TestStaleFlashRevertIsIgnored(t *testing.T) {
	m, _ := newTestModel()

	next, _ := m.Update(tickMsg(metronome.Tick{Accent: true}))
	m = next.(Model)
	next, _ = m.Update(tickMsg(metronome.Tick{Index: 1, Count: 1}))
	m = next.(Model)
	require.True(t, m.flashOn)

	// The revert armed by the first flash lands after the second
	// flash already lit the lamp again. It must not darken it.
	next, _ = m.Update(flashRevertMsg(1))
	m = next.(Model)
	assert.True(t, m.flashOn)

	next, _ = m.Update(flashRevertMsg(2))
	m = next.(Model)
	assert.False(t, m.flashOn)
}

func TestEntryCommit(t *testing.T) {
	m, _ := newTestModel()

	for _, k := range []string{"9", "6", ".", "5"} {
		m = press(t, m, keyRunes(k))
	}
	assert.Equal(t, "96.5", m.entry)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "", m.entry)
	assert.Equal(t, 96.5, m.Settings.Snapshot().BPM)
}

func TestEntryInvalidKeepsLastBPM(t *testing.T) {
	m, _ := newTestModel()

	m = press(t, m, keyRunes("."))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "", m.entry)
	assert.Equal(t, 120.0, m.Settings.Snapshot().BPM)
}

func TestEntryBackspaceAndCancel(t *testing.T) {
	m, _ := newTestModel()

	m = press(t, m, keyRunes("1"))
	m = press(t, m, keyRunes("2"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "1", m.entry)

	// Backspace on an empty buffer is a no-op, not a panic.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "", m.entry)

	m = press(t, m, keyRunes("7"))
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.entry)
	assert.Equal(t, 120.0, m.Settings.Snapshot().BPM)
}

func TestQuitStopsScheduler(t *testing.T) {
	m, _ := newTestModel()
	m.Scheduler.Start()

	next, cmd := m.Update(keyRunes("q"))
	m = next.(Model)
	assert.False(t, m.Scheduler.Running())
	assert.True(t, m.quitting)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestTickSinkNeverBlocks(t *testing.T) {
	sink := NewTickSink()

	// Two flashes with nobody listening: the second is dropped.
	sink.Flash(metronome.Tick{Count: 1})
	sink.Flash(metronome.Tick{Count: 2})

	msg := listenForTicks(sink)()
	got, ok := msg.(tickMsg)
	require.True(t, ok)
	assert.Equal(t, 1, got.Count)

	select {
	case extra := <-sink.ch:
		t.Fatalf("sink buffered more than one tick: %+v", extra)
	default:
	}
}

func TestViewRendersReadouts(t *testing.T) {
	m, _ := newTestModel()
	out := m.View()

	assert.Contains(t, out, "pulse  STOP")
	assert.Contains(t, out, "Ready")
	assert.Contains(t, out, "Summary")
	assert.Contains(t, out, "ms per beat")
	assert.Contains(t, out, "500.00 ms")
	assert.Contains(t, out, "Note Durations @ 120.00 BPM")
	assert.Contains(t, out, "Tap BPM "+tempo.Placeholder)
	assert.Contains(t, out, "start/stop metronome")
}

// The swung split is a note duration, so it renders inside the
// duration table rather than the summary block.
func TestViewSwungPairInsideNoteTable(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, keyRunes("]")) // swing 50.5

	out := m.View()
	tableAt := strings.Index(out, "Note Durations")
	swungAt := strings.Index(out, "Swung 8ths (pair)")
	require.NotEqual(t, -1, tableAt)
	require.NotEqual(t, -1, swungAt)
	assert.Greater(t, swungAt, tableAt)
	assert.NotContains(t, out[:tableAt], "Swung")

	// 500 ms pair at 120 BPM split 50.5/49.5.
	assert.Contains(t, out, "First 8th (50.5%)")
	assert.Contains(t, out, "252.50 ms")
	assert.Contains(t, out, "Second 8th (49.5%)")
	assert.Contains(t, out, "247.50 ms")
}

func TestViewShowsTapEstimate(t *testing.T) {
	m, clock := newTestModel()
	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}

	m = press(t, m, space)
	clock.advance(400 * time.Millisecond)
	m = press(t, m, space)

	out := m.View()
	assert.Contains(t, out, "Tap BPM 150.00")
	assert.Contains(t, out, "taps 2")
}

func TestViewShowsEntryBuffer(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, keyRunes("9"))
	m = press(t, m, keyRunes("8"))

	assert.Contains(t, m.View(), "bpm> 98")
	assert.False(t, strings.Contains(m.View(), "type digits"))
}

func TestViewEmptyWhileQuitting(t *testing.T) {
	m, _ := newTestModel()
	m = press(t, m, keyRunes("q"))
	assert.Equal(t, "", m.View())
}
