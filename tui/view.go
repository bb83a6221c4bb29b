package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"go-pulse/metronome"
	"go-pulse/tempo"
	"go-pulse/widgets"
)

const barWidth = 44

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Settings.Snapshot()

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.FG()).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	entryStyle := lipgloss.NewStyle().Foreground(m.Theme.Warning())

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(headerStyle.Render(m.headerLine(snap)))
	out.WriteString("\n\n")
	out.WriteString(m.barLines(snap))
	out.WriteString("\n")
	out.WriteString(m.lampLine())
	out.WriteString("\n\n")
	out.WriteString(m.summaryTable(snap))
	out.WriteString("\n\n")
	out.WriteString(m.tapLine(dimStyle))
	out.WriteString("\n\n")
	out.WriteString(m.noteTable(snap))
	out.WriteString("\n\n")
	if m.entry != "" {
		out.WriteString(entryStyle.Render("bpm> " + m.entry + "▏"))
	} else {
		out.WriteString(dimStyle.Render("type digits for an exact BPM, enter applies, esc cancels"))
	}
	out.WriteString("\n\n")
	out.WriteString(dimStyle.Render(m.keyHelp()))
	out.WriteString("\n")
	return out.String()
}

func (m Model) headerLine(snap metronome.Snapshot) string {
	playState := "STOP"
	if m.Scheduler.Running() {
		playState = "PLAY"
	}

	audioState := "audio:" + string(m.audioMode)
	if !snap.AudioOn {
		audioState += " muted"
	}
	midiState := "midi:-"
	if m.midiName != "" {
		midiState = "midi:" + m.midiName
	}
	visualState := "visual:on"
	if !snap.VisualOn {
		visualState = "visual:off"
	}

	return fmt.Sprintf("pulse  %s  %s bpm  %s  accent/%d  %s  %s  %s",
		playState, tempo.FormatBPM(snap.BPM), snap.Subdivision,
		snap.AccentEvery, audioState, midiState, visualState)
}

// barLines renders the BPM position bar and the swing bar.
func (m Model) barLines(snap metronome.Snapshot) string {
	bpmBar := widgets.RenderBar(m.Theme, snap.BPM/tempo.MaxBPM, barWidth)
	swingNorm := (snap.SwingPct - tempo.MinSwingPct) / (tempo.MaxSwingPct - tempo.MinSwingPct)
	swingBar := widgets.RenderBar(m.Theme, swingNorm, barWidth)

	return fmt.Sprintf("  BPM    %s  0-%d\n  Swing  %s  %.1f%% first of pair",
		bpmBar, int(tempo.MaxBPM), swingBar, snap.SwingPct)
}

// lampLine renders the beat indicator and its label.
func (m Model) lampLine() string {
	color := m.Theme.TickFlash()
	if m.flashTick.Accent {
		color = m.Theme.AccentFlash()
	}
	lamp := widgets.RenderLamp(m.Theme, m.flashOn, color)
	label := lipgloss.NewStyle().Foreground(m.Theme.FG()).Bold(true).Render(m.beatLabel)
	return fmt.Sprintf("  %s  %s", lamp, label)
}

func (m Model) summaryTable(snap metronome.Snapshot) string {
	bpm := snap.BPM

	rows := []widgets.Row{
		{Name: "ms per beat", Value: tempo.FormatMs(tempo.MsPerBeat(bpm))},
		{Name: "Frequency (Hz)", Value: tempo.FormatHz(tempo.FrequencyHz(bpm))},
		{Name: "Half-time BPM", Value: tempo.FormatBPM(tempo.Scaled(bpm, 0.5))},
		{Name: "Double-time BPM", Value: tempo.FormatBPM(tempo.Scaled(bpm, 2))},
		{Name: "Third-time BPM (÷3)", Value: tempo.FormatBPM(tempo.Scaled(bpm, 1.0/3.0))},
		{Name: "Quad-time BPM (×4)", Value: tempo.FormatBPM(tempo.Scaled(bpm, 4))},
	}
	return widgets.RenderTable(m.Theme, "Summary", rows)
}

func (m Model) tapLine(dim lipgloss.Style) string {
	est := tempo.Placeholder
	if bpm, ok := m.Taps.Estimate(); ok {
		live := lipgloss.NewStyle().Foreground(m.Theme.Success())
		est = live.Render(tempo.FormatBPM(bpm))
	}
	jitter := ""
	if ms, ok := m.Taps.Jitter(); ok {
		jitter = fmt.Sprintf("   jitter %s", tempo.FormatMs(ms))
	}
	line := fmt.Sprintf("  Tap BPM %s   taps %d%s", est, m.Taps.Count(), jitter)
	return line + dim.Render("   (space to tap, u to apply, r to reset)")
}

// noteTable lists the straight note durations and, below them, how the
// current swing splits the eighth pair.
func (m Model) noteTable(snap metronome.Snapshot) string {
	table := tempo.NoteTable()
	rows := make([]widgets.Row, 0, len(table)+3)
	for _, n := range table {
		rows = append(rows, widgets.Row{
			Name:  n.Name,
			Value: beatsCell(tempo.FormatBeats(n.Beats)) + tempo.FormatMs(n.DurationMs(snap.BPM)),
		})
	}

	first, second := tempo.SwungPair(snap.BPM, snap.SwingPct)
	rows = append(rows,
		widgets.Row{Name: "Swung 8ths (pair)"},
		widgets.Row{
			Name:  fmt.Sprintf("  First 8th (%.1f%%)", snap.SwingPct),
			Value: beatsCell(tempo.Placeholder) + tempo.FormatMs(first),
		},
		widgets.Row{
			Name:  fmt.Sprintf("  Second 8th (%.1f%%)", 100-snap.SwingPct),
			Value: beatsCell(tempo.Placeholder) + tempo.FormatMs(second),
		},
	)

	title := fmt.Sprintf("Note Durations @ %s BPM", tempo.FormatBPM(snap.BPM))
	return widgets.RenderTable(m.Theme, title, rows)
}

// beatsCell pads the beats column in terminal cells rather than bytes,
// so the placeholder glyph doesn't shift the ms column.
func beatsCell(s string) string {
	const w = 8
	if d := w - lipgloss.Width(s); d > 0 {
		s += strings.Repeat(" ", d)
	}
	return s + "  "
}

func (m Model) keyHelp() string {
	return widgets.RenderKeyHelp([]widgets.KeySection{
		{Title: "Transport", Keys: []widgets.KeyBinding{
			{Key: "m", Desc: "start/stop metronome"},
			{Key: "space", Desc: "tap tempo"},
			{Key: "u", Desc: "use tap BPM"},
			{Key: "r", Desc: "reset taps"},
		}},
		{Title: "Tempo", Keys: []widgets.KeyBinding{
			{Key: "+/-", Desc: "bpm ±1"},
			{Key: "↑/↓", Desc: "bpm ±5"},
			{Key: "f1-f6", Desc: "presets 60/90/100/120/140/160"},
		}},
		{Title: "Feel", Keys: []widgets.KeyBinding{
			{Key: "s", Desc: "cycle subdivision"},
			{Key: "a/A", Desc: "accent every +/-"},
			{Key: "[/]", Desc: "swing ∓0.5%"},
		}},
		{Title: "Output", Keys: []widgets.KeyBinding{
			{Key: "o", Desc: "audio on/off"},
			{Key: "v", Desc: "visual on/off"},
			{Key: "q", Desc: "quit"},
		}},
	})
}
