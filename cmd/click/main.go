// Command click is a headless terminal click track: the same tempo
// engine as the pulse TUI, driven by raw key presses behind a single
// self-updating status line.
package main

import (
	"fmt"
	"os"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/gosuri/uilive"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"go-pulse/audio"
	"go-pulse/config"
	"go-pulse/debug"
	"go-pulse/metronome"
	"go-pulse/midi"
	"go-pulse/tap"
	"go-pulse/tempo"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromArgs("click", os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.ListPorts {
		defer midi.CloseDriver()
		return listPorts()
	}

	// Warnings go to stderr; the status line owns stdout. -log swaps
	// in the file logger the TUI uses, keeping the display clean.
	console := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05.000"}).
		With().Timestamp().Logger().Level(zerolog.WarnLevel)
	logFor := func(component string) zerolog.Logger {
		return console.With().Str("component", component).Logger()
	}
	if cfg.LogFile != "" {
		if err := debug.Enable(cfg.LogFile); err != nil {
			return err
		}
		defer debug.Disable()
		logFor = debug.Logger
	}

	engine, err := audio.Open(cfg.AudioMode, logFor("audio"))
	if err != nil {
		return err
	}
	defer engine.Release()

	sinks := []metronome.AudioSink{engine}
	if cfg.MIDIPort != "" {
		out, err := midi.Open(cfg.MIDIPort)
		if err != nil {
			return err
		}
		defer midi.CloseDriver()
		defer out.Close()
		sinks = append(sinks, out)
	}

	settings := metronome.NewSettings()
	settings.SetBPM(cfg.BPM)
	settings.SetSubdivision(cfg.Subdivision)
	settings.SetAccentEvery(cfg.AccentEvery)
	settings.SetSwing(cfg.SwingPct)
	settings.SetVisualOn(cfg.VisualOn)

	status := newStatusLine(settings)
	scheduler := metronome.NewScheduler(settings, status, logFor("scheduler"), sinks...)
	status.sched = scheduler

	fmt.Println("space tap   m start/stop   +/- ↑/↓ tempo   s subdivision   a/A accent   r reset   q quit")
	status.w.Start()
	defer status.w.Stop()

	scheduler.Start()
	defer scheduler.Stop()
	status.refresh()

	return keyLoop(settings, scheduler, status)
}

func keyLoop(settings *metronome.Settings, sched *metronome.Scheduler, status *statusLine) error {
	if err := keyboard.Open(); err != nil {
		return errors.Wrap(err, "open keyboard")
	}
	defer keyboard.Close()

	taps := tap.New()

	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return errors.Wrap(err, "read key")
		}

		switch {
		case key == keyboard.KeyCtrlC || key == keyboard.KeyEsc || char == 'q':
			return nil

		case key == keyboard.KeySpace || char == ' ':
			taps.Tap()
			bpm, ok := taps.Estimate()
			if ok {
				settings.SetBPM(bpm)
			}
			status.noteTaps(taps.Count(), bpm)

		case char == 'm':
			sched.Toggle()
			status.refresh()

		case char == 'r':
			taps.Reset()
			status.noteTaps(0, 0)

		case char == '+' || char == '=':
			settings.AdjustBPM(1)
			status.refresh()
		case char == '-' || char == '_':
			settings.AdjustBPM(-1)
			status.refresh()
		case key == keyboard.KeyArrowUp:
			settings.AdjustBPM(5)
			status.refresh()
		case key == keyboard.KeyArrowDown:
			settings.AdjustBPM(-5)
			status.refresh()

		case char == 's':
			settings.CycleSubdivision()
			status.refresh()
		case char == 'a':
			settings.AdjustAccentEvery(1)
			status.refresh()
		case char == 'A':
			settings.AdjustAccentEvery(-1)
			status.refresh()
		}
	}
}

// statusLine is the VisualSink for the headless mode: every tick (and
// every key that changes a setting) rewrites one terminal line.
type statusLine struct {
	mu       sync.Mutex
	w        *uilive.Writer
	settings *metronome.Settings
	sched    *metronome.Scheduler

	last   metronome.Tick
	ticked bool
	taps   int
	tapBPM float64 // 0 when no estimate yet
}

func newStatusLine(settings *metronome.Settings) *statusLine {
	return &statusLine{w: uilive.New(), settings: settings}
}

// Flash implements metronome.VisualSink.
func (s *statusLine) Flash(t metronome.Tick) {
	s.mu.Lock()
	s.last = t
	s.ticked = true
	s.redraw()
	s.mu.Unlock()
}

// noteTaps records tap progress for display. bpm 0 means no estimate.
func (s *statusLine) noteTaps(count int, bpm float64) {
	s.mu.Lock()
	s.taps = count
	s.tapBPM = bpm
	s.redraw()
	s.mu.Unlock()
}

func (s *statusLine) refresh() {
	s.mu.Lock()
	s.redraw()
	s.mu.Unlock()
}

// redraw runs with mu held.
func (s *statusLine) redraw() {
	snap := s.settings.Snapshot()

	state := "PLAY"
	if s.sched == nil || !s.sched.Running() {
		state = "STOP"
	}

	beat := "-"
	if s.ticked {
		mark := " "
		if s.last.Accent {
			mark = "*"
		}
		beat = fmt.Sprintf("%s%d/%d", mark, s.last.Index+1, snap.AccentEvery)
	}

	tapState := ""
	if s.taps > 0 {
		est := tempo.Placeholder
		if s.tapBPM > 0 {
			est = tempo.FormatBPM(s.tapBPM)
		}
		tapState = fmt.Sprintf("   tap %s (%d)", est, s.taps)
	}

	fmt.Fprintf(s.w, "click  %s  %s bpm  %s  beat %s  %s/beat%s\n",
		state, tempo.FormatBPM(snap.BPM), snap.Subdivision, beat,
		tempo.FormatMs(tempo.MsPerBeat(snap.BPM)), tapState)
}

func listPorts() error {
	names, err := midi.ListPorts()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("no MIDI output ports")
		return nil
	}
	for i, name := range names {
		fmt.Printf("%d: %s\n", i, name)
	}
	return nil
}
