package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"go-pulse/audio"
	"go-pulse/config"
	"go-pulse/debug"
	"go-pulse/metronome"
	"go-pulse/midi"
	"go-pulse/tap"
	"go-pulse/theme"
	"go-pulse/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromArgs("pulse", os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.ListPorts {
		defer midi.CloseDriver()
		return listPorts()
	}

	// stdout belongs to bubbletea, so debug output goes to a file.
	if cfg.LogFile != "" {
		if err := debug.Enable(cfg.LogFile); err != nil {
			return err
		}
		defer debug.Disable()
	}

	engine, err := audio.Open(cfg.AudioMode, debug.Logger("audio"))
	if err != nil {
		return err
	}
	defer engine.Release()

	// MIDI rides alongside the built-in audio when a port is named.
	sinks := []metronome.AudioSink{engine}
	midiName := ""
	if cfg.MIDIPort != "" {
		out, err := midi.Open(cfg.MIDIPort)
		if err != nil {
			return err
		}
		defer midi.CloseDriver()
		defer out.Close()
		sinks = append(sinks, out)
		midiName = out.Name()
	}

	settings := metronome.NewSettings()
	settings.SetBPM(cfg.BPM)
	settings.SetSubdivision(cfg.Subdivision)
	settings.SetAccentEvery(cfg.AccentEvery)
	settings.SetSwing(cfg.SwingPct)
	settings.SetVisualOn(cfg.VisualOn)

	sink := tui.NewTickSink()
	scheduler := metronome.NewScheduler(settings, sink, debug.Logger("scheduler"), sinks...)
	defer scheduler.Stop()

	m := tui.NewModel(settings, scheduler, tap.New(), theme.New(theme.Default()),
		sink, engine.Mode(), midiName)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	return err
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
