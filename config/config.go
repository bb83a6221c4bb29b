// Package config collects startup options. Everything arrives via
// flags and nothing is ever written back to disk; the app always
// starts from its flags and defaults.
package config

import (
	"flag"

	"go-pulse/audio"
	"go-pulse/tempo"
)

// Config is everything the binaries take at startup.
type Config struct {
	BPM         float64
	Subdivision tempo.Subdivision
	AccentEvery int
	SwingPct    float64
	AudioMode   audio.Mode
	MIDIPort    string
	VisualOn    bool
	LogFile     string
	ListPorts   bool // list MIDI outputs and exit
}

// Default returns the startup defaults: 120 BPM quarter notes,
// accent every 4, straight feel, automatic audio backend.
func Default() Config {
	return Config{
		BPM:         120,
		Subdivision: tempo.Quarter,
		AccentEvery: 4,
		SwingPct:    tempo.MinSwingPct,
		AudioMode:   audio.ModeAuto,
		VisualOn:    true,
	}
}

// FromArgs parses the shared command line flags. The flag set uses
// ContinueOnError so parse failures come back as errors instead of
// exiting, which keeps this testable.
func FromArgs(name string, args []string) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	bpm := fs.Float64("bpm", cfg.BPM, "starting tempo in beats per minute (0-500)")
	sub := fs.String("subdivision", "quarter", "tick unit: quarter, eighth, sixteenth, triplet")
	accent := fs.Int("accent", cfg.AccentEvery, "accent every N ticks (1-16)")
	swing := fs.Float64("swing", cfg.SwingPct, "swing percentage for the eighth pair (50-80)")
	audioMode := fs.String("audio", string(cfg.AudioMode), "audio backend: auto, speaker, command, off")
	midiPort := fs.String("midi", "", "also click through the MIDI output port matching this name")
	visual := fs.Bool("visual", cfg.VisualOn, "flash the beat indicator")
	logFile := fs.String("log", "", "write a debug log to this file")
	ports := fs.Bool("ports", false, "list MIDI output ports and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	subdivision, err := tempo.ParseSubdivision(*sub)
	if err != nil {
		return cfg, err
	}
	mode, err := audio.ParseMode(*audioMode)
	if err != nil {
		return cfg, err
	}

	cfg.BPM = *bpm
	cfg.Subdivision = subdivision
	cfg.AccentEvery = *accent
	cfg.SwingPct = *swing
	cfg.AudioMode = mode
	cfg.MIDIPort = *midiPort
	cfg.VisualOn = *visual
	cfg.LogFile = *logFile
	cfg.ListPorts = *ports

	return cfg.Normalize(), nil
}

// Normalize clamps the numeric options into their valid ranges, the
// same treatment interactive edits get.
func (c Config) Normalize() Config {
	c.BPM = tempo.Clamp(c.BPM)
	c.SwingPct = tempo.ClampSwing(c.SwingPct)
	if c.AccentEvery < 1 {
		c.AccentEvery = 1
	}
	if c.AccentEvery > 16 {
		c.AccentEvery = 16
	}
	return c
}
