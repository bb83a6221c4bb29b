package audio

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

// CommandEngine shells out to the OS audio player for every click.
// The two click WAVs are written to a temp directory once; each Play
// spawns the player fire-and-forget. Latency is whatever the player's
// startup costs, so this is the fallback, not the default.
type CommandEngine struct {
	player     string
	dir        string
	accentPath string
	tickPath   string
}

// NewCommandEngine locates a system player and writes the click files.
func NewCommandEngine() (*CommandEngine, error) {
	player, err := findPlayer()
	if err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "pulse-clicks-")
	if err != nil {
		return nil, errors.Wrap(err, "temp dir")
	}

	e := &CommandEngine{
		player:     player,
		dir:        dir,
		accentPath: filepath.Join(dir, "accent.wav"),
		tickPath:   filepath.Join(dir, "tick.wav"),
	}
	if err := writeClick(e.accentPath, accentFreq, accentMs, accentGain); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	if err := writeClick(e.tickPath, tickFreq, tickMs, tickGain); err != nil {
		os.RemoveAll(dir)
		return nil, err
	}
	return e, nil
}

// findPlayer picks the platform's CLI audio player.
func findPlayer() (string, error) {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"afplay"}
	case "linux":
		candidates = []string{"paplay", "aplay"}
	default:
		return "", errors.Errorf("no system player known for %s", runtime.GOOS)
	}
	for _, name := range candidates {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", errors.Errorf("no player found (tried %v)", candidates)
}

// writeClick renders one click to a WAV file.
func writeClick(path string, freq, ms, gain float64) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "create click file")
	}
	buf := clickBuffer(freq, ms, gain)
	if err := wav.Encode(f, buf.Streamer(0, buf.Len()), format); err != nil {
		f.Close()
		return errors.Wrap(err, "encode click")
	}
	return f.Close()
}

func (e *CommandEngine) Play(accent bool) error {
	path := e.tickPath
	if accent {
		path = e.accentPath
	}
	cmd := exec.Command(e.player, path)
	if err := cmd.Start(); err != nil {
		return errors.Wrap(err, "spawn player")
	}
	go cmd.Wait() // reap; a failed click is not worth stopping for
	return nil
}

// Release removes the temp click files.
func (e *CommandEngine) Release() {
	os.RemoveAll(e.dir)
}

func (e *CommandEngine) Mode() Mode { return ModeCommand }
