package audio

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Mode selects the playback backend.
type Mode string

const (
	ModeAuto    Mode = "auto"    // speaker, then system player, then silent
	ModeSpeaker Mode = "speaker" // in-process output via beep
	ModeCommand Mode = "command" // spawn afplay/paplay/aplay per click
	ModeOff     Mode = "off"     // silent
)

// ParseMode validates an -audio flag value.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeAuto, ModeSpeaker, ModeCommand, ModeOff:
		return Mode(s), nil
	case "":
		return ModeAuto, nil
	}
	return ModeAuto, errors.Errorf("unknown audio mode %q", s)
}

// Engine turns accent/tick requests into sound. Play must return
// quickly; it is called from the timing loop.
type Engine interface {
	Play(accent bool) error
	Release()
	Mode() Mode
}

// Open constructs the engine for a mode. Auto walks the fallback
// chain and always succeeds (worst case silent); an explicit backend
// that cannot initialize is an error rather than a substitution, so
// the user learns their requested output is broken.
func Open(mode Mode, log zerolog.Logger) (Engine, error) {
	switch mode {
	case ModeSpeaker:
		e, err := NewSpeakerEngine()
		if err != nil {
			return nil, errors.Wrap(err, "speaker")
		}
		return e, nil
	case ModeCommand:
		e, err := NewCommandEngine()
		if err != nil {
			return nil, errors.Wrap(err, "system player")
		}
		return e, nil
	case ModeOff:
		return NullEngine{}, nil
	case ModeAuto:
		if e, err := NewSpeakerEngine(); err == nil {
			return e, nil
		} else {
			log.Warn().Err(err).Msg("speaker unavailable, trying system player")
		}
		if e, err := NewCommandEngine(); err == nil {
			return e, nil
		} else {
			log.Warn().Err(err).Msg("system player unavailable, running silent")
		}
		return NullEngine{}, nil
	}
	return nil, errors.Errorf("unknown audio mode %q", mode)
}
