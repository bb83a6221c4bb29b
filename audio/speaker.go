package audio

import (
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"
	"github.com/pkg/errors"
)

// SpeakerEngine plays the clicks in-process through beep's speaker.
// Both click buffers are rendered once up front; Play just hands the
// mixer a fresh view into a buffer, so it never blocks on I/O.
type SpeakerEngine struct {
	accent *beep.Buffer
	tick   *beep.Buffer
}

// NewSpeakerEngine initializes the speaker with a ~100 ms mix buffer
// and pre-renders the clicks. Fails when no output device is usable
// (headless boxes, missing audio server).
func NewSpeakerEngine() (*SpeakerEngine, error) {
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, errors.Wrap(err, "init")
	}
	return &SpeakerEngine{
		accent: clickBuffer(accentFreq, accentMs, accentGain),
		tick:   clickBuffer(tickFreq, tickMs, tickGain),
	}, nil
}

func (e *SpeakerEngine) Play(accent bool) error {
	buf := e.tick
	if accent {
		buf = e.accent
	}
	speaker.Play(buf.Streamer(0, buf.Len()))
	return nil
}

// Release drops anything still sounding and closes the device.
func (e *SpeakerEngine) Release() {
	speaker.Clear()
	speaker.Close()
}

func (e *SpeakerEngine) Mode() Mode { return ModeSpeaker }
