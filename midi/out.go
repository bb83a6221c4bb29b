// Package midi adds an optional hardware click: wood-block hits on
// the General MIDI percussion channel, sent to any connected output
// port. It satisfies the metronome's audio sink contract, so a MIDI
// device rides alongside the built-in audio rather than replacing it.
package midi

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver
)

// GM percussion lives on channel 10 (wire index 9). High wood block
// for the accent, low wood block for the rest.
const (
	percussionChannel = 9
	accentNote        = 76
	tickNote          = 77

	accentVelocity = 127
	tickVelocity   = 96

	// noteOffDelay releases each hit shortly after it sounds. The
	// voices don't sustain, but a dangling NoteOn is still rude.
	noteOffDelay = 50 * time.Millisecond

	// scanTimeout guards port enumeration (CoreMIDI can hang).
	scanTimeout = 3 * time.Second
)

// ListPorts returns the names of the available MIDI output ports.
func ListPorts() ([]string, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(outs))
	for i, out := range outs {
		names[i] = out.String()
	}
	return names, nil
}

// outPorts enumerates output ports with a timeout so a hung MIDI
// service can't wedge startup.
func outPorts() ([]drivers.Out, error) {
	ch := make(chan []drivers.Out, 1)
	go func() {
		ch <- gomidi.GetOutPorts()
	}()

	select {
	case outs := <-ch:
		return outs, nil
	case <-time.After(scanTimeout):
		return nil, errors.New("MIDI port scan timed out")
	}
}

// Out clicks through one MIDI output port.
type Out struct {
	port drivers.Out
	send func(gomidi.Message) error
}

// Open connects to the first output port whose name contains the given
// substring, case-insensitive.
func Open(name string) (*Out, error) {
	outs, err := outPorts()
	if err != nil {
		return nil, err
	}
	want := strings.ToLower(name)
	for _, port := range outs {
		if !strings.Contains(strings.ToLower(port.String()), want) {
			continue
		}
		send, err := gomidi.SendTo(port)
		if err != nil {
			return nil, errors.Wrapf(err, "open %q", port.String())
		}
		return &Out{port: port, send: send}, nil
	}
	return nil, errors.Errorf("no MIDI output matching %q", name)
}

// Name reports the connected port's name.
func (o *Out) Name() string {
	return o.port.String()
}

// Play sends one percussion hit, NoteOff deferred off the timing loop.
func (o *Out) Play(accent bool) error {
	note, vel := uint8(tickNote), uint8(tickVelocity)
	if accent {
		note, vel = accentNote, accentVelocity
	}
	if err := o.send(gomidi.NoteOn(percussionChannel, note, vel)); err != nil {
		return errors.Wrap(err, "note on")
	}
	go func(n uint8) {
		time.Sleep(noteOffDelay)
		o.send(gomidi.NoteOff(percussionChannel, n))
	}(note)
	return nil
}

// Close releases the port. The driver itself stays up; see CloseDriver.
func (o *Out) Close() error {
	return o.port.Close()
}

// CloseDriver shuts the MIDI subsystem down at process exit.
func CloseDriver() {
	gomidi.CloseDriver()
}
