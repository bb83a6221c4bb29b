package audio

// NullEngine is silence: the -audio off backend, the last rung of the
// auto fallback, and the stand-in for real output in tests.
type NullEngine struct{}

func (NullEngine) Play(accent bool) error { return nil }
func (NullEngine) Release()               {}
func (NullEngine) Mode() Mode             { return ModeOff }
