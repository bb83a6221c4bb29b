package metronome

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"go-pulse/tempo"
)

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings().Snapshot()

	assert.Equal(t, 120.0, s.BPM)
	assert.Equal(t, tempo.Quarter, s.Subdivision)
	assert.Equal(t, 4, s.AccentEvery)
	assert.Equal(t, 50.0, s.SwingPct)
	assert.True(t, s.AudioOn)
	assert.True(t, s.VisualOn)
}

func TestSettingsClamping(t *testing.T) {
	st := NewSettings()

	assert.Equal(t, 500.0, st.SetBPM(750), "BPM clamps high")
	assert.Equal(t, 0.0, st.SetBPM(-3), "BPM clamps low")

	st.SetBPM(498)
	assert.Equal(t, 500.0, st.AdjustBPM(10), "adjust clamps at the top")
	assert.Equal(t, 495.0, st.AdjustBPM(-5))

	assert.Equal(t, 80.0, st.SetSwing(95))
	assert.Equal(t, 50.0, st.SetSwing(12))
	assert.Equal(t, 50.0, st.AdjustSwing(-1), "swing floor holds")

	st.SetAccentEvery(0)
	assert.Equal(t, 1, st.Snapshot().AccentEvery, "accent cycle floors at 1")

	st.SetAccentEvery(32)
	assert.Equal(t, 16, st.Snapshot().AccentEvery, "accent cycle caps at 16")
	assert.Equal(t, 16, st.AdjustAccentEvery(1), "adjusting at the cap holds")
	assert.Equal(t, 15, st.AdjustAccentEvery(-1))
}

func TestSettingsToggles(t *testing.T) {
	st := NewSettings()

	assert.False(t, st.ToggleAudio())
	assert.True(t, st.ToggleAudio())
	assert.False(t, st.ToggleVisual())
	st.SetVisualOn(true)
	assert.True(t, st.Snapshot().VisualOn)
}

func TestCycleSubdivision(t *testing.T) {
	st := NewSettings()

	assert.Equal(t, tempo.Eighth, st.CycleSubdivision())
	assert.Equal(t, tempo.Sixteenth, st.CycleSubdivision())
	assert.Equal(t, tempo.QuarterTriplet, st.CycleSubdivision())
	assert.Equal(t, tempo.Quarter, st.CycleSubdivision())
}

// Snapshots taken while writers hammer every field must always satisfy
// the invariants; the race detector additionally proves the locking.
func TestSettingsConcurrentUse(t *testing.T) {
	st := NewSettings()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				st.AdjustBPM(float64(n - 2))
				st.AdjustSwing(0.5)
				st.AdjustAccentEvery(1)
				st.CycleSubdivision()
				st.ToggleAudio()
			}
		}(i)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			s := st.Snapshot()
			assert.GreaterOrEqual(t, s.BPM, 0.0)
			assert.LessOrEqual(t, s.BPM, 500.0)
			assert.GreaterOrEqual(t, s.SwingPct, 50.0)
			assert.LessOrEqual(t, s.SwingPct, 80.0)
			assert.GreaterOrEqual(t, s.AccentEvery, 1)
			assert.LessOrEqual(t, s.AccentEvery, 16)
		}
	}()

	wg.Wait()
	<-done
}
