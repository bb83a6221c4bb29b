// Package tempo holds the pure math behind the calculator: clamping,
// parsing, beat/period conversions, the note-duration table and swing
// splits. Everything here is stateless; "undefined" results (bpm <= 0)
// come back as +Inf and render as a placeholder, never as an error.
package tempo

import (
	"math"
	"strconv"
)

// Display range for a tempo. Input outside it clamps, never errors.
const (
	MinBPM = 0.0
	MaxBPM = 500.0
)

// Swing bounds, percent of a beat pair given to the first eighth.
const (
	MinSwingPct = 50.0
	MaxSwingPct = 80.0
)

// Clamp forces a tempo into [MinBPM, MaxBPM]. NaN counts as 0.
func Clamp(bpm float64) float64 {
	if math.IsNaN(bpm) || bpm < MinBPM {
		return MinBPM
	}
	if bpm > MaxBPM {
		return MaxBPM
	}
	return bpm
}

// ParseInput validates free-form text as a tempo. It reports false for
// anything that is not a plain number; the caller keeps its last valid
// value in that case. The parsed value is not clamped here so callers
// can decide how to surface out-of-range entries.
func ParseInput(text string) (float64, bool) {
	if text == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// MsPerBeat returns the quarter-note period in milliseconds, +Inf when
// the tempo is zero or negative.
func MsPerBeat(bpm float64) float64 {
	if bpm <= 0 {
		return math.Inf(1)
	}
	return 60000.0 / bpm
}

// FrequencyHz converts a tempo to beats per second.
func FrequencyHz(bpm float64) float64 {
	return bpm / 60.0
}

// Scaled multiplies a tempo for the half/double/third/quad readouts.
// The result is deliberately not reclamped to [MinBPM, MaxBPM]: these
// figures are informational and may exceed the slider range.
func Scaled(bpm, factor float64) float64 {
	return bpm * factor
}

// NoteDuration returns the length in milliseconds of a note spanning
// beatsPerNote quarter notes, +Inf when the tempo is zero or negative.
func NoteDuration(bpm, beatsPerNote float64) float64 {
	if bpm <= 0 {
		return math.Inf(1)
	}
	return 60000.0 * beatsPerNote / bpm
}

// ClampSwing forces a swing percentage into [MinSwingPct, MaxSwingPct].
func ClampSwing(pct float64) float64 {
	if math.IsNaN(pct) || pct < MinSwingPct {
		return MinSwingPct
	}
	if pct > MaxSwingPct {
		return MaxSwingPct
	}
	return pct
}

// SwungPair splits one beat pair (two eighths, one quarter-note period)
// between a long first note and a short second one. The halves always
// sum to the full pair. Both are +Inf when the tempo is zero.
func SwungPair(bpm, swingPct float64) (firstMs, secondMs float64) {
	pair := MsPerBeat(bpm)
	if math.IsInf(pair, 1) {
		return pair, pair
	}
	swingPct = ClampSwing(swingPct)
	firstMs = pair * swingPct / 100.0
	return firstMs, pair - firstMs
}
