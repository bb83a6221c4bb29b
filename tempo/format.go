package tempo

import (
	"fmt"
	"math"
)

// Placeholder stands in for every undefined value on screen.
const Placeholder = "—"

// FormatMs renders a millisecond quantity as "500.00 ms", or the
// placeholder when undefined.
func FormatMs(ms float64) string {
	if !isDisplayable(ms) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f ms", ms)
}

// FormatHz renders a frequency as "2.000 Hz".
func FormatHz(hz float64) string {
	if !isDisplayable(hz) {
		return Placeholder
	}
	return fmt.Sprintf("%.3f Hz", hz)
}

// FormatBPM renders a tempo with two decimals, e.g. "120.00".
func FormatBPM(bpm float64) string {
	if !isDisplayable(bpm) {
		return Placeholder
	}
	return fmt.Sprintf("%.2f", bpm)
}

// FormatBeats renders a beat count compactly: whole beats print without
// a decimal point, fractions round to six significant digits so the
// triplet values stay readable.
func FormatBeats(beats float64) string {
	if !isDisplayable(beats) {
		return Placeholder
	}
	return fmt.Sprintf("%.6g", beats)
}

func isDisplayable(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
