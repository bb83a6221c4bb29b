package tempo

// NoteValue is one row of the duration table: a display name and its
// length in quarter-note beats.
type NoteValue struct {
	Name  string
	Beats float64
}

// noteValues is ordered longest to shortest, the way the table reads.
var noteValues = []NoteValue{
	{"1 bar (4/4)", 4.0},
	{"Dotted half", 3.0},
	{"Half", 2.0},
	{"Dotted quarter", 1.5},
	{"Quarter", 1.0},
	{"Triplet quarter", 2.0 / 3.0},
	{"Eighth", 0.5},
	{"Triplet eighth", 1.0 / 3.0},
	{"Sixteenth", 0.25},
	{"Triplet sixteenth", 1.0 / 6.0},
	{"Thirty-second", 0.125},
}

// NoteTable returns the standard note values. The slice is a copy;
// callers may reorder or trim it freely.
func NoteTable() []NoteValue {
	out := make([]NoteValue, len(noteValues))
	copy(out, noteValues)
	return out
}

// DurationMs is the table row's length at the given tempo.
func (n NoteValue) DurationMs(bpm float64) float64 {
	return NoteDuration(bpm, n.Beats)
}
