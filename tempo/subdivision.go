package tempo

import "fmt"

// Subdivision is the rhythmic unit the metronome ticks on.
type Subdivision int

const (
	Quarter Subdivision = iota
	Eighth
	Sixteenth
	QuarterTriplet
)

// Multiplier is the number of ticks per quarter note for the
// subdivision. Quarter triplets tick three times over two beats.
func (s Subdivision) Multiplier() float64 {
	switch s {
	case Eighth:
		return 2.0
	case Sixteenth:
		return 4.0
	case QuarterTriplet:
		return 1.5
	default:
		return 1.0
	}
}

func (s Subdivision) String() string {
	switch s {
	case Eighth:
		return "eighth"
	case Sixteenth:
		return "sixteenth"
	case QuarterTriplet:
		return "quarter triplet"
	default:
		return "quarter"
	}
}

// Next cycles through the subdivisions, for single-key UI toggling.
func (s Subdivision) Next() Subdivision {
	switch s {
	case Quarter:
		return Eighth
	case Eighth:
		return Sixteenth
	case Sixteenth:
		return QuarterTriplet
	default:
		return Quarter
	}
}

// ParseSubdivision reads a subdivision from its flag/display spelling.
func ParseSubdivision(s string) (Subdivision, error) {
	switch s {
	case "quarter", "4th", "":
		return Quarter, nil
	case "eighth", "8th":
		return Eighth, nil
	case "sixteenth", "16th":
		return Sixteenth, nil
	case "quarter triplet", "triplet", "4th-triplet":
		return QuarterTriplet, nil
	}
	return Quarter, fmt.Errorf("unknown subdivision %q", s)
}
