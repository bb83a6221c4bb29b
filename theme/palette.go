package theme

type RGB [3]uint8

// Palette is an ordered color ramp sampled by normalized position.
type Palette struct {
	Name   string
	Colors []RGB
}

// Default is the built-in tempo ramp: cold blue for slow through hot
// red for fast. The cyan and red stops match the tick and accent
// flash colors, so the BPM bar and the beat lamp agree.
func Default() *Palette {
	return &Palette{
		Name: "pulse",
		Colors: []RGB{
			{30, 58, 138},  // deep blue
			{6, 182, 212},  // cyan
			{16, 185, 129}, // green
			{234, 179, 8},  // yellow
			{249, 115, 22}, // orange
			{239, 68, 68},  // red
		},
	}
}

// Lookup returns interpolated color for normalized value 0-1
func (p *Palette) Lookup(norm float64) RGB {
	if norm <= 0 {
		return p.Colors[0]
	}
	if norm >= 1 {
		return p.Colors[len(p.Colors)-1]
	}

	// Find the two colors to interpolate between
	pos := norm * float64(len(p.Colors)-1)
	i := int(pos)
	frac := pos - float64(i)

	c0 := p.Colors[i]
	c1 := p.Colors[i+1]

	return RGB{
		lerp(c0[0], c1[0], frac),
		lerp(c0[1], c1[1], frac),
		lerp(c0[2], c1[2], frac),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a)*(1-t) + float64(b)*t)
}
