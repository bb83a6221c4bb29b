package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
	Symbols Symbols
}

type Symbols struct {
	// Beat lamp
	LampOn  rune // ● flashing
	LampOff rune // ○ idle

	// Gradient bars (BPM, swing)
	BarFill  rune // █ filled cell
	BarEmpty rune // ░ empty cell
	BarMark  rune // ┃ position marker

	// Note table
	RuleH rune // ─ horizontal rule
}

func New(palette *Palette) *Theme {
	return &Theme{
		Palette: palette,
		Symbols: Symbols{
			LampOn:  '●',
			LampOff: '○',

			BarFill:  '█',
			BarEmpty: '░',
			BarMark:  '┃',

			RuleH: '─',
		},
	}
}

// Indicator colors. Fixed rather than palette-derived so the flash
// reads the same on every ramp.
const (
	accentFlashHex = "#ef4444"
	tickFlashHex   = "#06b6d4"
	lampIdleHex    = "#1f2937"
)

// Style helpers

func (t *Theme) AccentFlash() lipgloss.Color {
	return lipgloss.Color(accentFlashHex)
}

func (t *Theme) TickFlash() lipgloss.Color {
	return lipgloss.Color(tickFlashHex)
}

func (t *Theme) LampIdle() lipgloss.Color {
	return lipgloss.Color(lampIdleHex)
}

func (t *Theme) FG() lipgloss.Color {
	return lipgloss.Color("#e5e7eb")
}

func (t *Theme) Muted() lipgloss.Color {
	return lipgloss.Color("#6b7280")
}

func (t *Theme) Warning() lipgloss.Color {
	return lipgloss.Color("#f97316")
}

func (t *Theme) Success() lipgloss.Color {
	return lipgloss.Color("#10b981")
}

// Color returns lipgloss color for any normalized value 0-1
func (t *Theme) Color(norm float64) lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(norm))
}

// RGB returns raw RGB for any normalized value 0-1
func (t *Theme) RGB(norm float64) RGB {
	return t.Palette.Lookup(norm)
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
