// Package theme maps a color ramp onto the handful of roles the status
// display uses. The ramp is swappable: point MOVE_M8_PALETTE at any
// GIMP .gpl file and the whole display restyles itself.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Palette *Palette
}

func New(palette *Palette) *Theme {
	return &Theme{Palette: palette}
}

// Color roles mapped to palette positions (0-1)
const (
	RoleMuted   = 0.2
	RoleText    = 0.45
	RoleHeader  = 0.55
	RoleWarning = 0.8
	RoleSuccess = 1.0
)

func (t *Theme) Header() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleHeader))
}

func (t *Theme) Text() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleText))
}

func (t *Theme) Muted() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleMuted))
}

func (t *Theme) Warning() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleWarning))
}

func (t *Theme) Success() lipgloss.Color {
	return rgbToLipgloss(t.Palette.Lookup(RoleSuccess))
}

func rgbToLipgloss(c RGB) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2]))
}
