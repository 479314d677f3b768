package engine

import (
	"github.com/charlesvestal/move-anything-m8/lpp"
	"github.com/charlesvestal/move-anything-m8/move"
)

// colorMap carries Launchpad palette velocities onto the Move palette.
// The M8 only ever paints with a small set of codes; anything else passes
// through unchanged rather than going dark.
var colorMap = map[uint8]uint8{
	lpp.ColorOff:         move.ColorOff,
	lpp.ColorWhite:       move.ColorWhite,
	lpp.ColorRed:         move.ColorRed,
	lpp.ColorDimRed:      move.ColorDimRed,
	lpp.ColorOrange:      move.ColorOrange,
	lpp.ColorDimOrange:   move.ColorOrange,
	lpp.ColorYellow:      move.ColorYellow,
	lpp.ColorDimGreen:    move.ColorDimGreen,
	lpp.ColorGreen:       move.ColorGreen,
	lpp.ColorCyan:        move.ColorCyan,
	lpp.ColorBlue:        move.ColorBlue,
	lpp.ColorPurple:      move.ColorPurple,
	lpp.ColorPink:        move.ColorPink,
	lpp.ColorBrightWhite: move.ColorBrightWhite,
}

// monoMap is for the loop/undo/mute buttons, which only have two LED
// states on the Move: the M8's dim codes go dark, lit codes go full.
var monoMap = map[uint8]uint8{
	lpp.ColorOff:      move.ColorOff,
	lpp.ColorDimGreen: move.ColorOff,
	lpp.ColorGreen:    move.ColorBrightWhite,
	lpp.ColorRed:      move.ColorBrightWhite,
}

// TranslateColor maps a Launchpad palette velocity to the Move palette.
func TranslateColor(v uint8) uint8 {
	if mapped, ok := colorMap[v]; ok {
		return mapped
	}
	return v
}

// TranslateMono maps a Launchpad velocity for the two-state buttons.
func TranslateMono(v uint8) uint8 {
	if mapped, ok := monoMap[v]; ok {
		return mapped
	}
	return v
}

// playLEDColor picks the transport LED color from the live-mode and
// playing flags.
func playLEDColor(liveMode, playing bool) uint8 {
	switch {
	case liveMode && playing:
		return move.ColorRed
	case liveMode:
		return move.ColorYellow
	case playing:
		return move.ColorGreen
	}
	return move.ColorDimWhite
}

// View-selector LED levels.
const (
	viewDimColor    = move.ColorDimWhite
	viewBrightColor = move.ColorWhite
)
