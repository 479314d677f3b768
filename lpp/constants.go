// Package lpp implements the Launchpad Pro side of the translator: the
// protocol constants the M8 expects, USB-MIDI packet framing, and the
// sysex assembler.
//
// The M8 addresses the Launchpad Pro in Programmer layout: grid pads are
// notes row*10+col (rows/cols 1-8), the right scene column is x9, the top
// control row is 91-98 and the logo LED is 99. LED colors are palette
// velocities; the note channel selects the animation style.
package lpp

// Sysex framing
const (
	SysexStart byte = 0xF0
	SysexEnd   byte = 0xF7

	// MaxSysexLen caps the assembler buffer. Anything longer is a
	// malformed stream and gets dropped wholesale.
	MaxSysexLen = 4096
)

// Clock is the MIDI realtime clock byte. The M8 sends it continuously
// while playing; the translator ignores it.
const Clock byte = 0xF8

// Note channels select the LED animation style on a Launchpad Pro.
const (
	ChannelStatic uint8 = 0
	ChannelFlash  uint8 = 1
	ChannelPulse  uint8 = 2
)

// Grid addressing (Programmer layout)
const (
	LogoNote  uint8 = 99
	TopRowLow uint8 = 91 // top control row 91-98
	TopRowHi  uint8 = 98
)

// Bottom function row ids the M8 drives. Play carries the transport
// state, loop/undo/mute are two-state LEDs, shift is the modifier the
// Move's shift button maps onto.
const (
	PlayNote   uint8 = 101
	LoopNote   uint8 = 102
	UndoNote   uint8 = 103
	OptionNote uint8 = 104
	EditNote   uint8 = 105
	ShiftNote  uint8 = 106
	MuteNote   uint8 = 107
)

// GridNote returns the pad note for row/col, both 1-8, row 1 at the bottom.
func GridNote(row, col int) uint8 {
	return uint8(row*10 + col)
}

// SceneNote returns the right-column scene note for row 1-8.
func SceneNote(row int) uint8 {
	return uint8(row*10 + 9)
}

// Palette velocities the M8 paints with. Subset of the full 128-entry
// Launchpad palette; anything outside this set passes through the color
// translator unchanged.
const (
	ColorOff         uint8 = 0
	ColorWhite       uint8 = 3
	ColorRed         uint8 = 5
	ColorDimRed      uint8 = 7
	ColorOrange      uint8 = 9
	ColorDimOrange   uint8 = 11
	ColorYellow      uint8 = 13
	ColorDimGreen    uint8 = 19
	ColorGreen       uint8 = 21
	ColorCyan        uint8 = 37
	ColorBlue        uint8 = 45
	ColorPurple      uint8 = 49
	ColorPink        uint8 = 53
	ColorBrightWhite uint8 = 119
)

// IdentityRequest is the universal device inquiry the M8 broadcasts when
// probing for a controller. Matched byte-for-byte by the assembler.
var IdentityRequest = []byte{0xF0, 0x7E, 0x7F, 0x06, 0x01, 0xF7}

// IdentityResponse is the Launchpad Pro device inquiry reply: Novation
// manufacturer id 00 20 29, family 51 ("Launchpad Pro"), member 00 19,
// firmware 0.1.0.119. The M8 accepts this as proof it is talking to a
// real Launchpad Pro.
var IdentityResponse = []byte{
	0xF0, 0x7E, 0x00, 0x06, 0x02,
	0x00, 0x20, 0x29, // Novation
	0x51, 0x00, 0x19, 0x00, // family / member
	0x00, 0x01, 0x00, 0x77, // firmware
	0xF7,
}

// OutCable is the USB-MIDI cable index for everything sent to the M8,
// which hangs off the Move's USB-A host port.
const OutCable uint8 = 2
