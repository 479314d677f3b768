// Package move holds the Ableton Move's native address space: pad notes,
// button and knob control numbers, and the pad color palette.
package move

// The 32 pads are notes 68-99, eight per row, row 0 at the bottom left.
const (
	PadFirst uint8 = 68
	PadLast  uint8 = 99
	PadCols        = 8
	PadRows        = 4
)

// PadNote returns the note for row (0-3, bottom up) and col (0-7).
func PadNote(row, col int) uint8 {
	return PadFirst + uint8(row*PadCols+col)
}

// IsPad reports whether a note id addresses one of the 32 grid pads.
func IsPad(note uint8) bool {
	return note >= PadFirst && note <= PadLast
}

// Touch-sensitive surfaces report as notes: one per knob plus the wheel.
const (
	KnobTouchFirst uint8 = 0 // knob touch notes 0-8, left to right
	KnobTouchLast  uint8 = 8
	WheelTouch     uint8 = 9 // main wheel touch
)

// BankNotes is the bank-select subset: the eight leftmost knob-touch
// notes. Tapping one recalls that knob bank; with shift held it saves it.
var BankNotes = [8]uint8{0, 1, 2, 3, 4, 5, 6, 7}

// Button and encoder control numbers.
const (
	CCWheelClick uint8 = 3  // main wheel pressed as a button
	CCShift      uint8 = 49
	CCCapture    uint8 = 50
	CCUp         uint8 = 54
	CCDown       uint8 = 55
	CCUndo       uint8 = 56
	CCLoop       uint8 = 58
	CCMute       uint8 = 60
	CCLeft       uint8 = 62
	CCRight      uint8 = 63
	CCPlay       uint8 = 85
	CCRec        uint8 = 86

	// Relative encoders under the display.
	CCKnobFirst  uint8 = 71 // knobs 71-78
	CCKnobLast   uint8 = 78
	CCMasterKnob uint8 = 79
)

// TrackCCs are the eight buttons directly above the pad grid.
var TrackCCs = [8]uint8{102, 103, 104, 105, 106, 107, 108, 109}

// ViewCCs are the three view-selector buttons left of the grid.
var ViewCCs = [3]uint8{40, 41, 42}

// ButtonDown is the value a Move button sends when pressed; release is 0.
const ButtonDown uint8 = 127

// Pad/button LED palette indexes. The Move palette is sparser than the
// Launchpad's; the color translator collapses what it can and passes
// unknown codes through untouched.
const (
	ColorOff         uint8 = 0
	ColorDimWhite    uint8 = 1
	ColorWhite       uint8 = 3
	ColorRed         uint8 = 6
	ColorDimRed      uint8 = 7
	ColorOrange      uint8 = 10
	ColorYellow      uint8 = 13
	ColorGreen       uint8 = 16
	ColorDimGreen    uint8 = 17
	ColorCyan        uint8 = 33
	ColorBlue        uint8 = 40
	ColorPurple      uint8 = 44
	ColorPink        uint8 = 57
	ColorBrightWhite uint8 = 127
)

// HeldChannel is the note channel the Move uses for its held/animation
// LED variant; channel 0 is plain static color.
const HeldChannel uint8 = 1
