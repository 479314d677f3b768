package engine

import (
	"fmt"
)

// Layout selects which half of the Launchpad Pro grid the Move's 32 pads
// stand in for. Exactly one layout is active; the wheel gesture toggles.
type Layout int

const (
	LayoutTop    Layout = iota // Launchpad rows 5-8
	LayoutBottom               // Launchpad rows 1-4
)

func (l Layout) String() string {
	if l == LayoutBottom {
		return "bottom"
	}
	return "top"
}

// Table is an exact bidirectional mapping built from a hand-authored
// forward map. The reverse direction is derived by inversion; duplicate
// reverse keys are a programming error and fail construction.
type Table struct {
	fwd map[uint8]uint8
	rev map[uint8]uint8
}

func newTable(name string, fwd map[uint8]uint8) Table {
	rev := make(map[uint8]uint8, len(fwd))
	for k, v := range fwd {
		if prev, dup := rev[v]; dup {
			panic(fmt.Sprintf("table %s: %d and %d both map to %d", name, prev, k, v))
		}
		rev[v] = k
	}
	return Table{fwd: fwd, rev: rev}
}

// Lookup translates a peer id to a local id.
func (t Table) Lookup(k uint8) (uint8, bool) {
	v, ok := t.fwd[k]
	return v, ok
}

// Reverse translates a local id back to the peer id.
func (t Table) Reverse(v uint8) (uint8, bool) {
	k, ok := t.rev[v]
	return k, ok
}

// Forward iterates the forward entries.
func (t Table) Forward(fn func(k, v uint8)) {
	for k, v := range t.fwd {
		fn(k, v)
	}
}

func (t Table) Len() int { return len(t.fwd) }

// LayoutTables bundles the two tables active for one layout.
type LayoutTables struct {
	Pads     Table // Launchpad grid note -> Move pad note
	Controls Table // Launchpad control note -> Move button CC
}

// The pad tables map Launchpad Programmer-layout grid notes (row*10+col)
// onto the Move's 32 pads (notes 68-99, bottom-left first). The top
// layout shows Launchpad rows 5-8, the bottom layout rows 1-4; in both,
// the Launchpad row order is preserved top to bottom.
var padsTop = map[uint8]uint8{
	51: 68, 52: 69, 53: 70, 54: 71, 55: 72, 56: 73, 57: 74, 58: 75,
	61: 76, 62: 77, 63: 78, 64: 79, 65: 80, 66: 81, 67: 82, 68: 83,
	71: 84, 72: 85, 73: 86, 74: 87, 75: 88, 76: 89, 77: 90, 78: 91,
	81: 92, 82: 93, 83: 94, 84: 95, 85: 96, 86: 97, 87: 98, 88: 99,
}

var padsBottom = map[uint8]uint8{
	11: 68, 12: 69, 13: 70, 14: 71, 15: 72, 16: 73, 17: 74, 18: 75,
	21: 76, 22: 77, 23: 78, 24: 79, 25: 80, 26: 81, 27: 82, 28: 83,
	31: 84, 32: 85, 33: 86, 34: 87, 35: 88, 36: 89, 37: 90, 38: 91,
	41: 92, 42: 93, 43: 94, 44: 95, 45: 96, 46: 97, 47: 98, 48: 99,
}

// The control tables route the Launchpad's surround buttons onto Move
// buttons: top row 91-98 to the eight track buttons, the function row to
// the matching transport/modifier buttons, and the visible half of the
// scene column to the arrow cluster. 99 is the logo LED; 101 (play) and
// the loop/undo/mute trio get special handling in the engine but still
// live here so the same lookup drives them.
var controlsTop = map[uint8]uint8{
	91: 102, 92: 103, 93: 104, 94: 105, 95: 106, 96: 107, 97: 108, 98: 109,
	99:  50, // logo -> capture
	101: 85, // play
	102: 58, // loop
	103: 56, // undo
	106: 49, // shift
	107: 60, // mute
	89: 54, 69: 55, 59: 62, 79: 63, // scene col rows 8..5 -> up/down/left/right
}

var controlsBottom = map[uint8]uint8{
	91: 102, 92: 103, 93: 104, 94: 105, 95: 106, 96: 107, 97: 108, 98: 109,
	99:  50,
	101: 85,
	102: 58,
	103: 56,
	106: 49,
	107: 60,
	49: 54, 29: 55, 19: 62, 39: 63, // scene col rows 4..1 -> up/down/left/right
}

func newLayoutTables() map[Layout]LayoutTables {
	return map[Layout]LayoutTables{
		LayoutTop: {
			Pads:     newTable("pads/top", padsTop),
			Controls: newTable("controls/top", controlsTop),
		},
		LayoutBottom: {
			Pads:     newTable("pads/bottom", padsBottom),
			Controls: newTable("controls/bottom", controlsBottom),
		},
	}
}
