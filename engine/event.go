// Package engine is the translation core: it consumes events from the M8
// (as USB-MIDI packets) and from the Move (as MIDI messages), runs them
// through the view-dependent mapping tables and color translation, and
// emits events out the opposite side. All state lives on the Engine and
// is only ever touched by the single dispatch goroutine.
package engine

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/charlesvestal/move-anything-m8/lpp"
)

// EventKind tags a decoded MIDI event.
type EventKind int

const (
	EventUnknown EventKind = iota
	EventNoteOn
	EventNoteOff
	EventControlChange
	EventAftertouch
	EventClock
	EventSysex
)

// Event is a channel message decoded once at the boundary so the
// translation logic never bit-masks raw bytes. Note doubles as the
// controller number for control-change events.
type Event struct {
	Kind    EventKind
	Channel uint8
	Note    uint8
	Value   uint8
}

// FromMessage decodes a gomidi message coming from the Move.
func FromMessage(msg midi.Message) Event {
	var ch, key, vel uint8
	switch {
	case msg.GetNoteOn(&ch, &key, &vel):
		return Event{Kind: EventNoteOn, Channel: ch, Note: key, Value: vel}
	case msg.GetNoteOff(&ch, &key, &vel):
		return Event{Kind: EventNoteOff, Channel: ch, Note: key, Value: vel}
	case msg.GetControlChange(&ch, &key, &vel):
		return Event{Kind: EventControlChange, Channel: ch, Note: key, Value: vel}
	case msg.GetAfterTouch(&ch, &vel):
		return Event{Kind: EventAftertouch, Channel: ch, Value: vel}
	case msg.GetPolyAfterTouch(&ch, &key, &vel):
		return Event{Kind: EventAftertouch, Channel: ch, Note: key, Value: vel}
	}
	return Event{Kind: EventUnknown}
}

// FromPacket decodes a USB-MIDI packet coming from the M8.
func FromPacket(p lpp.Packet) Event {
	if p.IsSysex() {
		return Event{Kind: EventSysex}
	}
	status := p.Status()
	ch := status & 0x0F
	switch p.CIN() {
	case lpp.CINNoteOn:
		return Event{Kind: EventNoteOn, Channel: ch, Note: p[2], Value: p[3]}
	case lpp.CINNoteOff:
		return Event{Kind: EventNoteOff, Channel: ch, Note: p[2], Value: p[3]}
	case lpp.CINControl:
		return Event{Kind: EventControlChange, Channel: ch, Note: p[2], Value: p[3]}
	case lpp.CINSingleByte:
		if status == lpp.Clock {
			return Event{Kind: EventClock}
		}
	}
	return Event{Kind: EventUnknown}
}
