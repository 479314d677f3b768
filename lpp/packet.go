package lpp

// Packet is one 4-byte USB-MIDI event packet: cable/CIN header followed by
// up to three MIDI bytes. The CIN encodes how many of the three data bytes
// are meaningful, which is what lets a sysex terminator land at offset 0,
// 1 or 2 of a packet.
type Packet [4]byte

// Code index numbers (USB-MIDI 1.0 §4).
const (
	CINSysexStart uint8 = 0x4 // sysex starts or continues, 3 bytes
	CINSysexEnd1  uint8 = 0x5 // sysex ends with 1 byte
	CINSysexEnd2  uint8 = 0x6 // sysex ends with 2 bytes
	CINSysexEnd3  uint8 = 0x7 // sysex ends with 3 bytes
	CINNoteOff    uint8 = 0x8
	CINNoteOn     uint8 = 0x9
	CINControl    uint8 = 0xB
	CINSingleByte uint8 = 0xF // realtime, e.g. clock
)

func (p Packet) Cable() uint8 { return p[0] >> 4 }
func (p Packet) CIN() uint8   { return p[0] & 0x0F }

// Status returns the MIDI status byte of a channel-message packet.
func (p Packet) Status() uint8 { return p[1] }

// Data returns the three data bytes following the packet header.
func (p Packet) Data() [3]byte { return [3]byte{p[1], p[2], p[3]} }

// IsSysex reports whether the packet carries part of a sysex message.
func (p Packet) IsSysex() bool {
	cin := p.CIN()
	return cin >= CINSysexStart && cin <= CINSysexEnd3
}

// NoteOnPacket builds a note-on event packet for the given cable.
func NoteOnPacket(cable, channel, note, velocity uint8) Packet {
	return Packet{cable<<4 | CINNoteOn, 0x90 | channel, note, velocity}
}

// NoteOffPacket builds a note-off event packet for the given cable.
func NoteOffPacket(cable, channel, note, velocity uint8) Packet {
	return Packet{cable<<4 | CINNoteOff, 0x80 | channel, note, velocity}
}

// ControlPacket builds a control-change event packet for the given cable.
func ControlPacket(cable, channel, control, value uint8) Packet {
	return Packet{cable<<4 | CINControl, 0xB0 | channel, control, value}
}

// Packetize splits a raw wire message into USB-MIDI packets. Sysex
// messages spread across as many packets as they need; channel messages
// and realtime bytes fit in one.
func Packetize(cable uint8, raw []byte) []Packet {
	if len(raw) == 0 {
		return nil
	}
	if raw[0] == SysexStart {
		return SysexPackets(cable, raw)
	}
	if raw[0] >= 0xF8 {
		return []Packet{{cable<<4 | CINSingleByte, raw[0], 0, 0}}
	}
	p := Packet{cable<<4 | raw[0]>>4, raw[0]}
	if len(raw) > 1 {
		p[2] = raw[1]
	}
	if len(raw) > 2 {
		p[3] = raw[2]
	}
	return []Packet{p}
}

// SysexPackets frames a complete sysex message (including the F0/F7
// markers) into 4-byte packets on the given cable. The final packet's CIN
// records how many of its data bytes are real; the rest stay zero padding.
func SysexPackets(cable uint8, msg []byte) []Packet {
	var out []Packet
	for len(msg) > 3 {
		out = append(out, Packet{cable<<4 | CINSysexStart, msg[0], msg[1], msg[2]})
		msg = msg[3:]
	}
	switch len(msg) {
	case 1:
		out = append(out, Packet{cable<<4 | CINSysexEnd1, msg[0], 0, 0})
	case 2:
		out = append(out, Packet{cable<<4 | CINSysexEnd2, msg[0], msg[1], 0})
	case 3:
		out = append(out, Packet{cable<<4 | CINSysexEnd3, msg[0], msg[1], msg[2]})
	}
	return out
}
