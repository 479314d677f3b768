package lpp

// Assembler reconstructs complete sysex messages from a stream of 4-byte
// USB-MIDI packets. The zero value is ready to use.
//
// A packet whose first data byte is F0 always begins a new message; any
// unterminated prior buffer is discarded rather than recovered. Once open,
// data bytes accumulate until an F7 is seen, which may sit at any of the
// three data offsets depending on the packet's CIN. Bytes after the F7 are
// packet padding and never enter the buffer. A buffer that outgrows
// MaxSysexLen without terminating is dropped silently so a malformed
// stream cannot pin memory or corrupt the next message.
type Assembler struct {
	buf  []byte
	open bool
}

// Feed consumes one packet. It returns the complete message (F0..F7)
// when the packet terminates one, nil otherwise.
func (a *Assembler) Feed(p Packet) []byte {
	data := p.Data()

	if data[0] == SysexStart {
		a.buf = a.buf[:0]
		a.open = true
	}
	if !a.open {
		return nil
	}

	for _, b := range data {
		a.buf = append(a.buf, b)
		if b == SysexEnd {
			msg := make([]byte, len(a.buf))
			copy(msg, a.buf)
			a.reset()
			return msg
		}
	}

	if len(a.buf) > MaxSysexLen {
		a.reset()
	}
	return nil
}

// Pending returns the number of buffered bytes of an unterminated message.
func (a *Assembler) Pending() int {
	if !a.open {
		return 0
	}
	return len(a.buf)
}

func (a *Assembler) reset() {
	a.buf = a.buf[:0]
	a.open = false
}
