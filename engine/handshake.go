package engine

import (
	"bytes"

	"github.com/charlesvestal/move-anything-m8/debug"
	"github.com/charlesvestal/move-anything-m8/lpp"
)

// handlePeerSysex inspects a reassembled sysex message. The only one that
// matters is the universal device inquiry; everything else is dropped.
func (e *Engine) handlePeerSysex(msg []byte) {
	if bytes.Equal(msg, lpp.IdentityRequest) {
		debug.Log("handshake", "identity request from m8")
		if e.conn.connected {
			// Already connected; answer again but keep session state.
			e.sendIdentity()
			return
		}
		e.connect()
	}
}

// connect is the single Unconnected -> Connected transition: answer with
// our identity, reset to the top layout and pull in the saved config.
// There is no way back; disconnects are invisible at this level.
func (e *Engine) connect() {
	if e.conn.connected {
		return
	}
	e.conn.connected = true
	e.sendIdentity()
	e.layout = LayoutTop
	if err := e.cfg.Load(); err != nil {
		debug.Log("config", "load: %v", err)
	}
	e.status.SetLine(1, "M8 connected")
}

// tickHandshake re-emits the identity response every retryTicks until
// something connects us. The retry never gives up; the M8 may be powered
// on minutes later.
func (e *Engine) tickHandshake() {
	if e.conn.connected {
		return
	}
	e.conn.ticks++
	if e.conn.ticks%retryTicks == 0 {
		debug.Log("handshake", "retry identity (tick %d)", e.conn.ticks)
		e.sendIdentity()
	}
}

// sendIdentity frames the identity response across USB-MIDI packets on
// the outbound cable and sends it to the M8.
func (e *Engine) sendIdentity() {
	for _, p := range lpp.SysexPackets(lpp.OutCable, lpp.IdentityResponse) {
		e.sendPeer(p)
	}
}
