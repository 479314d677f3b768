package engine

// sessionFlags is the transient UI-modifier state. Mutated only by the
// specific control events in engine.go, read by the outbound path.
type sessionFlags struct {
	shiftHeld         bool
	liveMode          bool
	isPlaying         bool
	currentView       int
	wheelClickLatched bool
}

// connState tracks the handshake. connected never goes back to false
// within a session; there is no disconnect detection.
type connState struct {
	connected bool
	ticks     int
}

// retryTicks is the handshake retry interval: at the host's ~16ms tick
// cadence, 60 ticks is about one second.
const retryTicks = 60

// ledCache remembers the last raw 3-byte LED message the M8 sent for
// each of its note ids, so a layout toggle can repaint the Move without
// waiting for the M8.
type ledCache map[uint8][3]byte
