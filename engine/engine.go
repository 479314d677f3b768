package engine

import (
	"gitlab.com/gomidi/midi/v2"

	"github.com/charlesvestal/move-anything-m8/debug"
	"github.com/charlesvestal/move-anything-m8/lpp"
	"github.com/charlesvestal/move-anything-m8/move"
)

// Config is the knob-bank/configuration collaborator. The engine forwards
// everything it does not translate itself: knob data, bank recalls and
// bank saves. The collaborator pushes status text back through the
// display func registered at Init.
type Config interface {
	Load() error
	Update()
	ChangeBank(index int)
	ChangeSave(index int)
	HandleKnobs(ev Event, shift bool)
	SetDisplayFunc(fn func(line int, text string))
}

// Snapshot is what the engine hands the renderer each tick: display
// text plus enough surface state to draw the pad grid.
type Snapshot struct {
	Lines     [StatusLines]string
	Connected bool
	Layout    Layout
	Pads      [move.PadRows][move.PadCols]uint8
}

// Engine orchestrates translation in both directions. It is not safe for
// concurrent use: the host must call Init, Tick, HandlePeerPacket and
// HandleLocalMessage from a single goroutine.
type Engine struct {
	toPeer  func(lpp.Packet) error
	toLocal func(midi.Message) error
	cfg     Config

	asm    lpp.Assembler
	tables map[Layout]LayoutTables
	layout Layout
	flags  sessionFlags
	conn   connState
	leds   ledCache
	status Status
	render func(Snapshot)

	shiftSaved [StatusLines]string
}

// New builds an engine around the two output ports and the config
// collaborator. Table construction panics on a non-injective forward
// table; that is a programming error, not a runtime condition.
func New(toPeer func(lpp.Packet) error, toLocal func(midi.Message) error, cfg Config) *Engine {
	return &Engine{
		toPeer:  toPeer,
		toLocal: toLocal,
		cfg:     cfg,
		tables:  newLayoutTables(),
		layout:  LayoutTop,
		leds:    make(ledCache),
	}
}

// SetRenderFunc registers the display renderer. Optional; tests skip it.
func (e *Engine) SetRenderFunc(fn func(Snapshot)) {
	e.render = fn
}

// Init sends the identity response proactively, in case the M8 asked
// before we were listening, and seeds the display.
func (e *Engine) Init() {
	e.cfg.SetDisplayFunc(e.status.SetLine)
	e.status.SetLine(0, "M8 mode")
	e.status.SetLine(1, "waiting for M8...")
	e.status.SetLine(2, "")
	e.status.SetLine(3, "")
	e.sendIdentity()
}

// Tick drives the handshake retry counter and flushes the display. It
// runs on the same goroutine as event handling and must stay cheap.
func (e *Engine) Tick() {
	e.tickHandshake()
	if e.status.dirty && e.render != nil {
		e.render(e.snapshot())
		e.status.dirty = false
	}
}

// Connected reports whether the handshake has completed.
func (e *Engine) Connected() bool { return e.conn.connected }

// ActiveLayout returns the layout the pads currently show.
func (e *Engine) ActiveLayout() Layout { return e.layout }

func (e *Engine) snapshot() Snapshot {
	s := Snapshot{
		Lines:     e.status.Lines(),
		Connected: e.conn.connected,
		Layout:    e.layout,
	}
	t := e.tables[e.layout]
	for row := 0; row < move.PadRows; row++ {
		for col := 0; col < move.PadCols; col++ {
			peer, ok := t.Pads.Reverse(move.PadNote(row, col))
			if !ok {
				continue
			}
			if raw, ok := e.leds[peer]; ok {
				s.Pads[row][col] = TranslateColor(raw[2])
			}
		}
	}
	return s
}

// HandlePeerPacket consumes one USB-MIDI packet from the M8.
func (e *Engine) HandlePeerPacket(p lpp.Packet) {
	if p.CIN() == lpp.CINSingleByte {
		return // clock and other realtime traffic
	}
	if p.IsSysex() {
		if msg := e.asm.Feed(p); msg != nil {
			e.handlePeerSysex(msg)
		}
		return
	}

	ev := FromPacket(p)
	if ev.Kind != EventNoteOn && ev.Kind != EventNoteOff {
		return
	}
	if !e.conn.connected {
		// The M8 skipped the inquiry because it already saw our
		// identity response in an earlier session.
		debug.Log("handshake", "implicit connect on note %d", ev.Note)
		e.connect()
	}
	e.leds[ev.Note] = [3]byte{p[1], p[2], p[3]}
	e.status.dirty = true
	e.handlePeerNote(ev)
}

// handlePeerNote translates one LED/control event from the M8 into Move
// output. Unmapped ids are dropped; that is steady-state, not an error.
func (e *Engine) handlePeerNote(ev Event) {
	t := e.tables[e.layout]

	if pad, ok := t.Pads.Lookup(ev.Note); ok {
		vel := TranslateColor(ev.Value)
		switch {
		case ev.Channel == lpp.ChannelPulse && vel > 0:
			// The Move has no pulse animation; park the pad on the
			// held channel at full brightness instead.
			e.sendLocal(midi.NoteOn(move.HeldChannel, pad, 127))
		case ev.Channel == lpp.ChannelFlash:
			e.emitLocalNote(ev.Kind, pad, vel)
			if vel > 0 {
				e.sendLocal(midi.NoteOff(move.HeldChannel, pad))
			}
		default:
			e.emitLocalNote(ev.Kind, pad, vel)
		}
		return
	}

	cc, ok := t.Controls.Lookup(ev.Note)
	if !ok {
		return
	}
	switch ev.Note {
	case lpp.LogoNote:
		e.flags.liveMode = ev.Value > 0
		e.updatePlayLED()
	case lpp.PlayNote:
		e.flags.isPlaying = ev.Value == lpp.ColorGreen
		e.updatePlayLED()
	case lpp.LoopNote, lpp.UndoNote, lpp.MuteNote:
		e.sendLocal(midi.ControlChange(0, cc, TranslateMono(ev.Value)))
	default:
		e.sendLocal(midi.ControlChange(0, cc, TranslateColor(ev.Value)))
		if ev.Kind == EventNoteOn {
			// Momentary on the Launchpad; the Move needs the off spelled out.
			e.sendLocal(midi.ControlChange(0, cc, 0))
		}
	}
}

func (e *Engine) emitLocalNote(kind EventKind, pad, vel uint8) {
	if kind == EventNoteOff {
		e.sendLocal(midi.NoteOff(0, pad))
		return
	}
	e.sendLocal(midi.NoteOn(0, pad, vel))
}

// HandleLocalMessage consumes one MIDI message from the Move surface.
func (e *Engine) HandleLocalMessage(msg midi.Message) {
	ev := FromMessage(msg)
	switch ev.Kind {
	case EventNoteOn, EventNoteOff:
		e.handleLocalNote(ev)
	case EventControlChange:
		e.handleLocalControl(ev)
	}
	// Aftertouch and everything else is noise here.
}

func (e *Engine) handleLocalNote(ev Event) {
	if ev.Note == move.WheelTouch {
		e.handleWheelTouch(ev)
		return
	}

	t := e.tables[e.layout]
	if peer, ok := t.Pads.Reverse(ev.Note); ok {
		if ev.Kind == EventNoteOff || ev.Value == 0 {
			e.sendPeer(lpp.NoteOffPacket(lpp.OutCable, 0, peer, 0))
			return
		}
		vel := ev.Value * 4
		if ev.Value > 31 {
			vel = 127
		}
		e.sendPeer(lpp.NoteOnPacket(lpp.OutCable, 0, peer, vel))
		return
	}

	if idx := bankIndex(ev.Note); idx >= 0 {
		if ev.Kind != EventNoteOn || ev.Value == 0 {
			return
		}
		if e.flags.shiftHeld {
			e.cfg.ChangeSave(idx)
		} else {
			e.cfg.ChangeBank(idx)
		}
		return
	}

	e.cfg.HandleKnobs(ev, e.flags.shiftHeld)
}

// handleWheelTouch toggles the layout on touch and again on release, so
// a plain touch peeks at the other layout and snaps back. A wheel click
// latches between the two so the click's own toggle isn't doubled by
// the release.
func (e *Engine) handleWheelTouch(ev Event) {
	if ev.Kind == EventNoteOn && ev.Value > 0 {
		e.toggleLayout()
		return
	}
	if e.flags.wheelClickLatched {
		e.flags.wheelClickLatched = false
		return
	}
	e.toggleLayout()
}

func (e *Engine) handleLocalControl(ev Event) {
	if idx := viewIndex(ev.Note); idx >= 0 {
		if ev.Value > 0 {
			e.flags.currentView = idx
			e.updateViewPulse()
		}
		return
	}

	if ev.Note == move.CCWheelClick {
		if ev.Value > 0 {
			e.flags.wheelClickLatched = true
		}
		return
	}

	t := e.tables[e.layout]
	peer, ok := t.Controls.Reverse(ev.Note)
	if !ok {
		e.cfg.HandleKnobs(ev, e.flags.shiftHeld)
		return
	}

	switch ev.Value {
	case move.ButtonDown:
		e.sendPeer(lpp.NoteOnPacket(lpp.OutCable, 0, peer, 127))
		if ev.Note == move.CCShift {
			e.flags.shiftHeld = true
			e.shiftSaved = e.status.Lines()
			e.status.SetLine(3, "shift: pads save banks")
		}
	case 0:
		e.sendPeer(lpp.NoteOffPacket(lpp.OutCable, 0, peer, 0))
		if ev.Note == move.CCShift {
			e.flags.shiftHeld = false
			for i, line := range e.shiftSaved {
				e.status.SetLine(i, line)
			}
		}
	}
}

// toggleLayout flips the active layout, replays the cached LED state for
// the newly visible half and repaints the view indicators.
func (e *Engine) toggleLayout() {
	if e.layout == LayoutTop {
		e.layout = LayoutBottom
	} else {
		e.layout = LayoutTop
	}
	debug.Log("view", "layout -> %s", e.layout)
	e.resyncLEDs()
	e.updateViewPulse()
	e.status.dirty = true
}

// resyncLEDs replays every cached LED value for the active layout
// through the inbound path, as if the M8 had just sent it.
func (e *Engine) resyncLEDs() {
	t := e.tables[e.layout]
	t.Pads.Forward(func(peer, _ uint8) {
		raw, ok := e.leds[peer]
		if !ok {
			return
		}
		ev := Event{Kind: EventNoteOn, Channel: raw[0] & 0x0F, Note: raw[1], Value: raw[2]}
		if raw[0]&0xF0 == 0x80 {
			ev.Kind = EventNoteOff
		}
		e.handlePeerNote(ev)
	})
}

// updatePlayLED recomputes the transport LED from the 2x2 combination of
// live-mode and playing.
func (e *Engine) updatePlayLED() {
	e.sendLocal(midi.ControlChange(0, move.CCPlay, playLEDColor(e.flags.liveMode, e.flags.isPlaying)))
}

// updateViewPulse dims all three view selectors, brightens the current
// one, and on the bottom layout additionally kills the held-channel LED
// so the two layouts are tellable apart at a glance.
func (e *Engine) updateViewPulse() {
	for i, cc := range move.ViewCCs {
		val := uint8(viewDimColor)
		if i == e.flags.currentView {
			val = viewBrightColor
		}
		e.sendLocal(midi.ControlChange(0, cc, val))
	}
	if e.layout == LayoutBottom {
		e.sendLocal(midi.ControlChange(move.HeldChannel, move.ViewCCs[e.flags.currentView], 0))
	}
}

func (e *Engine) sendLocal(msg midi.Message) {
	if e.toLocal == nil {
		return
	}
	if err := e.toLocal(msg); err != nil {
		debug.Log("midi", "send to move: %v", err)
	}
}

func (e *Engine) sendPeer(p lpp.Packet) {
	if e.toPeer == nil {
		return
	}
	if err := e.toPeer(p); err != nil {
		debug.Log("midi", "send to m8: %v", err)
	}
}

func bankIndex(note uint8) int {
	for i, n := range move.BankNotes {
		if n == note {
			return i
		}
	}
	return -1
}

func viewIndex(cc uint8) int {
	for i, n := range move.ViewCCs {
		if n == cc {
			return i
		}
	}
	return -1
}
