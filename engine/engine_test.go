package engine

import (
	"testing"

	"gitlab.com/gomidi/midi/v2"

	"github.com/charlesvestal/move-anything-m8/lpp"
	"github.com/charlesvestal/move-anything-m8/move"
)

type fakeConfig struct {
	loaded  int
	banks   []int
	saves   []int
	knobs   []Event
	display func(line int, text string)
}

func (f *fakeConfig) Load() error  { f.loaded++; return nil }
func (f *fakeConfig) Update()      {}
func (f *fakeConfig) ChangeBank(i int) { f.banks = append(f.banks, i) }
func (f *fakeConfig) ChangeSave(i int) { f.saves = append(f.saves, i) }
func (f *fakeConfig) HandleKnobs(ev Event, shift bool) {
	f.knobs = append(f.knobs, ev)
}
func (f *fakeConfig) SetDisplayFunc(fn func(line int, text string)) { f.display = fn }

// harness captures everything the engine emits on both ports.
type harness struct {
	eng   *Engine
	cfg   *fakeConfig
	peer  []lpp.Packet
	local []midi.Message
}

func newHarness() *harness {
	h := &harness{cfg: &fakeConfig{}}
	h.eng = New(
		func(p lpp.Packet) error { h.peer = append(h.peer, p); return nil },
		func(m midi.Message) error { h.local = append(h.local, m); return nil },
		h.cfg,
	)
	return h
}

func (h *harness) reset() {
	h.peer = nil
	h.local = nil
}

// identityCount counts complete identity-response emissions by their
// sysex start packets.
func (h *harness) identityCount() int {
	n := 0
	for _, p := range h.peer {
		if p.IsSysex() && p.Data()[0] == lpp.SysexStart {
			n++
		}
	}
	return n
}

func (h *harness) connectViaInquiry() {
	for _, p := range lpp.SysexPackets(0, lpp.IdentityRequest) {
		h.eng.HandlePeerPacket(p)
	}
}

func (h *harness) peerNoteOn(channel, note, vel uint8) {
	h.eng.HandlePeerPacket(lpp.NoteOnPacket(0, channel, note, vel))
}

func (h *harness) peerNoteOff(note uint8) {
	h.eng.HandlePeerPacket(lpp.NoteOffPacket(0, 0, note, 0))
}

func findNoteOn(msgs []midi.Message, channel, key uint8) (uint8, bool) {
	for _, m := range msgs {
		var ch, k, v uint8
		if m.GetNoteOn(&ch, &k, &v) && ch == channel && k == key {
			return v, true
		}
	}
	return 0, false
}

func findNoteOff(msgs []midi.Message, channel, key uint8) bool {
	for _, m := range msgs {
		var ch, k, v uint8
		if m.GetNoteOff(&ch, &k, &v) && ch == channel && k == key {
			return true
		}
	}
	return false
}

func findCCs(msgs []midi.Message, channel, cc uint8) []uint8 {
	var out []uint8
	for _, m := range msgs {
		var ch, c, v uint8
		if m.GetControlChange(&ch, &c, &v) && ch == channel && c == cc {
			out = append(out, v)
		}
	}
	return out
}

// ------------------------------------------------------------------
// Handshake
// ------------------------------------------------------------------

func TestHandshake_ProactiveThenRetry(t *testing.T) {
	h := newHarness()
	h.eng.Init()
	if got := h.identityCount(); got != 1 {
		t.Fatalf("identity emissions at init = %d, want 1", got)
	}

	h.reset()
	for i := 0; i < 59; i++ {
		h.eng.Tick()
	}
	if got := h.identityCount(); got != 0 {
		t.Fatalf("identity emissions before tick 60 = %d, want 0", got)
	}
	h.eng.Tick()
	if got := h.identityCount(); got != 1 {
		t.Fatalf("identity emissions at tick 60 = %d, want 1", got)
	}
}

func TestHandshake_InquiryConnects(t *testing.T) {
	h := newHarness()
	h.eng.Init()
	h.reset()

	h.connectViaInquiry()
	if !h.eng.Connected() {
		t.Fatal("not connected after identity request")
	}
	if got := h.identityCount(); got != 1 {
		t.Errorf("identity emissions on connect = %d, want 1", got)
	}
	if h.cfg.loaded != 1 {
		t.Errorf("config loads = %d, want 1", h.cfg.loaded)
	}
	if h.eng.ActiveLayout() != LayoutTop {
		t.Errorf("layout = %s, want top", h.eng.ActiveLayout())
	}

	// Connected: the retry loop goes quiet.
	h.reset()
	for i := 0; i < 300; i++ {
		h.eng.Tick()
	}
	if got := h.identityCount(); got != 0 {
		t.Errorf("identity emissions while connected = %d, want 0", got)
	}
}

func TestHandshake_ImplicitConnectOnNote(t *testing.T) {
	h := newHarness()
	h.eng.Init()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, 81, lpp.ColorGreen)
	if !h.eng.Connected() {
		t.Fatal("bare note-on did not connect")
	}
	if h.cfg.loaded != 1 {
		t.Errorf("config loads = %d, want 1", h.cfg.loaded)
	}
	if got := h.identityCount(); got != 1 {
		t.Errorf("identity emissions = %d, want 1", got)
	}
}

func TestClockNeverConnects(t *testing.T) {
	h := newHarness()
	h.eng.Init()
	for i := 0; i < 10; i++ {
		h.eng.HandlePeerPacket(lpp.Packet{lpp.CINSingleByte, 0xF8, 0, 0})
	}
	if h.eng.Connected() {
		t.Error("clock bytes connected the session")
	}
}

// ------------------------------------------------------------------
// Inbound: M8 -> Move
// ------------------------------------------------------------------

func TestInbound_PadTranslation(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, 81, lpp.ColorGreen)
	vel, ok := findNoteOn(h.local, 0, 92)
	if !ok {
		t.Fatal("no note-on for move pad 92")
	}
	if vel != move.ColorGreen {
		t.Errorf("velocity = %d, want %d", vel, move.ColorGreen)
	}
}

func TestInbound_PulseVariant(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelPulse, 81, lpp.ColorGreen)
	vel, ok := findNoteOn(h.local, move.HeldChannel, 92)
	if !ok {
		t.Fatal("no held-channel note-on for pulse paint")
	}
	if vel != 127 {
		t.Errorf("held velocity = %d, want 127", vel)
	}
	if _, ok := findNoteOn(h.local, 0, 92); ok {
		t.Error("pulse paint also emitted a plain note-on")
	}
}

func TestInbound_FlashVariant(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelFlash, 81, lpp.ColorGreen)
	if _, ok := findNoteOn(h.local, 0, 92); !ok {
		t.Error("flash paint missing the plain note-on")
	}
	if !findNoteOff(h.local, move.HeldChannel, 92) {
		t.Error("flash paint missing the held-channel off")
	}
}

func TestInbound_PlayControl(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, lpp.PlayNote, lpp.ColorGreen)
	ccs := findCCs(h.local, 0, move.CCPlay)
	if len(ccs) != 1 || ccs[0] != move.ColorGreen {
		t.Errorf("play LED values = %v, want [%d]", ccs, move.ColorGreen)
	}

	h.reset()
	h.peerNoteOn(lpp.ChannelStatic, lpp.PlayNote, lpp.ColorOff)
	ccs = findCCs(h.local, 0, move.CCPlay)
	if len(ccs) != 1 || ccs[0] != move.ColorDimWhite {
		t.Errorf("stopped play LED values = %v, want [%d]", ccs, move.ColorDimWhite)
	}
}

func TestInbound_LogoLiveMode(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, lpp.LogoNote, lpp.ColorCyan)
	ccs := findCCs(h.local, 0, move.CCPlay)
	if len(ccs) != 1 || ccs[0] != move.ColorYellow {
		t.Errorf("live-mode play LED = %v, want [%d]", ccs, move.ColorYellow)
	}
}

func TestInbound_MonoControl(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, lpp.LoopNote, lpp.ColorGreen)
	ccs := findCCs(h.local, 0, move.CCLoop)
	if len(ccs) != 1 || ccs[0] != move.ColorBrightWhite {
		t.Errorf("loop LED values = %v, want [%d]", ccs, move.ColorBrightWhite)
	}
}

func TestInbound_MomentaryControlGetsExplicitOff(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.peerNoteOn(lpp.ChannelStatic, 91, lpp.ColorCyan)
	ccs := findCCs(h.local, 0, 102)
	if len(ccs) != 2 || ccs[0] != move.ColorCyan || ccs[1] != 0 {
		t.Errorf("track button values = %v, want [%d 0]", ccs, move.ColorCyan)
	}

	h.reset()
	h.peerNoteOff(91)
	ccs = findCCs(h.local, 0, 102)
	if len(ccs) != 1 || ccs[0] != 0 {
		t.Errorf("track button off values = %v, want [0]", ccs)
	}
}

func TestInbound_UnmappedDropped(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	// 11 is a bottom-half grid note, invisible in the top layout.
	h.peerNoteOn(lpp.ChannelStatic, 11, lpp.ColorGreen)
	if len(h.local) != 0 {
		t.Errorf("unmapped note produced %d local messages", len(h.local))
	}
}

// ------------------------------------------------------------------
// Outbound: Move -> M8
// ------------------------------------------------------------------

func TestOutbound_PadPressScalesVelocity(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.NoteOn(0, 68, 20))
	if len(h.peer) != 1 {
		t.Fatalf("peer packets = %d, want 1", len(h.peer))
	}
	p := h.peer[0]
	if p.Cable() != lpp.OutCable {
		t.Errorf("cable = %d, want %d", p.Cable(), lpp.OutCable)
	}
	if p.CIN() != lpp.CINNoteOn || p[2] != 51 || p[3] != 80 {
		t.Errorf("packet = % X, want note-on 51 vel 80", p)
	}

	h.reset()
	h.eng.HandleLocalMessage(midi.NoteOn(0, 68, 40))
	if h.peer[0][3] != 127 {
		t.Errorf("velocity = %d, want clamp to 127", h.peer[0][3])
	}

	h.reset()
	h.eng.HandleLocalMessage(midi.NoteOff(0, 68))
	if h.peer[0].CIN() != lpp.CINNoteOff || h.peer[0][2] != 51 {
		t.Errorf("release packet = % X, want note-off 51", h.peer[0])
	}
}

func TestOutbound_BankChangeAndSave(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.NoteOn(0, 3, 100))
	if len(h.cfg.banks) != 1 || h.cfg.banks[0] != 3 {
		t.Fatalf("bank changes = %v, want [3]", h.cfg.banks)
	}
	if len(h.peer) != 0 {
		t.Errorf("bank gesture leaked %d packets to the m8", len(h.peer))
	}

	// With shift held the same pad saves instead.
	h.eng.HandleLocalMessage(midi.ControlChange(0, move.CCShift, move.ButtonDown))
	h.eng.HandleLocalMessage(midi.NoteOn(0, 3, 100))
	if len(h.cfg.saves) != 1 || h.cfg.saves[0] != 3 {
		t.Errorf("bank saves = %v, want [3]", h.cfg.saves)
	}
	if len(h.cfg.banks) != 1 {
		t.Errorf("bank changes after save = %v, want unchanged", h.cfg.banks)
	}
}

func TestOutbound_UnmappedForwardedAsKnobData(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.ControlChange(0, move.CCKnobFirst, 42))
	if len(h.cfg.knobs) != 1 || h.cfg.knobs[0].Note != move.CCKnobFirst {
		t.Fatalf("knob forwards = %v", h.cfg.knobs)
	}

	// Touch note outside both the pad table and the bank subset.
	h.eng.HandleLocalMessage(midi.NoteOn(0, move.KnobTouchLast, 50))
	if len(h.cfg.knobs) != 2 {
		t.Errorf("knob forwards = %d, want 2", len(h.cfg.knobs))
	}
}

func TestOutbound_ShiftPressAndRelease(t *testing.T) {
	h := newHarness()
	h.eng.Init()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.ControlChange(0, move.CCShift, move.ButtonDown))
	if len(h.peer) != 1 || h.peer[0].CIN() != lpp.CINNoteOn || h.peer[0][2] != lpp.ShiftNote {
		t.Fatalf("shift press packets = %v, want note-on %d", h.peer, lpp.ShiftNote)
	}
	lines := h.eng.status.Lines()
	if lines[3] != "shift: pads save banks" {
		t.Errorf("shift status line = %q", lines[3])
	}

	h.reset()
	h.eng.HandleLocalMessage(midi.ControlChange(0, move.CCShift, 0))
	if len(h.peer) != 1 || h.peer[0].CIN() != lpp.CINNoteOff {
		t.Fatalf("shift release packets = %v, want note-off", h.peer)
	}
	lines = h.eng.status.Lines()
	if lines[3] == "shift: pads save banks" {
		t.Error("shift status line not restored on release")
	}
}

func TestAftertouchIgnored(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.AfterTouch(0, 90))
	h.eng.HandleLocalMessage(midi.PolyAfterTouch(0, 70, 90))
	if len(h.peer) != 0 || len(h.local) != 0 || len(h.cfg.knobs) != 0 {
		t.Error("aftertouch produced output")
	}
}

// ------------------------------------------------------------------
// Layout toggle, resync and debounce
// ------------------------------------------------------------------

func TestWheel_TouchPeeksAndSnapsBack(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()

	h.eng.HandleLocalMessage(midi.NoteOn(0, move.WheelTouch, 64))
	if h.eng.ActiveLayout() != LayoutBottom {
		t.Fatal("touch did not toggle to bottom")
	}
	h.eng.HandleLocalMessage(midi.NoteOff(0, move.WheelTouch))
	if h.eng.ActiveLayout() != LayoutTop {
		t.Fatal("release did not toggle back to top")
	}
}

func TestWheel_ClickDebounce(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()

	// Touch, click while holding, release: one net toggle, not two.
	h.eng.HandleLocalMessage(midi.NoteOn(0, move.WheelTouch, 64))
	h.eng.HandleLocalMessage(midi.ControlChange(0, move.CCWheelClick, move.ButtonDown))
	h.eng.HandleLocalMessage(midi.NoteOff(0, move.WheelTouch))
	if h.eng.ActiveLayout() != LayoutBottom {
		t.Error("click+release double-toggled the layout")
	}

	// The latch is consumed: the next plain touch cycle toggles twice.
	h.eng.HandleLocalMessage(midi.NoteOn(0, move.WheelTouch, 64))
	h.eng.HandleLocalMessage(midi.NoteOff(0, move.WheelTouch))
	if h.eng.ActiveLayout() != LayoutBottom {
		t.Error("latch leaked into the following gesture")
	}
}

func TestResync_ReplaysCachedLEDs(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()

	// The M8 paints a pad in the top layout.
	h.peerNoteOn(lpp.ChannelStatic, 81, lpp.ColorGreen)
	h.reset()

	// Peek at the bottom layout and snap back; no new peer traffic.
	h.eng.HandleLocalMessage(midi.NoteOn(0, move.WheelTouch, 64))
	if _, ok := findNoteOn(h.local, 0, 92); ok {
		t.Error("bottom layout replayed a top-layout pad")
	}
	h.reset()
	h.eng.HandleLocalMessage(midi.NoteOff(0, move.WheelTouch))

	vel, ok := findNoteOn(h.local, 0, 92)
	if !ok {
		t.Fatal("cached LED not replayed after returning to top layout")
	}
	if vel != move.ColorGreen {
		t.Errorf("replayed velocity = %d, want %d", vel, move.ColorGreen)
	}
}

func TestViewPulse(t *testing.T) {
	h := newHarness()
	h.connectViaInquiry()
	h.reset()

	h.eng.HandleLocalMessage(midi.ControlChange(0, move.ViewCCs[1], move.ButtonDown))
	if got := findCCs(h.local, 0, move.ViewCCs[1]); len(got) != 1 || got[0] != viewBrightColor {
		t.Errorf("current view LED = %v, want [%d]", got, viewBrightColor)
	}
	if got := findCCs(h.local, 0, move.ViewCCs[0]); len(got) != 1 || got[0] != viewDimColor {
		t.Errorf("other view LED = %v, want [%d]", got, viewDimColor)
	}
	if got := findCCs(h.local, move.HeldChannel, move.ViewCCs[1]); len(got) != 0 {
		t.Errorf("top layout emitted a held-channel view event: %v", got)
	}

	// The bottom layout adds the distinct-channel off marker.
	h.eng.HandleLocalMessage(midi.NoteOn(0, move.WheelTouch, 64))
	h.reset()
	h.eng.HandleLocalMessage(midi.ControlChange(0, move.ViewCCs[1], move.ButtonDown))
	if got := findCCs(h.local, move.HeldChannel, move.ViewCCs[1]); len(got) != 1 || got[0] != 0 {
		t.Errorf("bottom layout held-channel marker = %v, want [0]", got)
	}
}
