package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/charlesvestal/move-anything-m8/config"
	"github.com/charlesvestal/move-anything-m8/debug"
	"github.com/charlesvestal/move-anything-m8/engine"
	"github.com/charlesvestal/move-anything-m8/lpp"
	"github.com/charlesvestal/move-anything-m8/theme"
	"github.com/charlesvestal/move-anything-m8/tui"
)

// tickRate is the engine tick cadence; 60 ticks per retry interval works
// out to roughly one identity retry per second.
const tickRate = 16 * time.Millisecond

func main() {
	if len(os.Args) > 1 && os.Args[1] == "list" {
		listPorts()
		return
	}

	if os.Getenv("MOVE_M8_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Fprintf(os.Stderr, "debug log: %v\n", err)
		}
	}
	defer midi.CloseDriver()

	m8In, m8Out, err := findPorts("m8")
	if err != nil {
		fmt.Fprintf(os.Stderr, "m8: %v\n", err)
		os.Exit(1)
	}
	moveIn, moveOut, err := findPorts("move")
	if err != nil {
		fmt.Fprintf(os.Stderr, "move: %v\n", err)
		os.Exit(1)
	}

	sendToM8, err := midi.SendTo(m8Out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open m8 output: %v\n", err)
		os.Exit(1)
	}
	sendToMove, err := midi.SendTo(moveOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open move output: %v\n", err)
		os.Exit(1)
	}

	store := config.New()
	peer := &peerPort{send: sendToM8}
	eng := engine.New(peer.Send, sendToMove, store)

	// One goroutine owns the engine: the listener callbacks only enqueue.
	events := make(chan func(), 256)
	snapshots := make(chan engine.Snapshot, 8)
	eng.SetRenderFunc(func(s engine.Snapshot) {
		select {
		case snapshots <- s:
		default:
		}
	})

	stopM8, err := midi.ListenTo(m8In, func(msg midi.Message, timestampms int32) {
		for _, p := range lpp.Packetize(0, msg) {
			p := p
			enqueue(events, func() { eng.HandlePeerPacket(p) })
		}
	}, midi.UseSysEx())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open m8 input: %v\n", err)
		os.Exit(1)
	}
	defer stopM8()

	stopMove, err := midi.ListenTo(moveIn, func(msg midi.Message, timestampms int32) {
		enqueue(events, func() { eng.HandleLocalMessage(msg) })
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "open move input: %v\n", err)
		os.Exit(1)
	}
	defer stopMove()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go dispatch(ctx, eng, events)

	m := tui.NewModel(snapshots, theme.New(loadPalette()), cancel)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// dispatch is the single-threaded engine loop: events and ticks are
// drained to completion, one at a time, with no suspension points.
func dispatch(ctx context.Context, eng *engine.Engine, events <-chan func()) {
	eng.Init()
	ticker := time.NewTicker(tickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-events:
			fn()
		case <-ticker.C:
			eng.Tick()
		}
	}
}

func enqueue(events chan<- func(), fn func()) {
	select {
	case events <- fn:
	default:
		// Dropping beats blocking a driver callback.
		debug.Log("midi", "event queue full, dropping")
	}
}

// peerPort reassembles engine packets into wire messages for gomidi:
// channel packets pass straight through, sysex packets accumulate until
// the message is complete.
type peerPort struct {
	send func(midi.Message) error
	asm  lpp.Assembler
}

func (p *peerPort) Send(pkt lpp.Packet) error {
	if pkt.IsSysex() {
		if msg := p.asm.Feed(pkt); msg != nil {
			return p.send(midi.SysEx(msg[1 : len(msg)-1]))
		}
		return nil
	}
	data := pkt.Data()
	if pkt.CIN() == lpp.CINSingleByte {
		return p.send(midi.Message{data[0]})
	}
	return p.send(midi.Message{data[0], data[1], data[2]})
}

func findPorts(substr string) (drivers.In, drivers.Out, error) {
	var in drivers.In
	var out drivers.Out
	for _, p := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), substr) {
			in = p
			break
		}
	}
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), substr) {
			out = p
			break
		}
	}
	if in == nil || out == nil {
		return nil, nil, fmt.Errorf("no port matching %q (try: move-anything-m8 list)", substr)
	}
	return in, out, nil
}

// loadPalette picks up a custom .gpl palette from MOVE_M8_PALETTE, or
// falls back to the built-in ramp.
func loadPalette() *theme.Palette {
	path := os.Getenv("MOVE_M8_PALETTE")
	if path == "" {
		return theme.Default()
	}
	p, err := theme.LoadGPL(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "palette: %v\n", err)
		return theme.Default()
	}
	return p
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	for i, p := range midi.GetInPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range midi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}
