// virtualm8 simulates a Dirtywave M8 for exercising the translator
// without hardware: it probes with a device inquiry, then answers button
// presses with LED paints the way an M8 drives a Launchpad Pro.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"github.com/charlesvestal/move-anything-m8/lpp"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "detect":
		detect()
	case "run":
		substr := "move"
		if len(os.Args) > 2 {
			substr = strings.ToLower(os.Args[2])
		}
		run(substr)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("virtualm8 - pretend to be an M8")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list          - List all MIDI ports")
	fmt.Println("  detect        - Show which ports a run would attach to")
	fmt.Println("  run [port]    - Attach to a port (default: first matching 'move')")
}

func detect() {
	defer midi.CloseDriver()
	for _, substr := range []string{"move", "m8"} {
		found := false
		for _, p := range midi.GetInPorts() {
			if strings.Contains(strings.ToLower(p.String()), substr) {
				fmt.Printf("%-5s in:  %s\n", substr, p.String())
				found = true
				break
			}
		}
		for _, p := range midi.GetOutPorts() {
			if strings.Contains(strings.ToLower(p.String()), substr) {
				fmt.Printf("%-5s out: %s\n", substr, p.String())
				found = true
				break
			}
		}
		if !found {
			fmt.Printf("%-5s not present\n", substr)
		}
	}
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

func run(substr string) {
	defer midi.CloseDriver()

	var inPort drivers.In
	var outPort drivers.Out
	for _, p := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(p.String()), substr) {
			inPort = p
			break
		}
	}
	for _, p := range midi.GetOutPorts() {
		if strings.Contains(strings.ToLower(p.String()), substr) {
			outPort = p
			break
		}
	}
	if inPort == nil || outPort == nil {
		fmt.Printf("no port matching %q\n", substr)
		return
	}
	fmt.Printf("input:  %s\noutput: %s\n", inPort.String(), outPort.String())

	send, err := midi.SendTo(outPort)
	if err != nil {
		fmt.Printf("open output: %v\n", err)
		return
	}

	m8 := newState()

	stop, err := midi.ListenTo(inPort, func(msg midi.Message, timestampms int32) {
		var ch, note, vel uint8
		switch {
		case msg.GetNoteOn(&ch, &note, &vel) && vel > 0:
			fmt.Printf("<- note on  %3d vel %3d\n", note, vel)
			for _, paint := range m8.press(note) {
				send(midi.NoteOn(0, paint.note, paint.color))
			}
		case msg.GetNoteOff(&ch, &note, &vel), msg.GetNoteOn(&ch, &note, &vel):
			fmt.Printf("<- note off %3d\n", note)
			for _, paint := range m8.release(note) {
				send(midi.NoteOn(0, paint.note, paint.color))
			}
		case msg.Is(midi.SysExMsg):
			raw := []byte(msg)
			fmt.Printf("<- sysex %d bytes\n", len(raw))
			if len(raw) > 8 && raw[1] == 0x7E {
				fmt.Println("   identity response: controller accepted")
				m8.connected = true
				for _, paint := range m8.initial() {
					send(midi.NoteOn(0, paint.note, paint.color))
				}
			}
		}
	}, midi.UseSysEx())
	if err != nil {
		fmt.Printf("open input: %v\n", err)
		return
	}
	defer stop()

	// Probe the way a real M8 does on boot.
	fmt.Println("-> device inquiry")
	send(midi.SysEx(lpp.IdentityRequest[1 : len(lpp.IdentityRequest)-1]))

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	fmt.Println("\nbye")
}

type paint struct {
	note  uint8
	color uint8
}

// state mirrors enough M8 behavior to make the translator's output
// visible: track selection on the top row, nav flashes, grid presses.
type state struct {
	connected bool
	track     int
}

func newState() *state { return &state{} }

func (s *state) initial() []paint {
	var out []paint
	for row := 1; row <= 8; row++ {
		for col := 1; col <= 8; col++ {
			out = append(out, paint{lpp.GridNote(row, col), lpp.ColorDimGreen})
		}
	}
	out = append(out, s.trackRow()...)
	out = append(out, paint{lpp.PlayNote, lpp.ColorOff})
	return out
}

func (s *state) press(note uint8) []paint {
	// Track selection
	if note >= lpp.TopRowLow && note <= lpp.TopRowHi {
		s.track = int(note - lpp.TopRowLow)
		return s.trackRow()
	}
	// Grid press lights white
	if note >= 11 && note <= 88 && note%10 >= 1 && note%10 <= 8 {
		return []paint{{note, lpp.ColorWhite}}
	}
	if note == lpp.PlayNote {
		return []paint{{lpp.PlayNote, lpp.ColorGreen}}
	}
	return nil
}

func (s *state) release(note uint8) []paint {
	if note >= 11 && note <= 88 && note%10 >= 1 && note%10 <= 8 {
		return []paint{{note, lpp.ColorDimGreen}}
	}
	return nil
}

func (s *state) trackRow() []paint {
	out := make([]paint, 0, 8)
	for i := 0; i < 8; i++ {
		color := lpp.ColorDimGreen
		if i == s.track {
			color = lpp.ColorCyan
		}
		out = append(out, paint{lpp.TopRowLow + uint8(i), color})
	}
	return out
}
