// Package config is the knob-bank store: eight recallable banks of
// encoder values persisted as JSON under ~/.config/move-anything-m8.
// It implements engine.Config; the engine forwards bank gestures and
// unmapped knob data here and never touches persistence itself.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charlesvestal/move-anything-m8/engine"
	"github.com/charlesvestal/move-anything-m8/move"
)

// KnobCount covers the eight encoders plus the master knob.
const KnobCount = 9

// Bank is one recallable set of encoder values.
type Bank struct {
	Name  string           `json:"name"`
	Knobs [KnobCount]uint8 `json:"knobs"`
}

// File is the on-disk layout of config.json.
type File struct {
	Banks   [8]Bank `json:"banks"`
	Current int     `json:"current"`
}

// Store holds the loaded banks and pushes status text through the
// display func the engine registers.
type Store struct {
	path    string
	file    File
	display func(line int, text string)
}

// New creates a store backed by the default config path.
func New() *Store {
	home, err := os.UserHomeDir()
	if err != nil {
		return NewAt("config.json")
	}
	return NewAt(filepath.Join(home, ".config", "move-anything-m8", "config.json"))
}

// NewAt creates a store backed by an explicit path. Tests use a temp dir.
func NewAt(path string) *Store {
	s := &Store{path: path}
	s.file = defaultFile()
	return s
}

func defaultFile() File {
	var f File
	for i := range f.Banks {
		f.Banks[i].Name = fmt.Sprintf("bank %d", i+1)
	}
	return f
}

// SetDisplayFunc registers the line writer used for status text.
func (s *Store) SetDisplayFunc(fn func(line int, text string)) {
	s.display = fn
}

// Load reads config.json, falling back to defaults when it is missing.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.file = defaultFile()
			s.Update()
			return nil
		}
		return err
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}
	if f.Current < 0 || f.Current >= len(f.Banks) {
		f.Current = 0
	}
	s.file = f
	s.Update()
	return nil
}

// Save writes the banks back to disk.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0644)
}

// Update refreshes the status text with the current bank.
func (s *Store) Update() {
	if s.display == nil {
		return
	}
	s.display(2, s.file.Banks[s.file.Current].Name)
}

// Current returns the active bank index.
func (s *Store) Current() int { return s.file.Current }

// Knob returns a stored encoder value from the active bank.
func (s *Store) Knob(i int) uint8 {
	if i < 0 || i >= KnobCount {
		return 0
	}
	return s.file.Banks[s.file.Current].Knobs[i]
}

// ChangeBank recalls bank index and refreshes the display.
func (s *Store) ChangeBank(index int) {
	if index < 0 || index >= len(s.file.Banks) {
		return
	}
	s.file.Current = index
	s.Update()
}

// ChangeSave copies the active bank's values into slot index and
// persists. Errors only reach the debug log; a failed save must not
// disturb translation.
func (s *Store) ChangeSave(index int) {
	if index < 0 || index >= len(s.file.Banks) {
		return
	}
	name := s.file.Banks[index].Name
	s.file.Banks[index] = s.file.Banks[s.file.Current]
	s.file.Banks[index].Name = name
	s.file.Current = index
	if err := s.Save(); err != nil && s.display != nil {
		s.display(3, "save failed")
		return
	}
	if s.display != nil {
		s.display(3, fmt.Sprintf("saved %s", name))
	}
}

// HandleKnobs records raw knob data the engine could not translate.
// Encoder CCs land in the active bank; touch notes only update the
// display. Shift selects the fine-adjust message but is otherwise
// untranslated here.
func (s *Store) HandleKnobs(ev engine.Event, shift bool) {
	switch ev.Kind {
	case engine.EventControlChange:
		idx := knobIndex(ev.Note)
		if idx < 0 {
			return
		}
		s.file.Banks[s.file.Current].Knobs[idx] = ev.Value
		if s.display != nil {
			if shift {
				s.display(3, fmt.Sprintf("knob %d (fine): %d", idx+1, ev.Value))
			} else {
				s.display(3, fmt.Sprintf("knob %d: %d", idx+1, ev.Value))
			}
		}
	case engine.EventNoteOn:
		if ev.Note >= move.KnobTouchFirst && ev.Note <= move.KnobTouchLast && s.display != nil {
			s.display(3, fmt.Sprintf("knob %d", ev.Note+1))
		}
	}
}

func knobIndex(cc uint8) int {
	if cc >= move.CCKnobFirst && cc <= move.CCKnobLast {
		return int(cc - move.CCKnobFirst)
	}
	if cc == move.CCMasterKnob {
		return KnobCount - 1
	}
	return -1
}
