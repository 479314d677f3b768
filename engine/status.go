package engine

// StatusLines is the number of display lines the Move renderer gives us.
const StatusLines = 4

// Status holds the human-readable display text. Lines persist until
// explicitly rewritten; the renderer consumes a snapshot once per tick.
type Status struct {
	lines [StatusLines]string
	dirty bool
}

// SetLine writes one display line.
func (s *Status) SetLine(line int, text string) {
	if line < 0 || line >= StatusLines {
		return
	}
	if s.lines[line] == text {
		return
	}
	s.lines[line] = text
	s.dirty = true
}

// Lines returns the current display text.
func (s *Status) Lines() [StatusLines]string {
	return s.lines
}
