// Package tui is the terminal status display: the four display lines the
// translator maintains, the connection state, the active layout and a
// live copy of the pad LEDs.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/charlesvestal/move-anything-m8/engine"
	"github.com/charlesvestal/move-anything-m8/move"
	"github.com/charlesvestal/move-anything-m8/theme"
	"github.com/charlesvestal/move-anything-m8/widgets"
)

// SnapshotMsg carries an engine snapshot into the bubbletea loop.
type SnapshotMsg engine.Snapshot

type Model struct {
	snapshots <-chan engine.Snapshot
	last      engine.Snapshot
	quitting  bool
	onQuit    func()

	headerStyle lipgloss.Style
	lineStyle   lipgloss.Style
	dimStyle    lipgloss.Style
	connStyle   lipgloss.Style
	waitStyle   lipgloss.Style
}

func NewModel(snapshots <-chan engine.Snapshot, th *theme.Theme, onQuit func()) Model {
	return Model{
		snapshots:   snapshots,
		onQuit:      onQuit,
		headerStyle: lipgloss.NewStyle().Foreground(th.Header()),
		lineStyle:   lipgloss.NewStyle().Foreground(th.Text()),
		dimStyle:    lipgloss.NewStyle().Foreground(th.Muted()),
		connStyle:   lipgloss.NewStyle().Foreground(th.Success()),
		waitStyle:   lipgloss.NewStyle().Foreground(th.Warning()),
	}
}

func listen(ch <-chan engine.Snapshot) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-ch
		if !ok {
			return tea.Quit()
		}
		return SnapshotMsg(s)
	}
}

func (m Model) Init() tea.Cmd {
	return listen(m.snapshots)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			if m.onQuit != nil {
				m.onQuit()
			}
			return m, tea.Quit
		}

	case SnapshotMsg:
		m.last = engine.Snapshot(msg)
		return m, listen(m.snapshots)
	}

	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	conn := m.waitStyle.Render("waiting")
	if m.last.Connected {
		conn = m.connStyle.Render("connected")
	}
	header := m.headerStyle.Render("move-anything-m8") +
		fmt.Sprintf("  m8:%s  ", conn) +
		m.headerStyle.Render(fmt.Sprintf("layout:%s", m.last.Layout))

	var grid [move.PadRows][move.PadCols][3]uint8
	for row := 0; row < move.PadRows; row++ {
		for col := 0; col < move.PadCols; col++ {
			grid[row][col] = move.ColorRGB(m.last.Pads[row][col])
		}
	}

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	for _, line := range m.last.Lines {
		out.WriteString(m.lineStyle.Render("  " + line))
		out.WriteString("\n")
	}
	out.WriteString("\n")
	out.WriteString(widgets.RenderPadGrid(grid))
	out.WriteString("\n\n")
	out.WriteString(m.dimStyle.Render("q:quit"))

	return out.String()
}
