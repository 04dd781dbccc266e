package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// View paints the simulation's screen text. Styling is applied per line so
// lipgloss never pads lines to a common width.
func (m *Model) View() string {
	if m.quitting && m.errMsg == "" {
		return ""
	}
	lines := m.screenLines()
	inputLine := -1
	if m.acceptsInput() && len(lines) > 0 {
		inputLine = len(lines) - 1
	}
	out := make([]string, 0, len(lines)+1)
	for i, line := range lines {
		switch {
		case i == inputLine:
			out = append(out, styles.Input.Render(line)+m.inputCursor.View())
		case i == 0:
			out = append(out, styles.Title.Render(line))
		default:
			out = append(out, styles.Text.Render(line))
		}
	}
	if m.errMsg != "" {
		out = append(out, styles.Error.Render("Error: "+m.errMsg))
	}
	return strings.Join(out, "\n")
}

// Screen returns the unstyled text of the current frame, fitted to the
// paint area.
func (m *Model) Screen() string {
	return strings.Join(m.screenLines(), "\n")
}

func (m *Model) screenLines() []string {
	text := m.sim.CurrentScreenText()
	if text == "" {
		return nil
	}
	if m.width > 0 {
		text = wordwrap.String(text, m.width)
	}
	lines := strings.Split(text, "\n")
	if m.width > 0 {
		for i, line := range lines {
			if lipgloss.Width(line) > m.width {
				lines[i] = truncate.StringWithTail(line, uint(max(m.width-1, 0)), "…")
			}
		}
	}
	// The input line is last; when the screen is too short the top goes.
	if m.height > 0 && len(lines) > m.height {
		lines = lines[len(lines)-m.height:]
	}
	return lines
}

func (m *Model) acceptsInput() bool {
	top := m.sim.Stack().Active()
	return top != nil && top.AcceptsInput()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}
