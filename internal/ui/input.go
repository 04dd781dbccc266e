package ui

import tea "github.com/charmbracelet/bubbletea"

// handleKeyMsg feeds the input pipeline. It never touches windows directly;
// submitted lines reach them on the next tick.
func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC:
		return m.quit()
	case tea.KeyEnter:
		m.sim.Submit()
	case tea.KeyBackspace, tea.KeyCtrlH:
		m.sim.Backspace()
	case tea.KeySpace:
		m.sim.PushChar(' ')
	case tea.KeyRunes:
		if keyMsg.Paste {
			return nil
		}
		for _, r := range keyMsg.Runes {
			m.sim.PushChar(r)
		}
	}
	return nil
}
