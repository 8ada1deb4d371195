package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// RunViewer pages through text full screen until the user quits.
func RunViewer(title string, text string) error {
	m := NewModel(title, text)
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
