// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Owner narrows the feed to owners fuzzy-matching this name.
	Owner string
}

// Run initializes and executes the primary Bubble Tea application loop.
func Run(options *Options) error {
	bubble := newBubble(options)
	bubble.newState(loadingState)

	program := tea.NewProgram(bubble, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	if bubble.backend != nil {
		_ = bubble.backend.Close()
	}
	return err
}
