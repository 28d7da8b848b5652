// Package tui provides the primary terminal user interface implementation.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts the initial feed load.
func (b *statefulBubble) Init() tea.Cmd {
	return tea.Batch(b.startLoading(), b.loadFeed(), b.waitForFeed())
}
