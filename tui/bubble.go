// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/constant"
	"github.com/storyline-cli/storyline/feed"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/playback"
	"github.com/storyline-cli/storyline/style"
	"github.com/storyline-cli/storyline/util"
	"github.com/storyline-cli/storyline/viewer"
)

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC  spinner.Model
	feedC     list.Model
	progressC progress.Model
	helpC     help.Model

	bundles        []feed.Bundle
	selectedBundle *feed.Bundle

	session *viewer.Session
	backend playback.Backend

	feedLoadedChannel   chan []feed.Bundle
	sessionEventChannel chan tea.Msg
	errorChannel        chan error

	progressStatus string
	lastError      error

	width, height int

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Transient states are not part of the back-navigation history.
	if b.state != loadingState && b.state != viewingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		b.setState(b.statesHistory.Pop())
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	b.feedC.SetSize(width-xx, height-yy)
	b.feedC.Help.Width = width - xx

	b.progressC.Width = width - x
	b.helpC.Width = width - xx

	b.width = width - x
	b.height = height - y
}

// startLoading enters a concurrent loading state, initializing visual indicators across child components.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return tea.Batch(b.spinnerC.Tick, b.feedC.StartSpinner())
}

// stopLoading exits the loading state and synchronizes child component visual indicators.
func (b *statefulBubble) stopLoading() tea.Cmd {
	b.loading = false
	b.busy = false
	b.feedC.StopSpinner()
	return nil
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		feedLoadedChannel:   make(chan []feed.Bundle),
		sessionEventChannel: make(chan tea.Msg, 8),
		errorChannel:        make(chan error),

		options: options,
	}

	delegate := list.NewDefaultDelegate()
	delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
	delegate.ShowDescription = true
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	feedC := list.New([]list.Item{}, delegate, 0, 0)
	feedC.KeyMap = keymap.forList()
	feedC.AdditionalShortHelpKeys = keymap.ShortHelp
	feedC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	feedC.Title = fmt.Sprintf("Stories (v%s)", constant.Version)
	feedC.Styles.Title = lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	feedC.Styles.NoItems = paddingStyle
	feedC.SetStatusBarItemName("friend", "friends")
	feedC.SetShowPagination(false)
	feedC.SetShowStatusBar(false)
	bubble.feedC = feedC

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.progressC = progress.New(progress.WithDefaultGradient())
	bubble.progressC.ShowPercentage = false

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	return &bubble
}
