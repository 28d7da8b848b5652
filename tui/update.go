// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/storyline-cli/storyline/feed"
	"github.com/storyline-cli/storyline/open"
	"github.com/storyline-cli/storyline/story"

	bubblesKey "github.com/charmbracelet/bubbles/key"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case error:
		b.closeSession()
		b.raiseError(msg)
		return b, b.stopLoading()
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
	case []feed.Bundle:
		return b.feedLoaded(msg)
	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.closeSession()
			return b, tea.Quit
		}

		// Input guard during async operations.
		if b.busy && b.state != viewingState && b.state != errorState {
			return b, nil
		}
	}

	switch b.state {
	case loadingState:
		return b.updateLoading(msg)
	case feedState:
		return b.updateFeed(msg)
	case viewingState:
		return b.updateViewing(msg)
	case errorState:
		return b.updateError(msg)
	}

	return b, cmd
}

// feedLoaded populates the feed list and leaves the loading state.
func (b *statefulBubble) feedLoaded(bundles []feed.Bundle) (tea.Model, tea.Cmd) {
	b.bundles = bundles

	items := make([]list.Item, len(bundles))
	for i := range bundles {
		items[i] = &listItem{internal: &bundles[i]}
	}

	cmd := b.feedC.SetItems(items)
	b.newState(feedState)
	return b, tea.Batch(cmd, b.stopLoading())
}

func (b *statefulBubble) updateLoading(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case spinner.TickMsg:
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			if b.statesHistory.Len() > 0 {
				b.previousState()
				return b, b.stopLoading()
			}
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *statefulBubble) updateFeed(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm) && b.feedC.FilterState() != list.Filtering:
			item, ok := b.feedC.SelectedItem().(*listItem)
			if !ok {
				return b, nil
			}
			return b.startViewing(item.internal)
		case bubblesKey.Matches(msg, b.keymap.refresh) && b.feedC.FilterState() == list.Unfiltered:
			b.newState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadFeed(), b.waitForFeed())
		case bubblesKey.Matches(msg, b.keymap.openURL) && b.feedC.FilterState() == list.Unfiltered:
			if item, ok := b.feedC.SelectedItem().(*listItem); ok {
				if newest := item.newest(); newest != nil {
					return b, func() tea.Msg {
						if err := open.Start(newest.MediaURI); err != nil {
							return err
						}
						return nil
					}
				}
			}
		}
	}

	b.feedC, cmd = b.feedC.Update(msg)
	return b, cmd
}

// startViewing opens a session on the bundle and enters the viewer.
func (b *statefulBubble) startViewing(bundle *feed.Bundle) (tea.Model, tea.Cmd) {
	if err := b.openSession(bundle); err != nil {
		b.raiseError(err)
		return b, nil
	}

	b.newState(viewingState)
	return b, tea.Batch(b.waitForSessionEvent(), b.viewTick())
}

func (b *statefulBubble) updateViewing(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case viewTickMsg:
		if b.session == nil {
			return b, nil
		}
		return b, b.viewTick()

	case sessionIndexMsg:
		cmds := []tea.Cmd{b.waitForSessionEvent(), b.markSeen(msg.item)}
		if msg.item.Kind == story.KindVideo {
			cmds = append(cmds, b.startVideoPlayback(msg.item))
		}
		return b, tea.Batch(cmds...)

	case playStateMsg:
		cmds := []tea.Cmd{b.waitForSessionEvent()}
		if b.backend != nil && b.session != nil && b.session.Item().Kind == story.KindVideo {
			paused := msg.paused
			backend := b.backend
			cmds = append(cmds, func() tea.Msg {
				if err := backend.SetPaused(paused); err != nil {
					return err
				}
				return nil
			})
		}
		return b, tea.Batch(cmds...)

	case sessionClosedMsg:
		b.closeSession()
		b.setState(feedState)
		// Seen markers may have changed while viewing.
		return b, b.feedC.SetItems(b.feedC.Items())

	case tea.MouseMsg:
		if b.session != nil && msg.Type == tea.MouseLeft {
			session := b.session
			width := b.width
			x := msg.X
			return b, func() tea.Msg {
				session.Tap(x, width)
				return nil
			}
		}
		return b, nil

	case tea.KeyMsg:
		if b.session == nil {
			return b, nil
		}
		session := b.session

		run := func(f func()) tea.Cmd {
			return func() tea.Msg {
				f()
				return nil
			}
		}

		switch {
		case bubblesKey.Matches(msg, b.keymap.nextStory):
			return b, run(session.Advance)
		case bubblesKey.Matches(msg, b.keymap.prevStory):
			return b, run(session.Retreat)
		case bubblesKey.Matches(msg, b.keymap.playPause):
			return b, run(session.TogglePause)
		case bubblesKey.Matches(msg, b.keymap.back), bubblesKey.Matches(msg, b.keymap.quit):
			return b, run(session.Close)
		case bubblesKey.Matches(msg, b.keymap.openURL):
			uri := session.Item().MediaURI
			return b, func() tea.Msg {
				if err := open.Start(uri); err != nil {
					return err
				}
				return nil
			}
		}
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		case bubblesKey.Matches(msg, b.keymap.back):
			b.lastError = nil
			if b.statesHistory.Len() > 0 {
				b.previousState()
				return b, nil
			}
			// Nothing to go back to: retry the feed.
			b.setState(loadingState)
			return b, tea.Batch(b.startLoading(), b.loadFeed(), b.waitForFeed())
		}
	}

	return b, nil
}
