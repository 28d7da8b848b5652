// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/feed"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/playback"
	"github.com/storyline-cli/storyline/report"
	"github.com/storyline-cli/storyline/seen"
	"github.com/storyline-cli/storyline/story"
	"github.com/storyline-cli/storyline/util"
	"github.com/storyline-cli/storyline/viewer"
)

// Session lifecycle messages, produced by viewer hooks and forwarded
// through sessionEventChannel into the Bubble Tea loop.
type (
	sessionIndexMsg struct {
		index int
		item  *story.Item
	}
	sessionClosedMsg struct{ forward bool }
	playStateMsg     struct{ paused bool }
	viewTickMsg      time.Time
)

// loadFeed fetches the feed, groups it per owner and applies the optional
// owner filter.
func (b *statefulBubble) loadFeed() tea.Cmd {
	return func() tea.Msg {
		b.progressStatus = "Fetching stories"

		items, err := feed.NewClient().Fetch(context.Background())
		if err != nil {
			log.Error(err)
			b.errorChannel <- err
			return nil
		}

		bundles := feed.GroupByOwner(items)

		if owner := b.options.Owner; owner != "" {
			filtered := feed.FilterOwners(bundles, owner)
			if len(filtered) == 0 {
				err := fmt.Errorf("no stories from %q", owner)
				if closest := feed.ClosestOwner(bundles, owner); closest != nil {
					err = fmt.Errorf("no stories from %q, did you mean %q?", owner, closest.OwnerName)
				}
				b.errorChannel <- err
				return nil
			}
			bundles = filtered
		}

		if viper.GetBool(key.FeedHideViewed) {
			var fresh []feed.Bundle
			for _, bundle := range bundles {
				unseen := bundle.Unseen(func(item *story.Item) bool {
					return seen.Has(item.ID)
				})
				if unseen > 0 {
					fresh = append(fresh, bundle)
				}
			}
			bundles = fresh
		}

		log.Infof("feed loaded: %s from %s",
			util.Quantify(len(items), "story", "stories"),
			util.Quantify(len(bundles), "friend", "friends"))

		b.feedLoadedChannel <- bundles
		return nil
	}
}

func (b *statefulBubble) waitForFeed() tea.Cmd {
	return func() tea.Msg {
		select {
		case bundles := <-b.feedLoadedChannel:
			return bundles
		case err := <-b.errorChannel:
			b.lastError = err
			return err
		}
	}
}

// openSession starts viewing the bundle, beginning at its first unseen
// story. Viewer hooks run on engine goroutines; they are forwarded as
// messages so all UI mutation stays inside Update.
func (b *statefulBubble) openSession(bundle *feed.Bundle) error {
	start := 0
	for i := range bundle.Items {
		if !seen.Has(bundle.Items[i].ID) {
			start = i
			break
		}
	}

	hooks := viewer.Hooks{
		OnActiveIndexChanged: func(index int, item *story.Item) {
			b.sessionEventChannel <- sessionIndexMsg{index: index, item: item}
		},
		OnSessionClosed: func(forward bool) {
			b.sessionEventChannel <- sessionClosedMsg{forward: forward}
		},
		OnPlayStateChanged: func(paused bool) {
			b.sessionEventChannel <- playStateMsg{paused: paused}
		},
	}

	session, err := viewer.Open(bundle.Items, start, report.NewClient(), hooks, viewer.DefaultOptions())
	if err != nil {
		return err
	}

	b.selectedBundle = bundle
	b.session = session
	return nil
}

func (b *statefulBubble) waitForSessionEvent() tea.Cmd {
	return func() tea.Msg {
		return <-b.sessionEventChannel
	}
}

// closeSession tears down the active session and the video backend.
func (b *statefulBubble) closeSession() {
	if b.session != nil {
		b.session.Close()
		b.session = nil
	}
	if b.backend != nil {
		_ = b.backend.Close()
		b.backend = nil
	}
}

// startVideoPlayback hands a video story to the external player and wires
// its position and end-of-media signals back into the session.
func (b *statefulBubble) startVideoPlayback(item *story.Item) tea.Cmd {
	session := b.session
	return func() tea.Msg {
		if b.backend == nil {
			backend, err := playback.New()
			if err != nil {
				return err
			}
			b.backend = backend
		}

		title := fmt.Sprintf("%s: story %s", item.OwnerName, item.Age())
		if err := b.backend.Play(item.MediaURI, title); err != nil {
			log.Error(err)
			return err
		}

		err := b.backend.Observe(playback.Events{
			OnPosition: session.ObservePosition,
			OnFinished: session.VideoFinished,
		})
		if err != nil {
			log.Error(err)
			return err
		}
		return nil
	}
}

// markSeen persists the story into the local seen registry.
func (b *statefulBubble) markSeen(item *story.Item) tea.Cmd {
	if !viper.GetBool(key.FeedMarkSeen) {
		return nil
	}
	return func() tea.Msg {
		if err := seen.Mark(item); err != nil {
			log.Errorf("marking story %s as seen: %s", item.ID, err)
		}
		return nil
	}
}

// viewTick drives the progress bar redraw while a session is active.
func (b *statefulBubble) viewTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return viewTickMsg(t)
	})
}
