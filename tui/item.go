// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"github.com/storyline-cli/storyline/feed"
	"github.com/storyline-cli/storyline/icon"
	"github.com/storyline-cli/storyline/key"
	"github.com/storyline-cli/storyline/seen"
	"github.com/storyline-cli/storyline/story"
	"github.com/storyline-cli/storyline/style"
	"github.com/storyline-cli/storyline/util"
)

// listItem implements the list.Item interface, wrapping a feed bundle for
// terminal display.
type listItem struct {
	internal *feed.Bundle
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	title := t.internal.OwnerName

	if t.unseen() == 0 {
		title = fmt.Sprintf("%s %s", title, icon.Get(icon.Seen))
	}
	return title
}

// Description retrieves the secondary metadata line for the list item.
func (t *listItem) Description() string {
	b := t.internal
	parts := []string{util.Quantify(len(b.Items), "story", "stories")}

	if unseen := t.unseen(); unseen > 0 {
		parts = append(parts, style.Fg(style.Green)(fmt.Sprintf("%d new", unseen)))
	}

	if newest := t.newest(); newest != nil {
		parts = append(parts, style.Faint(newest.Age()))
		parts = append(parts, icon.Get(kindIcon(newest.Kind)))
	}

	if viper.GetBool(key.TUIShowURLs) {
		if newest := t.newest(); newest != nil {
			parts = append(parts, style.Faint(newest.MediaURI))
		}
	}

	return strings.Join(parts, " • ")
}

// FilterValue returns the string used for real-time list filtering.
func (t *listItem) FilterValue() string {
	return t.internal.OwnerName
}

func (t *listItem) unseen() int {
	return t.internal.Unseen(func(item *story.Item) bool {
		return seen.Has(item.ID)
	})
}

func (t *listItem) newest() *story.Item {
	items := t.internal.Items
	if len(items) == 0 {
		return nil
	}
	return &items[len(items)-1]
}

func kindIcon(k story.Kind) icon.Icon {
	if k == story.KindVideo {
		return icon.Video
	}
	return icon.Photo
}
