// Package inline implements the non-interactive feed mode, printing the
// story feed to a writer for scripting and automation.
package inline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/storyline-cli/storyline/feed"
	"github.com/storyline-cli/storyline/icon"
	"github.com/storyline-cli/storyline/seen"
	"github.com/storyline-cli/storyline/story"
	"github.com/storyline-cli/storyline/util"
)

// Options configures a single inline run.
type Options struct {
	// Owner narrows the output to owners fuzzy-matching this name.
	Owner string
	// JSON switches the output to machine-readable form.
	JSON bool
	// Out receives the rendered feed.
	Out io.Writer
}

// Output is the machine-readable shape of the inline feed.
type Output struct {
	Owners []OwnerOutput `json:"owners" jsonschema:"description=Story owners with at least one active story"`
}

// OwnerOutput is one owner's group of stories.
type OwnerOutput struct {
	OwnerID   string        `json:"owner_id"`
	OwnerName string        `json:"owner_name"`
	Unseen    int           `json:"unseen" jsonschema:"description=Stories not yet watched on this machine"`
	Stories   []StoryOutput `json:"stories"`
}

// StoryOutput is one story in machine-readable form.
type StoryOutput struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	MediaURL  string `json:"media_url"`
	Caption   string `json:"caption,omitempty"`
	Age       string `json:"age"`
	ViewCount int    `json:"view_count"`
	Seen      bool   `json:"seen"`
}

// Run fetches the feed and writes it to options.Out.
func Run(ctx context.Context, options *Options) error {
	items, err := feed.NewClient().Fetch(ctx)
	if err != nil {
		return err
	}

	bundles := feed.GroupByOwner(items)
	if options.Owner != "" {
		bundles = feed.FilterOwners(bundles, options.Owner)
		if len(bundles) == 0 {
			return fmt.Errorf("no stories from %q", options.Owner)
		}
	}

	if options.JSON {
		return json.NewEncoder(options.Out).Encode(toOutput(bundles))
	}
	return printPlain(options.Out, bundles)
}

func toOutput(bundles []feed.Bundle) *Output {
	out := &Output{Owners: make([]OwnerOutput, 0, len(bundles))}

	for _, b := range bundles {
		owner := OwnerOutput{
			OwnerID:   b.OwnerID,
			OwnerName: b.OwnerName,
			Unseen: b.Unseen(func(item *story.Item) bool {
				return seen.Has(item.ID)
			}),
			Stories: make([]StoryOutput, 0, len(b.Items)),
		}

		for i := range b.Items {
			item := &b.Items[i]
			owner.Stories = append(owner.Stories, StoryOutput{
				ID:        item.ID,
				Kind:      string(item.Kind),
				MediaURL:  item.MediaURI,
				Caption:   item.Caption.OrElse(""),
				Age:       item.Age(),
				ViewCount: item.ViewCount,
				Seen:      seen.Has(item.ID),
			})
		}

		out.Owners = append(out.Owners, owner)
	}

	return out
}

func printPlain(w io.Writer, bundles []feed.Bundle) error {
	for _, b := range bundles {
		unseen := b.Unseen(func(item *story.Item) bool {
			return seen.Has(item.ID)
		})

		header := fmt.Sprintf("%s (%s", b.OwnerName, util.Quantify(len(b.Items), "story", "stories"))
		if unseen > 0 {
			header += fmt.Sprintf(", %d new", unseen)
		}
		header += ")"

		if _, err := fmt.Fprintln(w, header); err != nil {
			return err
		}

		for i := range b.Items {
			item := &b.Items[i]

			marker := " "
			if seen.Has(item.ID) {
				marker = icon.Get(icon.Seen)
			}

			line := fmt.Sprintf("  %s %s %s %s",
				marker,
				icon.Get(kindIcon(item.Kind)),
				item.Age(),
				item.MediaURI,
			)
			if caption, ok := item.Caption.Get(); ok {
				line += " " + strings.ReplaceAll(caption, "\n", " ")
			}

			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
	}

	return nil
}

func kindIcon(k story.Kind) icon.Icon {
	if k == story.KindVideo {
		return icon.Video
	}
	return icon.Photo
}
