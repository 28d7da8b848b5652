// Package story defines the domain model for ephemeral media items.
package story

import (
	"fmt"
	"time"

	"github.com/samber/mo"
)

// Kind selects the timing model used when an item is presented.
type Kind string

const (
	KindPhoto Kind = "photo"
	KindVideo Kind = "video"
)

// Valid reports whether the kind is one of the supported media kinds.
func (k Kind) Valid() bool {
	return k == KindPhoto || k == KindVideo
}

// Item represents one ephemeral media unit supplied by the stories service.
//
// The viewer engine never reorders, filters, or mutates items; ordering and
// membership are entirely the feed's responsibility.
type Item struct {
	// Stable identifier within a viewing session.
	ID string `json:"id"`
	// Identifier of the item's author. Used for grouping in the feed, not by the engine.
	OwnerID string `json:"owner_id"`
	// Display name of the author.
	OwnerName string `json:"owner_name"`
	// Media kind, selects photo or video timing.
	Kind Kind `json:"media_type"`
	// Opaque locator of the renderable asset.
	MediaURI string `json:"media_url"`
	// Optional text overlay.
	Caption mo.Option[string] `json:"caption"`
	// Creation time, used only for age display.
	CreatedAt time.Time `json:"created_at"`
	// Server-side expiry. Expired items are dropped by the feed client.
	ExpiresAt time.Time `json:"expires_at"`
	// Total distinct viewers, display only.
	ViewCount int `json:"view_count"`
}

// String returns the canonical display representation of the item.
func (i *Item) String() string {
	return fmt.Sprintf("%s (%s)", i.OwnerName, i.Kind)
}

// Expired reports whether the item's server-side lifetime has elapsed.
func (i *Item) Expired() bool {
	return i.ExpiresAt.Before(time.Now())
}

// Age returns a compact human-readable age of the item, e.g. "3h" or "12m".
func (i *Item) Age() string {
	d := time.Since(i.CreatedAt)
	switch {
	case d < time.Minute:
		return "now"
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}
