// Package seen tracks which stories were already watched on this machine,
// so the feed can distinguish fresh stories across sessions.
package seen

import (
	"time"

	"github.com/metafates/gache"
	"github.com/storyline-cli/storyline/filesystem"
	"github.com/storyline-cli/storyline/story"
	"github.com/storyline-cli/storyline/where"
)

// SavedStory is one watched-story record in the local registry.
type SavedStory struct {
	ID        string    `json:"id"`
	OwnerName string    `json:"owner_name"`
	Kind      string    `json:"kind"`
	WatchedAt time.Time `json:"watched_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// cacher is the disk-backed registry of watched stories.
var cacher = gache.New[map[string]*SavedStory](
	&gache.Options{
		Path:       where.Seen(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every watched-story record.
func Get() (map[string]*SavedStory, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedStory), nil
	}
	return cached, nil
}

// Has reports whether the story was already watched on this machine.
func Has(id string) bool {
	saved, err := Get()
	if err != nil {
		return false
	}
	_, ok := saved[id]
	return ok
}

// Mark records the story as watched. Re-marking refreshes the watch time.
func Mark(item *story.Item) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	saved[item.ID] = &SavedStory{
		ID:        item.ID,
		OwnerName: item.OwnerName,
		Kind:      string(item.Kind),
		WatchedAt: time.Now(),
		ExpiresAt: item.ExpiresAt,
	}
	return cacher.Set(saved)
}

// Remove deletes one record from the registry.
func Remove(id string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, id)
	return cacher.Set(saved)
}

// CollectGarbage drops records for stories that have expired server-side;
// they can never appear in a feed again, so tracking them is pointless.
func CollectGarbage() error {
	saved, err := Get()
	if err != nil {
		return err
	}

	now := time.Now()
	pruned := false
	for id, record := range saved {
		if record.ExpiresAt.Before(now) {
			delete(saved, id)
			pruned = true
		}
	}

	if !pruned {
		return nil
	}
	return cacher.Set(saved)
}
