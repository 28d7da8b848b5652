package feed

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/storyline-cli/storyline/story"
)

// Bundle groups one owner's stories, oldest first, the order they are
// meant to be watched in.
type Bundle struct {
	OwnerID   string
	OwnerName string
	Items     []story.Item
}

// Unseen counts the bundle's items the viewer has not watched yet,
// according to the given predicate.
func (b *Bundle) Unseen(seen func(item *story.Item) bool) int {
	count := 0
	for i := range b.Items {
		if !seen(&b.Items[i]) {
			count++
		}
	}
	return count
}

// GroupByOwner splits a newest-first feed into per-owner bundles. Bundles
// keep the feed's owner order (owners with fresher stories come first)
// while items within a bundle are reversed to play oldest first.
func GroupByOwner(items []story.Item) []Bundle {
	byOwner := make(map[string]int)
	var bundles []Bundle

	for _, item := range items {
		idx, ok := byOwner[item.OwnerID]
		if !ok {
			idx = len(bundles)
			byOwner[item.OwnerID] = idx
			bundles = append(bundles, Bundle{OwnerID: item.OwnerID, OwnerName: item.OwnerName})
		}
		// Prepend so the newest-first feed becomes oldest-first playback.
		bundles[idx].Items = append([]story.Item{item}, bundles[idx].Items...)
	}

	return bundles
}

// FilterOwners returns the bundles whose owner name fuzzy-matches the query.
// An empty query keeps everything.
func FilterOwners(bundles []Bundle, query string) []Bundle {
	query = strings.TrimSpace(query)
	if query == "" {
		return bundles
	}

	var matched []Bundle
	for _, b := range bundles {
		if fuzzy.MatchFold(query, b.OwnerName) {
			matched = append(matched, b)
		}
	}
	return matched
}

// ClosestOwner returns the bundle whose owner name is nearest to the given
// name by edit distance, for "did you mean" suggestions when a filter
// matches nothing. Returns nil for an empty bundle list.
func ClosestOwner(bundles []Bundle, name string) *Bundle {
	var closest *Bundle
	best := -1

	for i := range bundles {
		d := levenshtein.Distance(strings.ToLower(name), strings.ToLower(bundles[i].OwnerName))
		if best == -1 || d < best {
			best = d
			closest = &bundles[i]
		}
	}
	return closest
}
