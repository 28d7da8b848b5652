package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/storyline-cli/storyline/story"
)

func feedPayload() string {
	future := time.Now().Add(12 * time.Hour).Format(time.RFC3339)
	past := time.Now().Add(-time.Hour).Format(time.RFC3339)
	created := time.Now().Add(-2 * time.Hour).Format(time.RFC3339)

	return fmt.Sprintf(`[
		{"id": 3, "user_id": 7, "user": {"username": "kim"}, "media_url": "http://s/3.mp4",
		 "media_type": "video", "caption": "beach", "view_count": 4, "has_viewed": false,
		 "created_at": %[1]q, "expires_at": %[2]q},
		{"id": 2, "user_id": 9, "user": {"username": "alex"}, "media_url": "http://s/2.jpg",
		 "media_type": "photo", "caption": null, "view_count": 1, "has_viewed": true,
		 "created_at": %[1]q, "expires_at": %[2]q},
		{"id": 1, "user_id": 7, "user": {"username": "kim"}, "media_url": "http://s/1.jpg",
		 "media_type": "photo", "caption": "", "view_count": 9, "has_viewed": false,
		 "created_at": %[1]q, "expires_at": %[2]q},
		{"id": 4, "user_id": 9, "user": {"username": "alex"}, "media_url": "http://s/4.gif",
		 "media_type": "gif", "caption": null, "view_count": 0, "has_viewed": false,
		 "created_at": %[1]q, "expires_at": %[2]q},
		{"id": 5, "user_id": 7, "user": {"username": "kim"}, "media_url": "http://s/5.jpg",
		 "media_type": "photo", "caption": null, "view_count": 2, "has_viewed": false,
		 "created_at": %[1]q, "expires_at": %[3]q}
	]`, created, future, past)
}

func TestFetch(t *testing.T) {
	Convey("Fetching the feed", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/stories/feed" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, feedPayload())
		}))
		defer server.Close()

		client := &Client{BaseURL: server.URL, HTTP: server.Client()}
		items, err := client.Fetch(context.Background())
		So(err, ShouldBeNil)

		Convey("Should decode server identifiers as strings", func() {
			So(items[0].ID, ShouldEqual, "3")
			So(items[0].OwnerID, ShouldEqual, "7")
			So(items[0].OwnerName, ShouldEqual, "kim")
			So(items[0].Kind, ShouldEqual, story.KindVideo)
		})

		Convey("Should drop expired items and unknown media kinds", func() {
			So(items, ShouldHaveLength, 3)
			for _, item := range items {
				So(item.ID, ShouldNotEqual, "4")
				So(item.ID, ShouldNotEqual, "5")
			}
		})

		Convey("Should keep captions optional", func() {
			So(items[0].Caption.IsPresent(), ShouldBeTrue)
			So(items[0].Caption.MustGet(), ShouldEqual, "beach")
			So(items[1].Caption.IsAbsent(), ShouldBeTrue)
			So(items[2].Caption.IsAbsent(), ShouldBeTrue)
		})
	})

	Convey("A failing server", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := &Client{BaseURL: server.URL, HTTP: server.Client()}
		_, err := client.Fetch(context.Background())
		So(err, ShouldNotBeNil)
	})
}

func sampleBundles() []Bundle {
	items := []story.Item{
		{ID: "3", OwnerID: "7", OwnerName: "kim"},
		{ID: "2", OwnerID: "9", OwnerName: "alex"},
		{ID: "1", OwnerID: "7", OwnerName: "kim"},
	}
	return GroupByOwner(items)
}

func TestGroupByOwner(t *testing.T) {
	Convey("Grouping a newest-first feed", t, func() {
		bundles := sampleBundles()

		Convey("Should keep owners in feed order", func() {
			So(bundles, ShouldHaveLength, 2)
			So(bundles[0].OwnerName, ShouldEqual, "kim")
			So(bundles[1].OwnerName, ShouldEqual, "alex")
		})

		Convey("Should order each owner's items oldest first", func() {
			So(bundles[0].Items[0].ID, ShouldEqual, "1")
			So(bundles[0].Items[1].ID, ShouldEqual, "3")
		})
	})
}

func TestOwnerFilters(t *testing.T) {
	Convey("Filtering bundles by owner", t, func() {
		bundles := sampleBundles()

		Convey("Should fuzzy match the owner name", func() {
			So(FilterOwners(bundles, "km"), ShouldHaveLength, 1)
			So(FilterOwners(bundles, "km")[0].OwnerName, ShouldEqual, "kim")
			So(FilterOwners(bundles, "ALEX"), ShouldHaveLength, 1)
			So(FilterOwners(bundles, "zzz"), ShouldBeEmpty)
		})

		Convey("Should keep everything for an empty query", func() {
			So(FilterOwners(bundles, "  "), ShouldHaveLength, 2)
		})

		Convey("Should suggest the closest owner for a typo", func() {
			So(ClosestOwner(bundles, "kin").OwnerName, ShouldEqual, "kim")
			So(ClosestOwner(bundles, "alexx").OwnerName, ShouldEqual, "alex")
			So(ClosestOwner(nil, "kim"), ShouldBeNil)
		})
	})
}

func TestUnseen(t *testing.T) {
	Convey("Counting unseen items", t, func() {
		bundles := sampleBundles()
		kim := bundles[0]

		count := kim.Unseen(func(item *story.Item) bool {
			return item.ID == "1"
		})
		So(count, ShouldEqual, 1)
	})
}
