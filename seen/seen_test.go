package seen

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/storyline-cli/storyline/filesystem"
	"github.com/storyline-cli/storyline/story"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSeenRegistry(t *testing.T) {
	Convey("Given a watched story", t, func() {
		item := &story.Item{
			ID:        "42",
			OwnerName: "kim",
			Kind:      story.KindPhoto,
			ExpiresAt: time.Now().Add(12 * time.Hour),
		}

		So(Mark(item), ShouldBeNil)

		Convey("It should be reported as seen", func() {
			So(Has("42"), ShouldBeTrue)
			So(Has("999"), ShouldBeFalse)

			saved, err := Get()
			So(err, ShouldBeNil)
			So(saved["42"].OwnerName, ShouldEqual, "kim")
			So(saved["42"].Kind, ShouldEqual, "photo")
		})

		Convey("It should be removable", func() {
			So(Remove("42"), ShouldBeNil)
			So(Has("42"), ShouldBeFalse)
		})

		Convey("Garbage collection should keep it while unexpired", func() {
			So(CollectGarbage(), ShouldBeNil)
			So(Has("42"), ShouldBeTrue)
		})

		Convey("Garbage collection should drop expired records", func() {
			expired := &story.Item{
				ID:        "17",
				OwnerName: "alex",
				Kind:      story.KindVideo,
				ExpiresAt: time.Now().Add(-time.Minute),
			}
			So(Mark(expired), ShouldBeNil)

			So(CollectGarbage(), ShouldBeNil)
			So(Has("17"), ShouldBeFalse)
			So(Has("42"), ShouldBeTrue)
		})
	})
}
