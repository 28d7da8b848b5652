package story

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKind(t *testing.T) {
	Convey("Kind", t, func() {
		So(KindPhoto.Valid(), ShouldBeTrue)
		So(KindVideo.Valid(), ShouldBeTrue)
		So(Kind("gif").Valid(), ShouldBeFalse)
		So(Kind("").Valid(), ShouldBeFalse)
	})
}

func TestItem(t *testing.T) {
	Convey("Given a story item", t, func() {
		item := Item{
			ID:        "42",
			OwnerName: "marisa",
			Kind:      KindPhoto,
			CreatedAt: time.Now().Add(-3 * time.Hour),
			ExpiresAt: time.Now().Add(21 * time.Hour),
		}

		Convey("It should not be expired before its lifetime elapses", func() {
			So(item.Expired(), ShouldBeFalse)
		})

		Convey("It should be expired after its lifetime elapses", func() {
			item.ExpiresAt = time.Now().Add(-time.Minute)
			So(item.Expired(), ShouldBeTrue)
		})

		Convey("Age should render compactly", func() {
			So(item.Age(), ShouldEqual, "3h")

			item.CreatedAt = time.Now().Add(-30 * time.Second)
			So(item.Age(), ShouldEqual, "now")

			item.CreatedAt = time.Now().Add(-12 * time.Minute)
			So(item.Age(), ShouldEqual, "12m")

			item.CreatedAt = time.Now().Add(-49 * time.Hour)
			So(item.Age(), ShouldEqual, "2d")
		})

		Convey("String should include owner and kind", func() {
			So(item.String(), ShouldEqual, "marisa (photo)")
		})
	})
}
