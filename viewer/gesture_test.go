package viewer

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/storyline-cli/storyline/story"
)

func TestZoneAt(t *testing.T) {
	Convey("Tap zones for a 30 column viewport", t, func() {
		Convey("Should map the left third to retreat", func() {
			So(ZoneAt(0, 30), ShouldEqual, ZoneRetreat)
			So(ZoneAt(9, 30), ShouldEqual, ZoneRetreat)
		})

		Convey("Should map the right third to advance", func() {
			So(ZoneAt(21, 30), ShouldEqual, ZoneAdvance)
			So(ZoneAt(29, 30), ShouldEqual, ZoneAdvance)
		})

		Convey("Should map the middle, boundaries included, to toggle pause", func() {
			So(ZoneAt(15, 30), ShouldEqual, ZoneTogglePause)
			So(ZoneAt(10, 30), ShouldEqual, ZoneTogglePause)
			So(ZoneAt(20, 30), ShouldEqual, ZoneTogglePause)
		})

		Convey("Should tolerate a degenerate width", func() {
			So(ZoneAt(0, 0), ShouldEqual, ZoneTogglePause)
		})
	})
}

func TestTap(t *testing.T) {
	Convey("Tapping a two item session", t, func() {
		clock := newFakeClock()
		tr := &tracking{}
		items := []story.Item{photoItem("p1"), photoItem("p2")}
		s, err := Open(items, 0, nil, tr.hooks(), testOptions(clock))
		So(err, ShouldBeNil)

		Convey("Should advance on the right zone", func() {
			s.Tap(29, 30)
			So(s.Index(), ShouldEqual, 1)
		})

		Convey("Should toggle pause on the middle zone", func() {
			s.Tap(15, 30)
			So(s.Paused(), ShouldBeTrue)
			s.Tap(15, 30)
			So(s.Paused(), ShouldBeFalse)
		})

		Convey("Should close on the left zone from the first item", func() {
			s.Tap(0, 30)
			So(s.Active(), ShouldBeFalse)
			So(tr.closed, ShouldEqual, 1)
			So(tr.closedAhead, ShouldBeFalse)
			So(tr.indexes, ShouldResemble, []int{0})
		})

		Convey("Should ignore taps once the session is closed", func() {
			s.Close()
			s.Tap(29, 30)
			So(s.ControlsVisible(), ShouldBeFalse)
			So(tr.indexes, ShouldResemble, []int{0})
		})
	})
}

func TestControlsVisibility(t *testing.T) {
	Convey("The controls overlay", t, func() {
		clock := newFakeClock()
		items := []story.Item{photoItem("p1")}
		s, err := Open(items, 0, nil, Hooks{}, testOptions(clock))
		So(err, ShouldBeNil)
		So(s.ControlsVisible(), ShouldBeFalse)

		s.Tap(15, 30)
		So(s.ControlsVisible(), ShouldBeTrue)

		Convey("Should hide after the timeout", func() {
			clock.Advance(3 * time.Second)
			So(s.ControlsVisible(), ShouldBeFalse)
		})

		Convey("Should restart the countdown on every tap", func() {
			clock.Advance(2 * time.Second)
			s.Tap(15, 30)

			clock.Advance(2 * time.Second)
			So(s.ControlsVisible(), ShouldBeTrue)

			clock.Advance(time.Second)
			So(s.ControlsVisible(), ShouldBeFalse)
		})
	})
}
