package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		Convey("Should use singular for one", func() {
			So(Quantify(1, "story", "stories"), ShouldEqual, "1 story")
		})

		Convey("Should use plural otherwise", func() {
			So(Quantify(0, "story", "stories"), ShouldEqual, "0 stories")
			So(Quantify(3, "story", "stories"), ShouldEqual, "3 stories")
		})
	})
}

func TestCapitalize(t *testing.T) {
	Convey("Capitalize", t, func() {
		So(Capitalize("seen registry"), ShouldEqual, "Seen registry")
		So(Capitalize(""), ShouldEqual, "")
	})
}

func TestMinMax(t *testing.T) {
	Convey("Min and Max", t, func() {
		So(Max(1, 5, 3), ShouldEqual, 5)
		So(Min(1, 5, 3), ShouldEqual, 1)
		So(Max[int](), ShouldEqual, 0)
		So(Min[int](), ShouldEqual, 0)
	})
}
