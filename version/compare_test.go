package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("Should order by major, minor, patch", func() {
			for _, c := range []struct {
				a, b string
				want int
			}{
				{"1.0.0", "0.9.9", 1},
				{"0.1.0", "0.1.1", -1},
				{"0.1.0", "0.1.0", 0},
				{"2.0.0", "1.99.99", 1},
			} {
				got, err := Compare(c.a, c.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("Should tolerate a v prefix", func() {
			got, err := Compare("v1.2.3", "1.2.3")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, 0)
		})

		Convey("Should reject malformed versions", func() {
			_, err := Compare("latest", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
