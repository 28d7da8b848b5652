package filesystem

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBackendSwitching(t *testing.T) {
	Convey("Filesystem backend", t, func() {
		Convey("defaults to the OS filesystem", func() {
			SetOsFs()
			So(API().Name(), ShouldEqual, "OsFs")
		})

		Convey("can be swapped for an in-memory one", func() {
			SetMemMapFs()
			So(API().Name(), ShouldEqual, "MemMapFS")

			Convey("which holds writes", func() {
				So(API().WriteFile("probe", []byte("x"), 0644), ShouldBeNil)
				data, err := API().ReadFile("probe")
				So(err, ShouldBeNil)
				So(string(data), ShouldEqual, "x")
			})
		})
	})
}
