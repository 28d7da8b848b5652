package playback

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Sanitizing a media target", t, func() {
		Convey("Should accept http and https URLs", func() {
			for _, u := range []string{
				"http://localhost:8000/media/abc.mp4",
				"https://cdn.example.com/stories/v1.mp4",
			} {
				got, err := sanitizeMediaTarget(u)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, u)
			}
		})

		Convey("Should clean local file paths", func() {
			got, err := sanitizeMediaTarget("./media/../media/v1.mp4")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "media/v1.mp4")
		})

		Convey("Should reject empty targets", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject flag injection", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject control characters", func() {
			_, err := sanitizeMediaTarget("http://a/b\nquit")
			So(err, ShouldNotBeNil)
		})

		Convey("Should reject unsupported schemes", func() {
			_, err := sanitizeMediaTarget("ftp://example.com/v.mp4")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestSanitizeTitle(t *testing.T) {
	Convey("Sanitizing a title", t, func() {
		So(sanitizeTitle("kim's story\n(video)"), ShouldEqual, "kim's story (video)")
		So(sanitizeTitle("\t padded \x00"), ShouldEqual, "padded")
	})
}

func TestNewBackend(t *testing.T) {
	Convey("Building the configured backend", t, func() {
		Convey("Should default to mpv", func() {
			b, err := New()
			So(err, ShouldBeNil)
			So(b, ShouldHaveSameTypeAs, &MPV{})
		})

		Convey("Should report a fresh player as not running", func() {
			So(NewMPV().IsRunning(), ShouldBeFalse)
		})
	})
}
