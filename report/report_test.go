package report

import (
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/storyline-cli/storyline/story"
)

func TestReportViewed(t *testing.T) {
	Convey("Reporting a view", t, func() {
		var gotPath, gotMethod string
		status := http.StatusOK

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			w.WriteHeader(status)
		}))
		defer server.Close()

		client := &Client{BaseURL: server.URL, HTTP: server.Client()}
		item := &story.Item{ID: "42", Kind: story.KindPhoto}

		Convey("Should post to the story's view endpoint", func() {
			So(client.ReportViewed(item), ShouldBeNil)
			So(gotMethod, ShouldEqual, http.MethodPost)
			So(gotPath, ShouldEqual, "/stories/42/view")
		})

		Convey("Should surface non-success responses as errors", func() {
			status = http.StatusForbidden
			err := client.ReportViewed(item)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "403")
		})
	})
}
