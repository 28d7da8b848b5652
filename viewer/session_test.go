package viewer

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/storyline-cli/storyline/story"
)

// recordingReporter records view reports and signals each one on a channel,
// so tests can wait out the fire-and-forget reporting goroutine.
type recordingReporter struct {
	mu  sync.Mutex
	ids []string
	ch  chan string
	err error
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{ch: make(chan string, 64)}
}

func (r *recordingReporter) ReportViewed(item *story.Item) error {
	r.mu.Lock()
	r.ids = append(r.ids, item.ID)
	r.mu.Unlock()
	r.ch <- item.ID
	return r.err
}

// await blocks until n reports arrived and returns every recorded ID.
func (r *recordingReporter) await(t *testing.T, n int) []string {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-r.ch:
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for view report %d of %d", i+1, n)
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

// tracking collects hook invocations for assertions.
type tracking struct {
	mu          sync.Mutex
	indexes     []int
	closed      int
	closedAhead bool
	pauses      []bool
}

func (tr *tracking) hooks() Hooks {
	return Hooks{
		OnActiveIndexChanged: func(index int, _ *story.Item) {
			tr.mu.Lock()
			tr.indexes = append(tr.indexes, index)
			tr.mu.Unlock()
		},
		OnSessionClosed: func(forward bool) {
			tr.mu.Lock()
			tr.closed++
			tr.closedAhead = forward
			tr.mu.Unlock()
		},
		OnPlayStateChanged: func(paused bool) {
			tr.mu.Lock()
			tr.pauses = append(tr.pauses, paused)
			tr.mu.Unlock()
		},
	}
}

func photoItem(id string) story.Item {
	return story.Item{ID: id, OwnerName: "kim", Kind: story.KindPhoto}
}

func videoItem(id string) story.Item {
	return story.Item{ID: id, OwnerName: "kim", Kind: story.KindVideo}
}

func TestOpenValidation(t *testing.T) {
	Convey("Opening a session", t, func() {
		clock := newFakeClock()

		Convey("Should refuse an empty item list", func() {
			tr := &tracking{}
			s, err := Open(nil, 0, nil, tr.hooks(), testOptions(clock))
			So(s, ShouldBeNil)
			So(errors.Is(err, ErrEmptySession), ShouldBeTrue)
			So(tr.closed, ShouldEqual, 1)
		})

		Convey("Should refuse an out-of-range starting index", func() {
			tr := &tracking{}
			items := []story.Item{photoItem("1")}
			s, err := Open(items, 3, nil, tr.hooks(), testOptions(clock))
			So(s, ShouldBeNil)
			So(errors.Is(err, ErrIndexOutOfRange), ShouldBeTrue)
			So(tr.closed, ShouldEqual, 1)
		})

		Convey("Should activate the starting item", func() {
			tr := &tracking{}
			items := []story.Item{photoItem("1"), photoItem("2")}
			s, err := Open(items, 1, nil, tr.hooks(), testOptions(clock))
			So(err, ShouldBeNil)
			So(s.Index(), ShouldEqual, 1)
			So(s.Item().ID, ShouldEqual, "2")
			So(s.Active(), ShouldBeTrue)
			So(tr.indexes, ShouldResemble, []int{1})
		})
	})
}

func TestSequencing(t *testing.T) {
	Convey("A three item session", t, func() {
		clock := newFakeClock()
		tr := &tracking{}
		items := []story.Item{photoItem("p1"), videoItem("v1"), photoItem("p2")}
		s, err := Open(items, 0, nil, tr.hooks(), testOptions(clock))
		So(err, ShouldBeNil)

		Convey("Should auto-advance when the photo clock completes", func() {
			clock.Advance(5 * time.Second)
			So(s.Index(), ShouldEqual, 1)
			So(tr.indexes, ShouldResemble, []int{0, 1})
			So(s.Progress(), ShouldEqual, 0)
		})

		Convey("Should advance manually with fresh progress", func() {
			clock.Advance(2 * time.Second)
			So(s.Progress(), ShouldEqual, 40)

			s.Advance()
			So(s.Index(), ShouldEqual, 1)
			So(s.Progress(), ShouldEqual, 0)

			Convey("And a stale clock from the old item never leaks in", func() {
				s.ObservePosition(0, 0)
				clock.Advance(100 * time.Millisecond)
				So(s.Progress(), ShouldEqual, 0)
			})
		})

		Convey("Should restart the previous item on retreat", func() {
			s.Advance()
			s.Retreat()
			So(s.Index(), ShouldEqual, 0)
			So(s.Progress(), ShouldEqual, 0)
			So(tr.indexes, ShouldResemble, []int{0, 1, 0})
		})

		Convey("Should close going past the last item", func() {
			s.Advance()
			s.Advance()
			So(s.Active(), ShouldBeTrue)

			s.Advance()
			So(s.Active(), ShouldBeFalse)
			So(tr.closed, ShouldEqual, 1)
			So(tr.closedAhead, ShouldBeTrue)

			Convey("And every later call is a no-op", func() {
				s.Advance()
				s.Retreat()
				s.TogglePause()
				s.Close()
				So(tr.closed, ShouldEqual, 1)
				So(clock.pending(), ShouldEqual, 0)
			})
		})

		Convey("Should close retreating before the first item", func() {
			s.Retreat()
			So(s.Active(), ShouldBeFalse)
			So(tr.closed, ShouldEqual, 1)
			So(tr.closedAhead, ShouldBeFalse)
		})

		Convey("Should close explicitly and cancel all timers", func() {
			s.Close()
			So(s.Active(), ShouldBeFalse)
			So(tr.closed, ShouldEqual, 1)
			So(clock.pending(), ShouldEqual, 0)
		})
	})
}

func TestTogglePause(t *testing.T) {
	Convey("Toggling pause", t, func() {
		clock := newFakeClock()
		tr := &tracking{}
		items := []story.Item{photoItem("p1")}
		s, err := Open(items, 0, nil, tr.hooks(), testOptions(clock))
		So(err, ShouldBeNil)

		clock.Advance(time.Second)
		So(s.Progress(), ShouldEqual, 20)

		s.TogglePause()
		So(s.Paused(), ShouldBeTrue)
		So(tr.pauses, ShouldResemble, []bool{true})

		clock.Advance(time.Minute)
		So(s.Progress(), ShouldEqual, 20)
		So(s.Active(), ShouldBeTrue)

		s.TogglePause()
		So(s.Paused(), ShouldBeFalse)
		So(tr.pauses, ShouldResemble, []bool{true, false})

		Convey("Should take the remaining time after resume, not the full duration", func() {
			clock.Advance(3900 * time.Millisecond)
			So(s.Active(), ShouldBeTrue)

			clock.Advance(100 * time.Millisecond)
			So(s.Active(), ShouldBeFalse)
		})
	})
}

func TestViewReporting(t *testing.T) {
	Convey("View reporting", t, func() {
		clock := newFakeClock()
		items := []story.Item{photoItem("p1"), videoItem("v1"), photoItem("p2")}

		Convey("Should fire once per item as it becomes active", func() {
			rep := newRecordingReporter()
			s, err := Open(items, 0, rep, Hooks{}, testOptions(clock))
			So(err, ShouldBeNil)
			So(rep.await(t, 1), ShouldResemble, []string{"p1"})

			clock.Advance(5 * time.Second)
			So(s.Index(), ShouldEqual, 1)
			So(rep.await(t, 1), ShouldResemble, []string{"p1", "v1"})
		})

		Convey("Should never report the same item twice in a session", func() {
			rep := newRecordingReporter()
			s, err := Open(items, 0, rep, Hooks{}, testOptions(clock))
			So(err, ShouldBeNil)

			s.Advance()
			s.Retreat()
			s.Advance()
			s.Advance()

			ids := rep.await(t, 3)
			So(ids, ShouldHaveLength, 3)
			So(ids, ShouldContain, "p1")
			So(ids, ShouldContain, "v1")
			So(ids, ShouldContain, "p2")
			So(s.Index(), ShouldEqual, 2)
		})

		Convey("Should swallow reporter failures without breaking playback", func() {
			rep := newRecordingReporter()
			rep.err = errors.New("server unreachable")
			s, err := Open(items, 0, rep, Hooks{}, testOptions(clock))
			So(err, ShouldBeNil)

			rep.await(t, 1)
			clock.Advance(5 * time.Second)
			So(s.Index(), ShouldEqual, 1)
			So(s.Active(), ShouldBeTrue)
		})
	})
}

func TestVideoSession(t *testing.T) {
	Convey("A session on a video item", t, func() {
		clock := newFakeClock()
		tr := &tracking{}
		items := []story.Item{videoItem("v1"), photoItem("p1")}
		s, err := Open(items, 0, nil, tr.hooks(), testOptions(clock))
		So(err, ShouldBeNil)

		Convey("Should drive progress from reported positions", func() {
			s.ObservePosition(3, 12)
			So(s.Progress(), ShouldEqual, 25)

			s.ObservePosition(12, 12)
			So(s.Index(), ShouldEqual, 1)
		})

		Convey("Should advance on the end-of-media signal", func() {
			s.ObservePosition(4, 12)
			s.VideoFinished()
			So(s.Index(), ShouldEqual, 1)
			So(tr.indexes, ShouldResemble, []int{0, 1})
		})

		Convey("Should advance on its own when playback goes silent", func() {
			clock.Advance(20 * time.Second)
			So(s.Index(), ShouldEqual, 1)
		})
	})
}
