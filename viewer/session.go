package viewer

import (
	"errors"
	"sync"

	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/story"
)

var (
	// ErrEmptySession is returned when a session is opened with no items.
	ErrEmptySession = errors.New("cannot open a session with no items")
	// ErrIndexOutOfRange is returned when the starting index does not
	// address an item of the session.
	ErrIndexOutOfRange = errors.New("starting index out of range")
)

// Reporter records that an item was viewed. Implementations talk to the
// stories server; the session guarantees at most one call per item.
type Reporter interface {
	ReportViewed(item *story.Item) error
}

// Hooks receive session lifecycle notifications. Nil hooks are skipped.
// Hooks are always invoked outside the session lock, so they may call
// back into the session freely.
type Hooks struct {
	// OnActiveIndexChanged fires when a new item becomes active,
	// including for the first item of the session.
	OnActiveIndexChanged func(index int, item *story.Item)
	// OnSessionClosed fires exactly once, when the session ends for any
	// reason. forward is true when the close came from advancing past
	// the last item, false for retreat before the first or explicit Close.
	OnSessionClosed func(forward bool)
	// OnPlayStateChanged fires when playback pauses or resumes.
	OnPlayStateChanged func(paused bool)
}

// event is a hook invocation collected under the session lock and fired
// after it is released.
type event func()

// Session sequences a fixed, ordered set of story items. One item is active
// at a time; advancement comes from timer completion, taps, or key presses,
// and all of it funnels through the same internal transition. The session
// is safe for concurrent use: timer callbacks, playback backend events and
// UI input may arrive on any goroutine.
type Session struct {
	mu     sync.Mutex
	items  []story.Item
	index  int
	active bool
	// epoch increments on every activation; completions carry the epoch
	// they were armed under, so a late timer from a previous item is
	// recognized and discarded.
	epoch uint64

	controlsVisible bool
	cancelControls  CancelFunc

	// viewed tracks item IDs already reported this session.
	viewed map[string]struct{}

	progress *Progress
	reporter Reporter
	hooks    Hooks
	opts     Options
}

// Open validates items and the starting index, builds the session and
// activates the starting item. On validation failure the session is
// considered closed immediately: OnSessionClosed fires and the error is
// returned.
func Open(items []story.Item, startIndex int, reporter Reporter, hooks Hooks, opts Options) (*Session, error) {
	opts.fillDefaults()

	var err error
	switch {
	case len(items) == 0:
		err = ErrEmptySession
	case startIndex < 0 || startIndex >= len(items):
		err = ErrIndexOutOfRange
	}
	if err != nil {
		if hooks.OnSessionClosed != nil {
			hooks.OnSessionClosed(false)
		}
		return nil, err
	}

	s := &Session{
		items:    items,
		index:    startIndex,
		active:   true,
		viewed:   make(map[string]struct{}, len(items)),
		progress: newProgress(opts),
		reporter: reporter,
		hooks:    hooks,
		opts:     opts,
	}

	s.mu.Lock()
	events := s.activateLocked()
	s.mu.Unlock()
	fire(events)
	return s, nil
}

func fire(events []event) {
	for _, e := range events {
		e()
	}
}

// activateLocked makes items[index] the active item: stops the previous
// clock, starts a new one armed with the current epoch, notifies the index
// hook and kicks off view reporting.
func (s *Session) activateLocked() []event {
	s.progress.Stop()
	s.epoch++
	epoch := s.epoch

	item := &s.items[s.index]
	s.progress.Start(item.Kind, func() {
		s.completeEpoch(epoch)
	})

	var events []event
	if s.hooks.OnActiveIndexChanged != nil {
		index, hook := s.index, s.hooks.OnActiveIndexChanged
		events = append(events, func() { hook(index, item) })
	}

	if _, ok := s.viewed[item.ID]; !ok {
		s.viewed[item.ID] = struct{}{}
		if s.reporter != nil {
			go s.reportViewed(item)
		}
	}
	return events
}

// reportViewed runs off the session lock. Failures are logged and dropped:
// reporting never blocks or breaks playback, and the in-session dedup set
// keeps the item from being retried.
func (s *Session) reportViewed(item *story.Item) {
	if err := s.reporter.ReportViewed(item); err != nil {
		log.Errorf("viewer: reporting view of story %s failed: %s", item.ID, err)
	}
}

// completeEpoch is the progress engine's completion callback. A completion
// armed under an older epoch belongs to an item that is no longer active
// and is discarded.
func (s *Session) completeEpoch(epoch uint64) {
	s.mu.Lock()
	if !s.active || epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	events := s.advanceLocked()
	s.mu.Unlock()
	fire(events)
}

// Advance moves to the next item, or closes the session past the last one.
// No-op once the session is closed.
func (s *Session) Advance() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	events := s.advanceLocked()
	s.mu.Unlock()
	fire(events)
}

func (s *Session) advanceLocked() []event {
	if s.index+1 >= len(s.items) {
		return s.closeLocked(true)
	}
	s.index++
	return s.activateLocked()
}

// Retreat moves to the previous item, which restarts with fresh progress.
// Retreating from the first item closes the session.
func (s *Session) Retreat() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}

	var events []event
	if s.index == 0 {
		events = s.closeLocked(false)
	} else {
		s.index--
		events = s.activateLocked()
	}
	s.mu.Unlock()
	fire(events)
}

// TogglePause flips between paused and running for the active item. The
// progress value holds its position across the round trip.
func (s *Session) TogglePause() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}

	paused := s.progress.Paused()
	if paused {
		s.progress.Resume()
	} else {
		s.progress.Pause()
	}

	var events []event
	if s.hooks.OnPlayStateChanged != nil {
		hook := s.hooks.OnPlayStateChanged
		events = append(events, func() { hook(!paused) })
	}
	s.mu.Unlock()
	fire(events)
}

// Close ends the session explicitly. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	events := s.closeLocked(false)
	s.mu.Unlock()
	fire(events)
}

// closeLocked tears the session down and schedules the closed hook.
// After it runs every entry point is a no-op.
func (s *Session) closeLocked(forward bool) []event {
	s.active = false
	s.progress.Stop()
	if s.cancelControls != nil {
		s.cancelControls()
		s.cancelControls = nil
	}
	s.controlsVisible = false

	if s.hooks.OnSessionClosed != nil {
		hook := s.hooks.OnSessionClosed
		return []event{func() { hook(forward) }}
	}
	return nil
}

// ObservePosition forwards a playback position report for the active video.
func (s *Session) ObservePosition(positionSec, durationSec float64) {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active {
		s.progress.ObservePosition(positionSec, durationSec)
	}
}

// VideoFinished forwards the playback backend's end-of-media signal.
func (s *Session) VideoFinished() {
	s.mu.Lock()
	active := s.active
	s.mu.Unlock()

	if active {
		s.progress.FinishVideo()
	}
}

// Index returns the position of the active item.
func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// Item returns the active item.
func (s *Session) Item() *story.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &s.items[s.index]
}

// Items returns the full ordered set the session was opened with.
func (s *Session) Items() []story.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items
}

// Progress returns the active item's completion value in [0,100].
func (s *Session) Progress() float64 {
	return s.progress.Value()
}

// Paused reports whether playback of the active item is paused.
func (s *Session) Paused() bool {
	return s.progress.Paused()
}

// Active reports whether the session is still open.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// ControlsVisible reports whether the controls overlay is currently shown.
func (s *Session) ControlsVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controlsVisible
}
