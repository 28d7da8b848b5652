package viewer

import (
	"sync"
	"time"

	"github.com/storyline-cli/storyline/log"
	"github.com/storyline-cli/storyline/story"
)

// progressState models the lifecycle of the per-item progress clock.
type progressState int

const (
	progressIdle progressState = iota
	progressRunning
	progressPaused
	progressCompleted
)

// Progress drives a monotonically non-decreasing completion value in [0,100]
// for the currently active item.
//
// Photos advance on an internal repeating tick of fixed total duration.
// Videos advance only from externally reported playback positions; the
// engine runs no clock of its own for them beyond the stall watchdog.
type Progress struct {
	mu    sync.Mutex
	clock Clock
	opts  Options

	state progressState
	kind  story.Kind
	value float64
	// step is the photo increment per tick.
	step float64
	// videoDuration is the reported media duration, or the fallback.
	videoDuration time.Duration

	cancelTick  CancelFunc
	cancelStall CancelFunc
	onComplete  func()
}

func newProgress(opts Options) *Progress {
	return &Progress{clock: opts.Clock, opts: opts}
}

// Start resets the engine for a new item and begins counting. Any previous
// timers are cancelled first, so a stale tick can never leak into the new item.
// onComplete fires exactly once, when the value reaches 100.
func (p *Progress) Start(kind story.Kind, onComplete func()) {
	p.mu.Lock()
	p.stopLocked()

	p.kind = kind
	p.value = 0
	p.state = progressRunning
	p.onComplete = onComplete

	switch kind {
	case story.KindVideo:
		p.videoDuration = p.opts.VideoFallback
	default:
		p.step = 100 * float64(p.opts.TickInterval) / float64(p.opts.PhotoDuration)
		p.cancelTick = p.clock.Every(p.opts.TickInterval, p.tick)
	}
	p.armStallLocked()
	p.mu.Unlock()
}

// Pause freezes progress at its current value and cancels the underlying clock.
func (p *Progress) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != progressRunning {
		return
	}
	p.state = progressPaused
	p.cancelTimersLocked()
}

// Resume restarts the clock from the current progress value, not from zero.
func (p *Progress) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state != progressPaused {
		return
	}
	p.state = progressRunning
	if p.kind != story.KindVideo {
		p.cancelTick = p.clock.Every(p.opts.TickInterval, p.tick)
	}
	p.armStallLocked()
}

// Stop cancels all timers and returns the engine to idle. Idempotent.
func (p *Progress) Stop() {
	p.mu.Lock()
	p.stopLocked()
	p.mu.Unlock()
}

// ObservePosition maps an externally reported playback position onto the
// progress value. Reports while not running, and reports for photo items,
// are ignored.
func (p *Progress) ObservePosition(positionSec, durationSec float64) {
	p.mu.Lock()
	if p.state != progressRunning || p.kind != story.KindVideo {
		p.mu.Unlock()
		return
	}

	if durationSec > 0 {
		p.videoDuration = time.Duration(durationSec * float64(time.Second))
	}
	total := p.videoDuration.Seconds()
	if total <= 0 {
		total = p.opts.VideoFallback.Seconds()
	}

	mapped := positionSec / total * 100
	// Progress never moves backward: a seek or a jittery report cannot
	// undo what was already shown.
	if mapped > p.value {
		p.value = mapped
	}
	p.armStallLocked()

	var fire func()
	if p.value >= 100 {
		fire = p.completeLocked()
	}
	p.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// FinishVideo handles the playback backend's natural end-of-media signal.
func (p *Progress) FinishVideo() {
	p.mu.Lock()
	if p.state != progressRunning || p.kind != story.KindVideo {
		p.mu.Unlock()
		return
	}
	fire := p.completeLocked()
	p.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Value returns the current progress in [0,100].
func (p *Progress) Value() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.value
}

// Running reports whether the clock is actively counting.
func (p *Progress) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == progressRunning
}

// Paused reports whether the clock is frozen at its current value.
func (p *Progress) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == progressPaused
}

// tick advances photo progress by one step.
func (p *Progress) tick() {
	p.mu.Lock()
	if p.state != progressRunning {
		p.mu.Unlock()
		return
	}

	p.value += p.step
	p.armStallLocked()

	var fire func()
	if p.value >= 100 {
		fire = p.completeLocked()
	}
	p.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// armStallLocked (re)starts the stalled-item watchdog. If no timing signal
// arrives within the grace window, the item is force-completed so the
// session can never hang on a dead clock or a silent playback backend.
func (p *Progress) armStallLocked() {
	if p.cancelStall != nil {
		p.cancelStall()
	}

	expected := p.opts.PhotoDuration
	if p.kind == story.KindVideo {
		expected = p.videoDuration
	}
	grace := time.Duration(float64(expected) * p.opts.StallGraceFactor)
	p.cancelStall = p.clock.After(grace, p.stall)
}

// stall force-completes an item whose timing signals stopped arriving.
func (p *Progress) stall() {
	p.mu.Lock()
	if p.state != progressRunning {
		p.mu.Unlock()
		return
	}
	log.Warnf("viewer: %s item stalled at %.1f%%, forcing completion", p.kind, p.value)
	fire := p.completeLocked()
	p.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// completeLocked clamps the terminal value to exactly 100, transitions to
// completed, and returns the completion callback. The callback is returned
// rather than invoked so the caller can fire it outside the engine lock:
// it re-enters the session to advance. Must only be called while running.
func (p *Progress) completeLocked() func() {
	p.value = 100
	p.state = progressCompleted
	p.cancelTimersLocked()
	return p.onComplete
}

func (p *Progress) stopLocked() {
	p.state = progressIdle
	p.onComplete = nil
	p.cancelTimersLocked()
}

// cancelTimersLocked cancels both timers; cancelling an already cancelled
// timer is a no-op.
func (p *Progress) cancelTimersLocked() {
	if p.cancelTick != nil {
		p.cancelTick()
		p.cancelTick = nil
	}
	if p.cancelStall != nil {
		p.cancelStall()
		p.cancelStall = nil
	}
}
