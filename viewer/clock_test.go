package viewer

import (
	"sync"
	"time"
)

// fakeClock is a deterministic Clock for tests. Time moves only through
// Advance, which fires due callbacks in deadline order with the clock lock
// released, so callbacks may schedule and cancel timers freely.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Duration
	seq    int
	timers map[int]*fakeTimer
}

type fakeTimer struct {
	id       int
	at       time.Duration
	interval time.Duration
	fn       func()
}

func newFakeClock() *fakeClock {
	return &fakeClock{timers: make(map[int]*fakeTimer)}
}

func (c *fakeClock) After(d time.Duration, fn func()) CancelFunc {
	return c.schedule(d, 0, fn)
}

func (c *fakeClock) Every(interval time.Duration, fn func()) CancelFunc {
	return c.schedule(interval, interval, fn)
}

func (c *fakeClock) schedule(d, interval time.Duration, fn func()) CancelFunc {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	id := c.seq
	c.timers[id] = &fakeTimer{id: id, at: c.now + d, interval: interval, fn: fn}
	return func() {
		c.mu.Lock()
		delete(c.timers, id)
		c.mu.Unlock()
	}
}

// Advance moves the clock forward by d, firing every timer that becomes due
// along the way.
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now + d

	for {
		var next *fakeTimer
		for _, t := range c.timers {
			if t.at > target {
				continue
			}
			if next == nil || t.at < next.at || (t.at == next.at && t.id < next.id) {
				next = t
			}
		}
		if next == nil {
			break
		}

		c.now = next.at
		if next.interval > 0 {
			next.at += next.interval
		} else {
			delete(c.timers, next.id)
		}

		fn := next.fn
		c.mu.Unlock()
		fn()
		c.mu.Lock()
	}

	c.now = target
	c.mu.Unlock()
}

func (c *fakeClock) pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}
