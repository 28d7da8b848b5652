// Package viewer implements the ephemeral story playback and navigation engine.
//
// The engine reconciles a wall-clock timer against asynchronous media events,
// supports fixed-duration photo timing and externally-driven video timing,
// translates tap coordinates into navigation intents, and guarantees
// exactly-once view reporting per item per session.
package viewer

import (
	"sync"
	"time"
)

// CancelFunc stops a scheduled callback. Calling it more than once is a no-op.
type CancelFunc func()

// Clock schedules deferred and repeating callbacks. It exists so the engine's
// timing behavior can be driven deterministically in tests.
type Clock interface {
	// After schedules fn to run once after d.
	After(d time.Duration, fn func()) CancelFunc
	// Every schedules fn to run repeatedly with the given interval.
	Every(interval time.Duration, fn func()) CancelFunc
}

// SystemClock returns a Clock backed by the runtime timers.
func SystemClock() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) After(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	var once sync.Once
	return func() {
		once.Do(func() { t.Stop() })
	}
}

func (systemClock) Every(interval time.Duration, fn func()) CancelFunc {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
